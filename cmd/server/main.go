package main

import (
	"fmt"
	"log"
	"os"

	"github.com/medrec/backend/config"
	httpDelivery "github.com/medrec/backend/internal/delivery/http"
	"github.com/medrec/backend/internal/domain"
	"github.com/medrec/backend/internal/infrastructure/catalog"
	"github.com/medrec/backend/internal/infrastructure/woo"
	"github.com/medrec/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting medrec backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s, snapshot: %s", cfg.Cache.TTL, cfg.Cache.SnapshotPath)

	var source domain.CatalogSource
	if cfg.Woo.URL != "" {
		client := woo.NewClient(cfg.Woo.URL, cfg.Woo.ConsumerKey, cfg.Woo.ConsumerSecret, cfg.Woo.MaxProducts)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		source = client
		log.Printf("WooCommerce configured: %s (max products: %d)", cfg.Woo.URL, cfg.Woo.MaxProducts)
	} else {
		log.Printf("WARNING: WooCommerce not configured, serving snapshot data only")
	}

	store := catalog.NewFileStore(cfg.Cache.SnapshotPath)
	cache := catalog.New(source, store, catalog.Config{TTL: cfg.Cache.TTL})

	rules := usecase.NewRuleRepository()
	matcher := usecase.NewMatcher(rules)
	engine := usecase.NewRecommender(matcher, cache, usecase.RecommenderConfig{
		EnableDebugLogging: cfg.Recommend.EnableDebugLogging,
	})

	handler := httpDelivery.NewHandler(engine, cache, cfg.Recommend.DefaultLimit)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
