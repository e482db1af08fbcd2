package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/medrec/backend/config"
	"github.com/medrec/backend/internal/domain"
	"github.com/medrec/backend/internal/infrastructure/catalog"
	"github.com/medrec/backend/internal/infrastructure/woo"
	"github.com/medrec/backend/internal/usecase"
)

// rootCmd is the base command for the medrec CLI.
var rootCmd = &cobra.Command{
	Use:   "medrec",
	Short: "Medical product recommender for WooCommerce stores",
	Long: `medrec recommends medical supply products based on a free-text query
describing a profession or health condition (e.g. "ratownik medyczny",
"cukrzyca"). Products come from a WooCommerce store and are cached locally
so recommendations keep working through upstream outages.`,
	SilenceUsage: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// app bundles the wired application components for the subcommands.
type app struct {
	cfg    *config.Config
	cache  *catalog.Cache
	engine *usecase.Recommender
}

// buildApp loads configuration and wires the cache and engine the same way
// cmd/server does.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var source domain.CatalogSource
	if cfg.Woo.URL != "" {
		client := woo.NewClient(cfg.Woo.URL, cfg.Woo.ConsumerKey, cfg.Woo.ConsumerSecret, cfg.Woo.MaxProducts)
		client.SetDebug(verbose)
		source = client
	} else if verbose {
		log.Printf("WooCommerce not configured, serving snapshot data only")
	}

	store := catalog.NewFileStore(cfg.Cache.SnapshotPath)
	cache := catalog.New(source, store, catalog.Config{TTL: cfg.Cache.TTL})

	rules := usecase.NewRuleRepository()
	matcher := usecase.NewMatcher(rules)
	engine := usecase.NewRecommender(matcher, cache, usecase.RecommenderConfig{
		EnableDebugLogging: verbose || cfg.Recommend.EnableDebugLogging,
	})

	return &app{cfg: cfg, cache: cache, engine: engine}, nil
}
