package main

import (
	"fmt"

	"github.com/spf13/cobra"

	httpDelivery "github.com/medrec/backend/internal/delivery/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		handler := httpDelivery.NewHandler(a.engine, a.cache, a.cfg.Recommend.DefaultLimit)
		router := httpDelivery.SetupRouter(a.cfg, handler)

		addr := fmt.Sprintf(":%s", a.cfg.Server.Port)
		fmt.Printf("Listening on %s\n", addr)
		return router.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
