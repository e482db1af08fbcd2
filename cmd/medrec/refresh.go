package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a catalog refresh from WooCommerce",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		if !a.cache.ForceRefresh(context.Background()) {
			return fmt.Errorf("catalog refresh failed")
		}

		meta, _ := a.cache.Metadata()
		fmt.Printf("Refreshed %d products at %s\n",
			meta.SourceProductCount, meta.LastRefresh.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
