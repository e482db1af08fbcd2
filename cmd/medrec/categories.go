package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories with product counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		counts, err := a.engine.Categories(context.Background())
		if err != nil {
			return err
		}

		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-24s %d\n", name, counts[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
