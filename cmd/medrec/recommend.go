package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	recommendLimit int
	recommendJSON  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <query>",
	Short: "Recommend products for a profession or health condition",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		recommendation, err := a.engine.Recommend(context.Background(), query, recommendLimit)
		if err != nil {
			return err
		}

		if recommendJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(recommendation)
		}

		fmt.Printf("Zapytanie: %q\n", recommendation.Query)
		fmt.Printf("Pewność: %.0f%%\n", recommendation.Confidence*100)
		fmt.Printf("Uzasadnienie: %s\n\n", recommendation.Reasoning)
		fmt.Printf("Rekomendowane produkty (%d):\n", len(recommendation.Products))
		for i, p := range recommendation.Products {
			fmt.Printf("%2d. %s\n", i+1, p.Name)
			fmt.Printf("    Kategoria: %s\n", p.Category)
			fmt.Printf("    Cena: %.2f PLN\n", p.Price)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 10, "maximum number of products")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(recommendCmd)
}
