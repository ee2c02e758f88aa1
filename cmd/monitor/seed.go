package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"olx-monitor/internal/domain"
)

// seedFilterCmd inserts a sample subscriber filter so a fresh install has
// something to match against.
func seedFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-filter",
		Short: "Insert a sample subscriber filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, _, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			minPrice, maxPrice := 500.0, 3000.0
			f := domain.SubscriberFilter{
				Name:     "John Doe",
				Email:    "john.doe@example.com",
				MinPrice: &minPrice,
				MaxPrice: &maxPrice,
				Keywords: []string{"iPhone 12", "iPhone 13", "iPhone 14"},
				Location: "Warszawa",
				Active:   true,
			}

			id, err := db.AddFilter(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("add filter: %w", err)
			}
			fmt.Printf("Sample filter added for %s (id %d)\n", f.Name, id)
			return nil
		},
	}
}
