package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"olx-monitor/internal/domain"
)

// ConsoleSink renders notifications to stdout. Useful for dry runs and demos.
type ConsoleSink struct{}

func (ConsoleSink) Name() string { return "console" }

func (ConsoleSink) Notify(_ context.Context, l domain.Listing, matched []domain.SubscriberFilter) error {
	rule := strings.Repeat("=", 70)

	fmt.Println()
	fmt.Println(rule)
	fmt.Println("NEW LISTING")
	fmt.Println(rule)
	fmt.Printf("Title:    %s\n", l.Title)
	fmt.Printf("Price:    %s\n", formatPrice(l))
	fmt.Printf("Location: %s\n", orAny(l.Location))
	fmt.Printf("URL:      %s\n", l.URL)
	fmt.Printf("\nMatching %d subscriber(s):\n", len(matched))
	for _, f := range matched {
		fmt.Printf("  - %s\n", f.Name)
		if f.Email != "" {
			fmt.Printf("    Email: %s\n", f.Email)
		}
	}
	fmt.Println(rule)
	fmt.Println()

	log.Printf("[notify] console notification for listing %s", l.OLXID)
	return nil
}

func formatPrice(l domain.Listing) string {
	if l.Price == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2f %s", *l.Price, l.Currency)
}

func orAny(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
