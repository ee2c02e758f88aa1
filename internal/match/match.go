// Package match decides whether a scraped listing satisfies a subscriber's
// alert criteria. Pure functions, no I/O.
package match

import (
	"strings"

	"olx-monitor/internal/domain"
)

// Matches is a conjunction of independent predicates. Each predicate passes
// when the filter leaves it unset, so an empty filter matches everything.
// A listing with no known price or location cannot be excluded on those
// fields; partial data still reaches subscribers.
func Matches(l domain.Listing, f domain.SubscriberFilter) bool {
	return passesPrice(l, f) && passesKeywords(l, f) && passesLocation(l, f)
}

func passesPrice(l domain.Listing, f domain.SubscriberFilter) bool {
	if l.Price == nil {
		return true
	}
	if f.MinPrice != nil && *l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && *l.Price > *f.MaxPrice {
		return false
	}
	return true
}

// passesKeywords requires at least one keyword to occur in the title,
// case-insensitively.
func passesKeywords(l domain.Listing, f domain.SubscriberFilter) bool {
	if len(f.Keywords) == 0 {
		return true
	}
	title := strings.ToLower(l.Title)
	for _, kw := range f.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

func passesLocation(l domain.Listing, f domain.SubscriberFilter) bool {
	if f.Location == "" || l.Location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location))
}
