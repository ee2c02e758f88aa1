// Package notify fans new listings out to subscribers whose filters match.
package notify

import (
	"context"
	"log"

	"olx-monitor/internal/domain"
	"olx-monitor/internal/match"
)

// Sink renders one notification for a listing and every filter that matched
// it. The sink decides how a multi-subscriber match is delivered (one console
// banner, one email per subscriber, ...).
type Sink interface {
	Name() string
	Notify(ctx context.Context, l domain.Listing, matched []domain.SubscriberFilter) error
}

type Dispatcher struct {
	sink Sink
}

func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{sink: sink}
}

// Dispatch evaluates every listing against every filter and invokes the sink
// once per listing with at least one match. A sink failure is logged and
// counted but never stops the rest of the batch; the per-listing Delivered
// flag in the results lets the caller decide what to mark as notified.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	listings []domain.Listing,
	filters []domain.SubscriberFilter,
) (domain.DispatchStats, []domain.MatchResult) {
	stats := domain.DispatchStats{TotalListings: len(listings)}
	var results []domain.MatchResult

	for _, l := range listings {
		var matched []domain.SubscriberFilter
		for _, f := range filters {
			if match.Matches(l, f) {
				matched = append(matched, f)
			}
		}
		if len(matched) == 0 {
			continue
		}

		stats.MatchedListings++
		stats.NotificationsSent += len(matched)

		res := domain.MatchResult{Listing: l, Filters: matched}
		if err := d.sink.Notify(ctx, l, matched); err != nil {
			stats.FailedListings++
			log.Printf("[notify] %s: listing %s: %v", d.sink.Name(), l.OLXID, err)
		} else {
			res.Delivered = true
		}
		results = append(results, res)
	}

	return stats, results
}
