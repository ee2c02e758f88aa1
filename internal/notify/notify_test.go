package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olx-monitor/internal/domain"
)

type fakeSink struct {
	calls [][]domain.SubscriberFilter
	byID  map[string]int
	fail  map[string]bool // listing IDs whose Notify errors
}

func newFakeSink() *fakeSink {
	return &fakeSink{byID: map[string]int{}, fail: map[string]bool{}}
}

func (s *fakeSink) Name() string { return "fake" }

func (s *fakeSink) Notify(_ context.Context, l domain.Listing, matched []domain.SubscriberFilter) error {
	s.calls = append(s.calls, matched)
	s.byID[l.OLXID]++
	if s.fail[l.OLXID] {
		return errors.New("boom")
	}
	return nil
}

func price(v float64) *float64 { return &v }

func TestDispatchGroupsFiltersPerListing(t *testing.T) {
	r1 := domain.Listing{OLXID: "r1", Title: "iPhone 13", Price: price(1500)}
	r2 := domain.Listing{OLXID: "r2", Title: "Samsung", Price: price(1500)}
	f1 := domain.SubscriberFilter{ID: 1, Name: "a", Keywords: []string{"iphone"}}
	f2 := domain.SubscriberFilter{ID: 2, Name: "b", MaxPrice: price(2000), Keywords: []string{"iphone 13"}}

	sink := newFakeSink()
	stats, results := NewDispatcher(sink).Dispatch(context.Background(),
		[]domain.Listing{r1, r2}, []domain.SubscriberFilter{f1, f2})

	assert.Equal(t, 2, stats.TotalListings)
	assert.Equal(t, 1, stats.MatchedListings)
	assert.Equal(t, 2, stats.NotificationsSent)
	assert.Equal(t, 0, stats.FailedListings)

	assert.Equal(t, 1, sink.byID["r1"], "one sink call carrying both filters")
	assert.Zero(t, sink.byID["r2"])
	require.Len(t, sink.calls, 1)
	assert.Len(t, sink.calls[0], 2)

	require.Len(t, results, 1)
	assert.True(t, results[0].Delivered)
	assert.Equal(t, "r1", results[0].Listing.OLXID)
}

func TestDispatchIsolatesSinkFailures(t *testing.T) {
	r1 := domain.Listing{OLXID: "r1", Title: "iPhone"}
	r2 := domain.Listing{OLXID: "r2", Title: "iPhone"}
	f := domain.SubscriberFilter{Keywords: []string{"iphone"}}

	sink := newFakeSink()
	sink.fail["r1"] = true

	stats, results := NewDispatcher(sink).Dispatch(context.Background(),
		[]domain.Listing{r1, r2}, []domain.SubscriberFilter{f})

	assert.Equal(t, 2, stats.MatchedListings)
	assert.Equal(t, 2, stats.NotificationsSent, "failed sends still count as attempted")
	assert.Equal(t, 1, stats.FailedListings)
	assert.Equal(t, 1, sink.byID["r2"], "r1's failure does not stop r2")

	require.Len(t, results, 2)
	assert.False(t, results[0].Delivered)
	assert.True(t, results[1].Delivered)
}

func TestDispatchEmptyInputs(t *testing.T) {
	sink := newFakeSink()
	stats, results := NewDispatcher(sink).Dispatch(context.Background(), nil, nil)
	assert.Equal(t, domain.DispatchStats{}, stats)
	assert.Empty(t, results)
	assert.Empty(t, sink.calls)
}
