package domain

import "time"

const DefaultCurrency = "PLN"

// Listing is one classified ad scraped from OLX. Values are immutable once
// extracted; lifecycle state (first seen, notified) lives in the store.
type Listing struct {
	OLXID       string // dedup key derived from the ad URL
	Title       string
	Price       *float64 // nil = not shown / unparseable
	Currency    string
	URL         string
	Location    string // "" = unknown
	Description string
	PostedAt    time.Time
	ScrapedAt   time.Time
}

// SubscriberFilter is one subscriber's alert criteria. A nil price bound or
// empty keyword/location leaves that predicate wide open.
type SubscriberFilter struct {
	ID        int64
	Name      string
	Email     string
	MinPrice  *float64
	MaxPrice  *float64
	Keywords  []string // OR-matched against the title, case-insensitive
	Location  string   // case-insensitive substring of the listing location
	Active    bool
	CreatedAt time.Time
}

// MatchResult pairs a listing with every filter it satisfied during one
// dispatch, plus whether the sink call for it went through.
type MatchResult struct {
	Listing   Listing
	Filters   []SubscriberFilter
	Delivered bool
}

// DispatchStats summarizes one dispatcher pass.
type DispatchStats struct {
	TotalListings     int
	MatchedListings   int
	NotificationsSent int // (listing, filter) pairs handed to the sink
	FailedListings    int // matched listings whose sink call errored
}
