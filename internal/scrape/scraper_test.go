package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingCard(id, title string) string {
	return fmt.Sprintf(`<div data-cy="l-card"><a href="/d/oferta/x-ID%s.html"><h6>%s</h6></a></div>`, id, title)
}

func TestScrapeListingsStopsOnFailure(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.RequestURI())
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")

		switch r.URL.Query().Get("page") {
		case "": // page 1
			fmt.Fprintf(w, "<html><body>%s%s</body></html>",
				listingCard("aaa1", "iPhone 13"), listingCard("bbb2", "iPhone 14"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	s := NewScraper(srv.URL+"/d/iphone", NewParser(srv.URL), NewPacer(1000, 10))
	listings, err := s.ScrapeListings(context.Background(), 3)

	require.Error(t, err, "page 2 failure surfaces")
	assert.Len(t, listings, 2, "page 1 results are kept")
	assert.Equal(t, []string{"/d/iphone", "/d/iphone?page=2"}, requested,
		"page 3 is never attempted after page 2 fails")
}

func TestScrapeListingsAllPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		fmt.Fprintf(w, "<html><body>%s</body></html>", listingCard("p"+page, "iPhone page "+page))
	}))
	defer srv.Close()

	s := NewScraper(srv.URL+"/d/iphone", NewParser(srv.URL), NewPacer(1000, 10))
	listings, err := s.ScrapeListings(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, "p1", listings[0].OLXID)
	assert.Equal(t, "p3", listings[2].OLXID)
}

func TestScrapeListingsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from the first request

	s := NewScraper(srv.URL, NewParser(srv.URL), NewPacer(1000, 10))
	listings, err := s.ScrapeListings(context.Background(), 2)

	require.Error(t, err)
	assert.Empty(t, listings)
}
