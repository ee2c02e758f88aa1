package scrape

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"olx-monitor/internal/domain"
)

// OLX serves a bot-detection page to obvious non-browser agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const requestTimeout = 10 * time.Second

// Scraper walks the paginated search results for one base URL.
type Scraper struct {
	baseURL string
	parser  *Parser
	pacer   *Pacer
	hc      *http.Client
}

func NewScraper(baseURL string, parser *Parser, pacer *Pacer) *Scraper {
	return &Scraper{
		baseURL: baseURL,
		parser:  parser,
		pacer:   pacer,
		hc:      &http.Client{Timeout: requestTimeout},
	}
}

// ScrapeListings fetches and parses up to maxPages result pages sequentially.
// Page 1 is the base URL as-is; later pages append ?page=N. The first fetch
// failure ends the run, since a block or outage rarely clears mid-session;
// whatever was accumulated is returned alongside the error.
func (s *Scraper) ScrapeListings(ctx context.Context, maxPages int) ([]domain.Listing, error) {
	var all []domain.Listing

	for page := 1; page <= maxPages; page++ {
		pageURL := s.baseURL
		if page > 1 {
			pageURL = fmt.Sprintf("%s?page=%d", s.baseURL, page)
		}

		listings, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			return all, fmt.Errorf("page %d: %w", page, err)
		}
		log.Printf("[scrape] page %d: %d listings", page, len(listings))
		all = append(all, listings...)
	}

	return all, nil
}

func (s *Scraper) fetchPage(ctx context.Context, pageURL string) ([]domain.Listing, error) {
	if err := s.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get results page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("results page status %d", res.StatusCode)
	}

	return s.parser.ParsePage(res.Body)
}
