// Package monitor orchestrates one fetch→dedup→match→dispatch pipeline run.
package monitor

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"olx-monitor/internal/config"
	"olx-monitor/internal/domain"
	"olx-monitor/internal/notify"
	"olx-monitor/internal/scrape"
	"olx-monitor/internal/store"
)

type Monitor struct {
	cfg  config.Config
	db   *store.DB
	sink notify.Sink
	lock *flock.Flock
}

func New(cfg config.Config, db *store.DB, sink notify.Sink, dataDir string) *Monitor {
	return &Monitor{
		cfg:  cfg,
		db:   db,
		sink: sink,
		lock: flock.New(filepath.Join(dataDir, "monitor.lock")),
	}
}

// RunOnce executes a full pipeline cycle. Overlapping runs (a slow cycle
// still going when the next tick fires) skip instead of double-notifying.
// Filters are snapshotted once at the start; each run owns its own batch.
func (m *Monitor) RunOnce(ctx context.Context) (domain.DispatchStats, error) {
	locked, err := m.lock.TryLock()
	if err != nil {
		return domain.DispatchStats{}, fmt.Errorf("run lock: %w", err)
	}
	if !locked {
		log.Printf("[monitor] previous run still in progress, skipping")
		return domain.DispatchStats{}, nil
	}
	defer m.lock.Unlock()

	start := time.Now()
	log.Printf("[monitor] run started: %d search(es), max %d pages each",
		len(m.cfg.Scrape.SearchURLs), m.cfg.Scrape.MaxPages)

	filters, err := m.db.ActiveFilters(ctx)
	if err != nil {
		return domain.DispatchStats{}, fmt.Errorf("load filters: %w", err)
	}

	scraped := m.scrapeAll(ctx)

	var fresh []domain.Listing
	seen := map[string]bool{}
	var dupes int
	for _, l := range scraped {
		added, err := m.db.InsertListingIfNew(ctx, l)
		if err != nil {
			log.Printf("[monitor] insert %s: %v", l.OLXID, err)
			continue
		}
		if !added {
			dupes++
			continue
		}
		seen[l.OLXID] = true
		fresh = append(fresh, l)
	}

	// Listings left unmarked by an earlier run (a sink failure, a crash) get
	// another dispatch attempt. Redelivery beats silent loss.
	candidates := fresh
	if retry, err := m.db.UnnotifiedListings(ctx); err != nil {
		log.Printf("[monitor] load unnotified: %v", err)
	} else {
		for _, l := range retry {
			if seen[l.OLXID] {
				continue
			}
			candidates = append(candidates, l)
		}
	}

	stats, results := notify.NewDispatcher(m.sink).Dispatch(ctx, candidates, filters)

	// A candidate is handled once its sink call succeeded, or once it matched
	// nothing at all. Failed dispatches stay unmarked for the next run.
	failed := map[string]bool{}
	for _, r := range results {
		if !r.Delivered {
			failed[r.Listing.OLXID] = true
		}
	}
	for _, l := range candidates {
		if failed[l.OLXID] {
			continue
		}
		if err := m.db.MarkNotified(ctx, l.OLXID); err != nil {
			log.Printf("[monitor] mark notified %s: %v", l.OLXID, err)
		}
	}

	log.Printf("[monitor] run done in %.2fs: scraped=%d new=%d duplicates=%d dispatched=%d matched=%d sent=%d failed=%d",
		time.Since(start).Seconds(), len(scraped), len(fresh), dupes, len(candidates),
		stats.MatchedListings, stats.NotificationsSent, stats.FailedListings)
	return stats, nil
}

// scrapeAll fans one goroutine out per configured search. Pages within one
// search stay sequential and all searches share one pacer, so OLX sees a
// steady request rate either way. A failing search never cancels siblings.
func (m *Monitor) scrapeAll(ctx context.Context) []domain.Listing {
	pacer := scrape.NewPacer(m.cfg.Scrape.RequestsPerSecond, 2)
	timeout := time.Duration(m.cfg.Scrape.SearchTimeoutSecs) * time.Second

	var mu sync.Mutex
	var all []domain.Listing

	var g errgroup.Group
	for _, searchURL := range m.cfg.Scrape.SearchURLs {
		searchURL := searchURL
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			parser := scrape.NewParser(originOf(searchURL))
			if m.cfg.Scrape.Currency != "" {
				parser.Currency = m.cfg.Scrape.Currency
			}
			s := scrape.NewScraper(searchURL, parser, pacer)

			listings, err := s.ScrapeListings(sctx, m.cfg.Scrape.MaxPages)
			if err != nil {
				log.Printf("[monitor] %s: %v (keeping %d listings)", searchURL, err, len(listings))
			}
			mu.Lock()
			all = append(all, listings...)
			mu.Unlock()
			return nil // best-effort: don't cancel siblings
		})
	}
	_ = g.Wait()
	return all
}

func originOf(searchURL string) string {
	u, err := url.Parse(searchURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "https://www.olx.pl"
	}
	return u.Scheme + "://" + u.Host
}
