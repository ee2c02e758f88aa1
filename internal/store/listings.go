package store

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"olx-monitor/internal/domain"
)

// InsertListingIfNew inserts a listing unless its olx_id is already present.
// Returns true when a row was added. A listing without id/title/url is an
// extractor bug, not routine markup noise, so it errors instead of being
// swallowed.
func (d *DB) InsertListingIfNew(ctx context.Context, l domain.Listing) (bool, error) {
	if l.OLXID == "" || l.Title == "" || l.URL == "" {
		return false, errors.New("listing missing olx_id, title or url")
	}
	if l.Currency == "" {
		l.Currency = domain.DefaultCurrency
	}

	res, err := d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO listings(olx_id, title, price, currency, url, location, description, posted_at, scraped_at, notified)
VALUES(?,?,?,?,?,?,?,?,?,0);`,
		l.OLXID,
		l.Title,
		l.Price,
		l.Currency,
		l.URL,
		l.Location,
		l.Description,
		l.PostedAt.UTC().Format(time.RFC3339),
		l.ScrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (d *DB) HasListing(ctx context.Context, olxID string) (bool, error) {
	var one int
	err := d.Pool.QueryRowContext(ctx,
		`SELECT 1 FROM listings WHERE olx_id = ?;`, olxID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UnnotifiedListings returns listings no run has marked handled yet,
// typically ones whose notification failed last run.
func (d *DB) UnnotifiedListings(ctx context.Context) ([]domain.Listing, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT olx_id, title, price, currency, url, location, description, posted_at, scraped_at
FROM listings
WHERE notified = 0
ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var l domain.Listing
		var postedAt, scrapedAt string
		if err := rows.Scan(&l.OLXID, &l.Title, &l.Price, &l.Currency, &l.URL,
			&l.Location, &l.Description, &postedAt, &scrapedAt); err != nil {
			return nil, err
		}
		l.PostedAt = parseStoredTime(l.OLXID, "posted_at", postedAt)
		l.ScrapedAt = parseStoredTime(l.OLXID, "scraped_at", scrapedAt)
		out = append(out, l)
	}
	return out, rows.Err()
}

// parseStoredTime rehydrates an RFC3339 column. Only this code writes these
// columns, so a parse failure means the row was corrupted; it is logged loudly
// instead of silently yielding a zero timestamp.
func parseStoredTime(olxID, column, value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Printf("[store] listing %s: corrupt %s %q: %v", olxID, column, value, err)
	}
	return ts
}

// MarkNotified flags a listing as handled so later runs don't re-notify it.
func (d *DB) MarkNotified(ctx context.Context, olxID string) error {
	_, err := d.Pool.ExecContext(ctx,
		`UPDATE listings SET notified = 1 WHERE olx_id = ?;`, olxID)
	return err
}
