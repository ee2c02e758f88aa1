package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"olx-monitor/internal/domain"
)

// ActiveFilters returns every filter with active=1, keywords already split
// and cleaned. The pipeline snapshots this once per run.
func (d *DB) ActiveFilters(ctx context.Context) ([]domain.SubscriberFilter, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, name, email, min_price, max_price, keywords, location, active, created_at
FROM filters
WHERE active = 1
ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query filters: %w", err)
	}
	defer rows.Close()

	var out []domain.SubscriberFilter
	for rows.Next() {
		var f domain.SubscriberFilter
		var keywords, createdAt string
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.MinPrice, &f.MaxPrice,
			&keywords, &f.Location, &f.Active, &createdAt); err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		f.Keywords = SplitKeywords(keywords)
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, f)
	}
	return out, rows.Err()
}

// AddFilter stores a new subscriber filter and returns its id. Keywords are
// persisted comma-joined.
func (d *DB) AddFilter(ctx context.Context, f domain.SubscriberFilter) (int64, error) {
	if strings.TrimSpace(f.Name) == "" {
		return 0, fmt.Errorf("filter name is required")
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO filters(name, email, min_price, max_price, keywords, location, active, created_at)
VALUES(?,?,?,?,?,?,?,?);`,
		strings.TrimSpace(f.Name),
		strings.TrimSpace(f.Email),
		f.MinPrice,
		f.MaxPrice,
		strings.Join(f.Keywords, ", "),
		strings.TrimSpace(f.Location),
		f.Active,
		f.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetFilterActive toggles a filter without deleting its history.
func (d *DB) SetFilterActive(ctx context.Context, id int64, active bool) error {
	res, err := d.Pool.ExecContext(ctx,
		`UPDATE filters SET active = ? WHERE id = ?;`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("filter %d not found", id)
	}
	return nil
}

// SplitKeywords turns a stored comma-joined keyword string back into a
// cleaned, deduplicated list.
func SplitKeywords(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := strings.ToLower(k)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
	}
	return out
}
