package scrape

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces page requests to the single OLX origin. Bursty fetching is
// what trips the site's anti-scraping layer, so every search shares one
// limiter for the whole run.
type Pacer struct {
	lim *rate.Limiter
}

func NewPacer(reqPerSec float64, burst int) *Pacer {
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Pacer{lim: rate.NewLimiter(rate.Limit(reqPerSec), burst)}
}

func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.lim.Wait(ctx)
}
