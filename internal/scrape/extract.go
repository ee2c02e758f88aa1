package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"olx-monitor/internal/domain"
)

// Selector chains tried in order; the first one yielding non-empty text wins.
// OLX regenerates its class names on every deploy, so each chain ends in a
// loose class-substring match.
var (
	titleSelectors    = []string{"h6", "h4", `a[class*="title"]`}
	priceSelectors    = []string{`p[data-testid="ad-price"]`, `span[class*="price"]`}
	locationSelectors = []string{`p[data-testid="location-date"]`, `span[class*="location"]`}
)

func firstText(card *goquery.Selection, selectors []string) string {
	for _, q := range selectors {
		if t := CleanText(card.Find(q).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// ExtractListing turns one ad-card fragment into a Listing. The second
// return is false when the fragment is not a usable ad: no title or no link.
// A missing price or location is not a failure, subscribers can still match
// on the rest.
func (p *Parser) ExtractListing(card *goquery.Selection) (domain.Listing, bool) {
	title := firstText(card, titleSelectors)
	if title == "" {
		return domain.Listing{}, false
	}

	href, _ := card.Find("a[href]").First().Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		return domain.Listing{}, false
	}
	if !strings.HasPrefix(href, "http") {
		href = p.Origin + href
	}

	now := time.Now().UTC()
	l := domain.Listing{
		OLXID:     ListingID(href),
		Title:     title,
		Currency:  p.Currency,
		URL:       href,
		PostedAt:  now, // card markup carries no structured post date
		ScrapedAt: now,
	}

	if raw := firstText(card, priceSelectors); raw != "" {
		l.Price = NormalizePrice(raw)
	}
	if raw := firstText(card, locationSelectors); raw != "" {
		l.Location = NormalizeLocation(raw)
	}

	return l, true
}
