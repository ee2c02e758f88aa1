package scrape

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"olx-monitor/internal/domain"
)

// Parser extracts listings from OLX search-result documents.
type Parser struct {
	Origin   string // scheme+host for absolutizing relative hrefs
	Currency string
}

func NewParser(origin string) *Parser {
	return &Parser{Origin: origin, Currency: domain.DefaultCurrency}
}

// ParsePage finds every ad card in a results document and extracts a listing
// from each, in document order. Cards OLX tags with data-cy="l-card" are the
// primary candidates; when a layout change drops that attribute the parser
// falls back to the generated css-* hash classes. A card that fails
// extraction is skipped, never fatal for the page.
func (p *Parser) ParsePage(r io.Reader) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results html: %w", err)
	}

	cards := doc.Find(`div[data-cy="l-card"]`)
	if cards.Length() == 0 {
		cards = doc.Find(`div[class*="css-"]`)
	}

	var out []domain.Listing
	cards.Each(func(_ int, card *goquery.Selection) {
		l, ok := p.ExtractListing(card)
		if !ok {
			return
		}
		out = append(out, l)
	})
	return out, nil
}
