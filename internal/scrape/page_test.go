package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div data-cy="l-card">
  <a href="/d/oferta/iphone-13-pro-ID8abc1.html"><h6>iPhone 13 Pro 128GB</h6></a>
  <p data-testid="ad-price">2 500 zł</p>
  <p data-testid="location-date">Warszawa, Mokotów - Odświeżono dnia 25 sierpnia 2025</p>
</div>
<div data-cy="l-card">
  <a href="https://www.olx.pl/d/oferta/iphone-12-ID9def2.html"><h6>iPhone 12 mini</h6></a>
  <p data-testid="ad-price">Za darmo</p>
</div>
<div data-cy="l-card">
  <p data-testid="ad-price">999 zł</p>
</div>
</body></html>`

func TestParsePage(t *testing.T) {
	p := NewParser("https://www.olx.pl")

	listings, err := p.ParsePage(strings.NewReader(resultsPage))
	require.NoError(t, err)

	// third card has no title and is skipped, not fatal
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "iPhone 13 Pro 128GB", first.Title)
	assert.Equal(t, "https://www.olx.pl/d/oferta/iphone-13-pro-ID8abc1.html", first.URL)
	assert.Equal(t, "8abc1", first.OLXID)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 2500, *first.Price, 0.001)
	assert.Equal(t, "PLN", first.Currency)
	assert.Equal(t, "Warszawa, Mokotów", first.Location)
	assert.False(t, first.ScrapedAt.IsZero())
	assert.Equal(t, first.ScrapedAt, first.PostedAt)

	second := listings[1]
	assert.Equal(t, "9def2", second.OLXID)
	assert.Nil(t, second.Price, "unparseable price degrades to nil")
	assert.Equal(t, "", second.Location)
}

func TestParsePageFallbackSelector(t *testing.T) {
	// no data-cy markers at all: the hash-class heuristic takes over
	page := `<html><body>
<div class="css-1sw7q4x">
  <a href="/d/oferta/iphone-14-ID1xyz9.html"><h4>iPhone 14</h4></a>
</div>
</body></html>`

	p := NewParser("https://www.olx.pl")
	listings, err := p.ParsePage(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "iPhone 14", listings[0].Title)
	assert.Equal(t, "1xyz9", listings[0].OLXID)
}

func TestParsePageEmpty(t *testing.T) {
	p := NewParser("https://www.olx.pl")
	listings, err := p.ParsePage(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestExtractListingMissingLink(t *testing.T) {
	page := `<html><body><div data-cy="l-card"><h6>Title but no anchor</h6></div></body></html>`
	p := NewParser("https://www.olx.pl")
	listings, err := p.ParsePage(strings.NewReader(page))
	require.NoError(t, err)
	assert.Empty(t, listings)
}
