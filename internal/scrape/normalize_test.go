package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		none bool
	}{
		{name: "thousands separator and decimal comma", raw: "1 234,50 zł", want: 1234.50},
		{name: "plain integer", raw: "2500 zł", want: 2500},
		{name: "nbsp separator", raw: "12 999 zł", want: 12999},
		{name: "prefixed text", raw: "od 1 500 zł", want: 1500},
		{name: "empty", raw: "", none: true},
		{name: "no digits", raw: "Za darmo", none: true},
		{name: "free english", raw: "Free", none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrice(tt.raw)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "Warszawa, Mokotów",
		NormalizeLocation("Warszawa, Mokotów - Odświeżono dnia 25 sierpnia 2025"))
	assert.Equal(t, "Kraków", NormalizeLocation("  Kraków  "))
	assert.Equal(t, "", NormalizeLocation(""))
}

func TestListingID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.olx.pl/d/oferta/iphone-13-ID7x9k2.html", "7x9k2"},
		{"https://www.olx.pl/d/oferta/iphone-13-55012345.html", "55012345"},
		{"https://www.olx.pl/d/oferta/ad-unusual.html", "ad-unusual"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ListingID(tt.url), tt.url)
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "iPhone 14 Pro", CleanText("  iPhone 14 \n Pro  "))
}
