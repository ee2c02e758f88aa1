package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "...ID6xyz9k.html": OLX encodes the ad ID after a literal ID marker.
	idMarkerRe = regexp.MustCompile(`ID([^.]+)\.html`)
	// older ad URLs end in "-<digits>.html" instead
	idTrailingRe = regexp.MustCompile(`-(\d+)\.html`)

	priceRunRe = regexp.MustCompile(`\d+(?:,\d+)?`)
)

// CleanText collapses whitespace (including nbsp) and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePrice parses a price fragment like "1 234,50 zł" into 1234.50.
// Thousands separators are spaces, the decimal separator is a comma.
// Anything unparseable ("Za darmo", "Zamienię", "") yields nil.
func NormalizePrice(raw string) *float64 {
	raw = CleanText(raw)
	raw = strings.ReplaceAll(raw, " ", "")

	run := priceRunRe.FindString(raw)
	if run == "" {
		return nil
	}
	run = strings.Replace(run, ",", ".", 1)

	v, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeLocation strips the relative-date suffix OLX appends to the
// location line ("Warszawa, Mokotów - Odświeżono dnia 25 sierpnia").
func NormalizeLocation(raw string) string {
	raw = CleanText(raw)
	if i := strings.Index(raw, "-"); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return raw
}

// ListingID derives the dedup key from an ad URL. It tries the ID-marker
// pattern, then the trailing-digits pattern, and finally falls back to the
// last path segment with ".html" stripped. The fallback key is less stable
// across OLX layout changes but never empty for a non-empty URL.
func ListingID(adURL string) string {
	if m := idMarkerRe.FindStringSubmatch(adURL); m != nil {
		return m[1]
	}
	if m := idTrailingRe.FindStringSubmatch(adURL); m != nil {
		return m[1]
	}
	seg := adURL
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	return strings.TrimSuffix(seg, ".html")
}
