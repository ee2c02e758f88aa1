package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy of cfg with defaults filled in,
// plus everything worth telling the operator about.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// dedupe search URLs, keep order
	seen := map[string]bool{}
	var urls []string
	for _, u := range out.Scrape.SearchURLs {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	out.Scrape.SearchURLs = urls

	if len(out.Scrape.SearchURLs) == 0 {
		res.addErr("scrape.search_urls is empty: nothing to monitor")
	}
	for _, raw := range out.Scrape.SearchURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("scrape.search_urls entry is not an absolute URL: %q", raw)
		}
	}

	if out.Scrape.MaxPages <= 0 {
		out.Scrape.MaxPages = 3
	}
	if out.Scrape.MaxPages > 20 {
		res.addWarn("scrape.max_pages is very high (%d); OLX rarely serves that deep and blocks aggressive crawls.", out.Scrape.MaxPages)
	}
	if out.Scrape.RequestsPerSecond <= 0 {
		out.Scrape.RequestsPerSecond = 1
	}
	if out.Scrape.SearchTimeoutSecs <= 0 {
		out.Scrape.SearchTimeoutSecs = 120
	}
	if strings.TrimSpace(out.Scrape.Currency) == "" {
		out.Scrape.Currency = "PLN"
	}

	if out.Schedule.IntervalMinutes <= 0 {
		out.Schedule.IntervalMinutes = 30
	} else if out.Schedule.IntervalMinutes < 5 {
		res.addWarn("schedule.interval_minutes is very low (%d) and may trigger rate limits.", out.Schedule.IntervalMinutes)
	}

	switch out.Notify.Method {
	case "":
		out.Notify.Method = "console"
	case "console":
	case "email":
		if strings.TrimSpace(out.Notify.SMTP.Host) == "" {
			res.addErr("notify.smtp.host is required when notify.method=email")
		}
		if out.Notify.SMTP.Port == 0 {
			res.addErr("notify.smtp.port is required when notify.method=email")
		}
		if strings.TrimSpace(out.Notify.SMTP.Username) == "" {
			res.addErr("notify.smtp.username is required when notify.method=email")
		}
		if strings.TrimSpace(out.Notify.SMTP.From) == "" {
			out.Notify.SMTP.From = out.Notify.SMTP.Username
		}
	default:
		res.addErr("notify.method must be console or email, got %q", out.Notify.Method)
	}

	return out, res
}
