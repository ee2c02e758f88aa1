package config

import (
	"errors"
	"os"
	"path/filepath"
)

const defaultConfig = `app:
  data_dir: ""

scrape:
  search_urls:
    - https://www.olx.pl/d/elektronika/telefony/iphone/
  max_pages: 3
  requests_per_second: 1.0
  search_timeout_seconds: 120
  currency: PLN

schedule:
  interval_minutes: 30

notify:
  method: console
  smtp:
    host: ""
    port: 587
    username: ""
    from: ""
`

// EnsureUserConfig makes sure dataDir holds a config.yml, writing the
// built-in default on first run, and returns its path.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.WriteFile(userPath, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
