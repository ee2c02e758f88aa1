package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		SearchURLs        []string `yaml:"search_urls"`
		MaxPages          int      `yaml:"max_pages"`
		RequestsPerSecond float64  `yaml:"requests_per_second"`
		SearchTimeoutSecs int      `yaml:"search_timeout_seconds"`
		Currency          string   `yaml:"currency"`
	} `yaml:"scrape"`

	Schedule struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"schedule"`

	Notify struct {
		Method string `yaml:"method"` // console | email
		SMTP   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Username string `yaml:"username"`
			From     string `yaml:"from"`
		} `yaml:"smtp"`
	} `yaml:"notify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
