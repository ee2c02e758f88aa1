// Command monitor scrapes OLX.pl search results and alerts subscribers
// whose filters match new listings.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"olx-monitor/internal/config"
	"olx-monitor/internal/notify"
	"olx-monitor/internal/secrets"
	"olx-monitor/internal/store"
)

var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "OLX listing monitor and notifier",
	Long:  "Scrapes OLX.pl search results, deduplicates listings, and notifies subscribers whose filters match.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"data directory (default $OLX_DATA_DIR or .)")
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(seedFilterCmd())
	rootCmd.AddCommand(setPasswordCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func dataDir() (string, error) {
	dir := dataDirFlag
	if dir == "" {
		dir = os.Getenv("OLX_DATA_DIR")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// bootstrap loads and validates config and opens the store. Every command
// except set-password goes through here.
func bootstrap() (config.Config, *store.DB, string, error) {
	dir, err := dataDir()
	if err != nil {
		return config.Config{}, nil, "", err
	}

	cfgPath, err := config.EnsureUserConfig(dir)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("config load (%s): %w", cfgPath, err)
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Printf("[config] error: %s", e)
		}
		return config.Config{}, nil, "", fmt.Errorf("invalid config (%s)", cfgPath)
	}
	if cfg.App.DataDir != "" {
		dir = cfg.App.DataDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return config.Config{}, nil, "", err
		}
	}

	db, err := store.Open(filepath.Join(dir, "olx.db"))
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("open store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return config.Config{}, nil, "", fmt.Errorf("migrate store: %w", err)
	}

	return cfg, db, dir, nil
}

func buildSink(cfg config.Config) (notify.Sink, error) {
	switch cfg.Notify.Method {
	case "email":
		pw, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
		if err != nil {
			return nil, err
		}
		return notify.NewEmailSink(notify.SMTPConfig{
			Host:     cfg.Notify.SMTP.Host,
			Port:     cfg.Notify.SMTP.Port,
			Username: cfg.Notify.SMTP.Username,
			Password: pw,
			From:     cfg.Notify.SMTP.From,
		}), nil
	default:
		return notify.ConsoleSink{}, nil
	}
}
