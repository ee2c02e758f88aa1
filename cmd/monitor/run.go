package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"olx-monitor/internal/monitor"
	"olx-monitor/internal/scheduler"
)

func runCmd() *cobra.Command {
	var once bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scrape-and-notify pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, dir, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			sink, err := buildSink(cfg)
			if err != nil {
				return err
			}
			m := monitor.New(cfg, db, sink, dir)

			if once {
				_, err := m.RunOnce(cmd.Context())
				return err
			}

			if interval == 0 {
				interval = time.Duration(cfg.Schedule.IntervalMinutes) * time.Minute
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := scheduler.New(interval, "monitor", func(ctx context.Context) error {
				_, err := m.RunOnce(ctx)
				return err
			})
			if err := sched.Start(ctx); err != nil {
				return err
			}
			log.Printf("[monitor] scraping every %s, ctrl-c to stop", interval)

			<-ctx.Done()
			sched.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run a single cycle and exit")
	cmd.Flags().DurationVar(&interval, "interval", 0,
		"scrape interval (default from config schedule.interval_minutes)")
	return cmd
}
