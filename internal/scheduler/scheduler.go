// Package scheduler drives repeated pipeline runs on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Task func(ctx context.Context) error

type Scheduler struct {
	c        *cron.Cron
	interval time.Duration
	name     string
	task     Task
}

func New(interval time.Duration, name string, task Task) *Scheduler {
	return &Scheduler{
		c:        cron.New(),
		interval: interval,
		name:     name,
		task:     task,
	}
}

// Start registers the task and kicks off one immediate run so the operator
// isn't waiting a full interval for the first result.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.c.AddFunc(spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.c.Start()
	log.Printf("[scheduler] started (%s)", spec)

	go s.run(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.c.Stop()
	log.Printf("[scheduler] stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.task(ctx); err != nil {
		log.Printf("[%s] error: %v", s.name, err)
	}
}
