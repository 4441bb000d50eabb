package scheduler

import (
	"context"
	"fmt"
	"log"

	"TrendLens/internal/chart"
	"TrendLens/internal/collector"
	"TrendLens/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler reloads the series set on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Snapshot  *store.Snapshot
	ChartPath string
	ChartOpts chart.Options
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Overlapping reloads are skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, snap *store.Snapshot, chartPath string, chartOpts chart.Options) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Collector: col,
		Snapshot:  snap,
		ChartPath: chartPath,
		ChartOpts: chartOpts,
		Ctx:       ctx,
	}
}

// Register adds the reload task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.reloadTask); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow performs one reload immediately.
func (s *Scheduler) RunNow() error {
	set, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		s.Snapshot.Fail(err)
		return err
	}
	s.Snapshot.Set(set)

	if s.ChartPath != "" {
		if err := chart.RenderFile(s.ChartPath, set, s.ChartOpts); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		log.Printf("[INFO] chart written to %s", s.ChartPath)
	}
	return nil
}

func (s *Scheduler) reloadTask() {
	log.Println("[INFO] running scheduled reload")
	if err := s.RunNow(); err != nil {
		log.Printf("[ERROR] scheduled reload: %v", err)
	}
}
