package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"TrendLens/internal/calculator"
	"TrendLens/internal/chart"
	"TrendLens/internal/collector"
	"TrendLens/internal/config"
	"TrendLens/internal/metrics"
	"TrendLens/internal/parser"
	"TrendLens/internal/report"
	"TrendLens/internal/scheduler"
	"TrendLens/internal/server"
	"TrendLens/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendLens starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	warmup, err := calculator.ParseWarmup(cfg.Indicators.Warmup)
	if err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and collector
	timeout := time.Duration(cfg.Source.TimeoutSec) * time.Second
	fetcher := collector.NewFetcher(cfg.Source.Locator, cfg.Proxy, timeout)
	log.Printf("[INFO] data source: %s (%s)", cfg.Source.Locator, fetcher.Name())

	m := metrics.NewMetrics()
	col := collector.NewCollector(fetcher, cfg.Source.Locator)
	col.Windows = cfg.Indicators.Windows
	col.Warmup = warmup
	col.Parser = parser.Options{StrictNumeric: cfg.Parser.StrictNumeric}
	col.Metrics = m

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := store.NewSnapshot()
	chartOpts := chart.Options{Title: cfg.Chart.Title}
	sched := scheduler.NewScheduler(ctx, col, snap, cfg.Chart.OutputPath, chartOpts)

	// Initial load. In one-shot mode a failure is fatal; a server keeps
	// running and retries on schedule.
	if err := sched.RunNow(); err != nil {
		if cfg.Server.Addr == "" {
			log.Fatalf("[FATAL] load: %v", err)
		}
		log.Printf("[WARN] initial load failed, serving 503 until the next reload: %v", err)
	} else if set := snap.Get(); set != nil {
		fmt.Print(report.FormatSummary(report.Summarize(set)))
	}

	if cfg.Server.Addr == "" {
		return
	}

	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := server.NewServer(snap, m, chartOpts)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx, cfg.Server.Addr) })

	log.Println("[INFO] TrendLens is running. Press Ctrl+C to stop.")
	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] http server: %v", err)
	}
	log.Println("[INFO] TrendLens stopped")
}
