package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"TrendLens/internal/calculator"
	"TrendLens/internal/metrics"
	"TrendLens/internal/model"
	"TrendLens/internal/parser"
)

// DefaultWindows are the moving averages drawn on the chart.
var DefaultWindows = []int{5, 10, 20, 30}

// MockFetcher returns a fixed payload for development and testing.
type MockFetcher struct {
	Payload string
	Err     error
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ context.Context, locator string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", &RetrievalError{Locator: locator, Err: m.Err}
	}
	return m.Payload, nil
}

// Collector runs one full load: fetch, parse, project and compute indicators.
type Collector struct {
	Fetcher Fetcher
	Source  string
	Windows []int
	Warmup  calculator.Warmup
	Parser  parser.Options
	Metrics *metrics.Metrics
}

// NewCollector creates a new Collector using DefaultWindows.
func NewCollector(fetcher Fetcher, source string) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Source:  source,
		Windows: DefaultWindows,
	}
}

// Load is the one-call pipeline: it fetches locator and builds the series set
// with the given windows.
func Load(ctx context.Context, locator string, windows []int) (*model.SeriesSet, error) {
	c := NewCollector(NewFetcher(locator, "", 0), locator)
	c.Windows = windows
	return c.Collect(ctx)
}

// Collect fetches the payload and derives every series. Any failure aborts the
// load and no partial set is returned.
func (c *Collector) Collect(ctx context.Context) (*model.SeriesSet, error) {
	loadID := uuid.NewString()
	start := time.Now()

	set, err := c.collect(ctx)
	elapsed := time.Since(start)
	if err != nil {
		c.Metrics.ObserveLoad(resultOf(err), elapsed, 0)
		log.Printf("[ERROR] load %s from %s failed after %v: %v", loadID, c.Source, elapsed, err)
		return nil, err
	}

	set.Source = c.Source
	set.LoadID = loadID
	set.LoadedAt = start
	c.Metrics.ObserveLoad(metrics.ResultOK, elapsed, set.Len())
	log.Printf("[INFO] load %s: %d bars, %d moving averages from %s (%s) in %v",
		loadID, set.Len(), len(set.MovingAverages), c.Source, c.Fetcher.Name(), elapsed)
	return set, nil
}

func (c *Collector) collect(ctx context.Context) (*model.SeriesSet, error) {
	raw, err := c.Fetcher.Fetch(ctx, c.Source)
	if err != nil {
		return nil, fmt.Errorf("fetch payload: %w", err)
	}
	bars, err := parser.ParseWithOptions(raw, c.Parser)
	if err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	mas, err := calculator.MovingAverages(c.Windows, bars, c.Warmup)
	if err != nil {
		return nil, fmt.Errorf("compute moving averages: %w", err)
	}
	set := model.Project(bars)
	set.MovingAverages = mas
	return set, nil
}

func resultOf(err error) string {
	var re *RetrievalError
	var mfe *parser.MalformedFieldError
	var iwe *calculator.InvalidWindowError
	switch {
	case errors.As(err, &re):
		return metrics.ResultRetrieval
	case errors.As(err, &mfe):
		return metrics.ResultMalformed
	case errors.As(err, &iwe):
		return metrics.ResultInvalidWindow
	default:
		return metrics.ResultError
	}
}
