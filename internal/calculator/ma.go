package calculator

import (
	"errors"
	"fmt"

	"TrendLens/internal/model"
)

// InvalidWindowError is returned for a moving-average window below 1.
type InvalidWindowError struct {
	Window int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid moving average window %d: must be >= 1", e.Window)
}

// Warmup decides how many leading points of a moving average are unavailable.
type Warmup int

const (
	// WarmupFullWindow publishes a value as soon as a full window exists,
	// i.e. from index window-1 on.
	WarmupFullWindow Warmup = iota
	// WarmupLegacy publishes from index window on, one bar later than
	// WarmupFullWindow. Older chart builds used this offset.
	WarmupLegacy
)

// ParseWarmup maps a config value to a Warmup.
func ParseWarmup(s string) (Warmup, error) {
	switch s {
	case "", "full":
		return WarmupFullWindow, nil
	case "legacy":
		return WarmupLegacy, nil
	default:
		return 0, fmt.Errorf("unknown warmup policy %q", s)
	}
}

func (w Warmup) String() string {
	if w == WarmupLegacy {
		return "legacy"
	}
	return "full"
}

// MovingAverage computes the simple moving average of closing prices using
// the full-window warm-up.
func MovingAverage(window int, bars []model.BarRecord) (model.MovingAverageSeries, error) {
	return MovingAverageWithPolicy(window, bars, WarmupFullWindow)
}

// MovingAverageWithPolicy computes the simple moving average of closing
// prices. Each available point is the plain sum of the window's closes,
// newest first, divided by window.
func MovingAverageWithPolicy(window int, bars []model.BarRecord, warmup Warmup) (model.MovingAverageSeries, error) {
	if window < 1 {
		return model.MovingAverageSeries{}, &InvalidWindowError{Window: window}
	}
	first := window - 1
	if warmup == WarmupLegacy {
		first = window
	}

	points := make([]model.MAPoint, len(bars))
	for i := range bars {
		if i < first {
			points[i] = model.Unavailable
			continue
		}
		sum := 0.0
		for j := 0; j < window; j++ {
			sum += bars[i-j].OHLC.Close()
		}
		points[i] = model.Available(sum / float64(window))
	}
	return model.MovingAverageSeries{Window: window, Points: points}, nil
}

// MovingAverages runs MovingAverage once per window, in order.
func MovingAverages(windows []int, bars []model.BarRecord, warmup Warmup) ([]model.MovingAverageSeries, error) {
	out := make([]model.MovingAverageSeries, 0, len(windows))
	for _, w := range windows {
		s, err := MovingAverageWithPolicy(w, bars, warmup)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// CalculateSMA computes the simple moving average of the last period prices.
// Prices are summed newest first, as in MovingAverage.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, &InvalidWindowError{Window: period}
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	last := len(prices) - 1
	sum := 0.0
	for j := 0; j < period; j++ {
		sum += prices[last-j]
	}
	return sum / float64(period), nil
}

// ExtractCloses returns the closing price of every bar.
func ExtractCloses(bars []model.BarRecord) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.OHLC.Close()
	}
	return closes
}
