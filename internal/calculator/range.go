package calculator

import (
	"errors"
	"math"

	"TrendLens/internal/model"
)

// CalculateRange scans the most recent lookback bars and returns the high and low.
// A lookback of zero or more than the bar count scans everything. NaN prices are skipped.
func CalculateRange(bars []model.BarRecord, lookback int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := 0
	if lookback > 0 && lookback < n {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if h := bars[i].OHLC.High(); h > high {
			high = h
		}
		if l := bars[i].OHLC.Low(); l < low {
			low = l
		}
	}
	if math.IsInf(high, -1) || math.IsInf(low, 1) {
		return 0, 0, errors.New("no valid prices in range")
	}
	return high, low, nil
}

// CalculateRangePosition returns where price sits within [low, high] (0.0~1.0).
func CalculateRangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
