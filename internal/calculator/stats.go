package calculator

import (
	"errors"
	"math"
	"sort"
	"time"

	"TrendLens/internal/model"
)

// BullishStats counts bars that closed above their open.
type BullishStats struct {
	Year       int     `json:"year,omitempty"`
	Bullish    int     `json:"bullish_days"`
	Total      int     `json:"total_days"`
	Percentage float64 `json:"bullish_percentage"`
}

var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// YearOf extracts the calendar year from a bar timestamp label.
func YearOf(label string) (int, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// CalculateBullishDays counts bullish bars. A zero year covers every bar;
// otherwise only bars whose timestamp falls in that year are counted.
func CalculateBullishDays(bars []model.BarRecord, year int) BullishStats {
	st := BullishStats{Year: year}
	for _, b := range bars {
		if year != 0 {
			if y, ok := YearOf(b.Timestamp); !ok || y != year {
				continue
			}
		}
		st.Total++
		if b.OHLC.Close() > b.OHLC.Open() {
			st.Bullish++
		}
	}
	if st.Total > 0 {
		st.Percentage = float64(st.Bullish) / float64(st.Total) * 100
	}
	return st
}

// CalculateYearlyBullish returns one BullishStats per year present, oldest first.
// Bars with unparseable timestamps are left out.
func CalculateYearlyBullish(bars []model.BarRecord) []BullishStats {
	byYear := make(map[int]*BullishStats)
	for _, b := range bars {
		y, ok := YearOf(b.Timestamp)
		if !ok {
			continue
		}
		st, found := byYear[y]
		if !found {
			st = &BullishStats{Year: y}
			byYear[y] = st
		}
		st.Total++
		if b.OHLC.Close() > b.OHLC.Open() {
			st.Bullish++
		}
	}
	out := make([]BullishStats, 0, len(byYear))
	for _, st := range byYear {
		st.Percentage = float64(st.Bullish) / float64(st.Total) * 100
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ReturnStats is the mean intraday move, (close-open)/open in percent.
type ReturnStats struct {
	Days           int     `json:"days"`
	AvgDailyReturn float64 `json:"avg_daily_return_pct"`
}

// CalculateReturnStats averages the intraday return of every bar. Bars with
// a NaN or zero open, or a NaN close, are left out.
func CalculateReturnStats(bars []model.BarRecord) (ReturnStats, error) {
	var st ReturnStats
	sum := 0.0
	for _, b := range bars {
		open, closePx := b.OHLC.Open(), b.OHLC.Close()
		if math.IsNaN(open) || math.IsNaN(closePx) || open == 0 {
			continue
		}
		sum += (closePx - open) / open * 100
		st.Days++
	}
	if st.Days == 0 {
		return ReturnStats{}, errors.New("no bars with a usable open and close")
	}
	st.AvgDailyReturn = sum / float64(st.Days)
	return st, nil
}
