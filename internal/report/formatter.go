package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"TrendLens/internal/calculator"
	"TrendLens/internal/model"
)

// rangeLookback is roughly one trading year of daily bars.
const rangeLookback = 252

// MALatest is the most recent available value of one moving average.
type MALatest struct {
	Name   string   `json:"name"`
	Window int      `json:"window"`
	Value  *float64 `json:"value"`
}

// Summary condenses one series set for the console and the JSON API.
type Summary struct {
	Source         string                    `json:"source"`
	LoadID         string                    `json:"load_id"`
	LoadedAt       time.Time                 `json:"loaded_at"`
	Bars           int                       `json:"bars"`
	First          string                    `json:"first,omitempty"`
	Last           string                    `json:"last,omitempty"`
	LastClose      *float64                  `json:"last_close"`
	High           *float64                  `json:"high"`
	Low            *float64                  `json:"low"`
	RangePosition  *float64                  `json:"range_position"`
	AvgDailyReturn *float64                  `json:"avg_daily_return_pct"`
	AllTimeHigh    *float64                  `json:"all_time_high"`
	AllTimeLow     *float64                  `json:"all_time_low"`
	MovingAverages []MALatest                `json:"moving_averages"`
	Bullish        calculator.BullishStats   `json:"bullish"`
	Yearly         []calculator.BullishStats `json:"yearly"`
}

// Summarize computes the summary of set.
func Summarize(set *model.SeriesSet) Summary {
	bars := set.Bars()
	s := Summary{
		Source:   set.Source,
		LoadID:   set.LoadID,
		LoadedAt: set.LoadedAt,
		Bars:     len(bars),
		Bullish:  calculator.CalculateBullishDays(bars, 0),
		Yearly:   calculator.CalculateYearlyBullish(bars),
	}
	if len(bars) > 0 {
		s.First = bars[0].Timestamp
		s.Last = bars[len(bars)-1].Timestamp
		s.LastClose = finite(bars[len(bars)-1].OHLC.Close())
	}
	if h, l, err := calculator.CalculateRange(bars, rangeLookback); err == nil {
		s.High, s.Low = finite(h), finite(l)
		if s.LastClose != nil {
			if pos, err := calculator.CalculateRangePosition(*s.LastClose, h, l); err == nil {
				s.RangePosition = finite(pos)
			}
		}
	}
	if h, l, err := calculator.CalculateRange(bars, 0); err == nil {
		s.AllTimeHigh, s.AllTimeLow = finite(h), finite(l)
	}
	if rs, err := calculator.CalculateReturnStats(bars); err == nil {
		s.AvgDailyReturn = finite(rs.AvgDailyReturn)
	}
	closes := calculator.ExtractCloses(bars)
	for _, ma := range set.MovingAverages {
		entry := MALatest{Name: ma.Name(), Window: ma.Window}
		// The trailing average only needs window bars, whatever warmup the chart used.
		if v, err := calculator.CalculateSMA(closes, ma.Window); err == nil {
			entry.Value = finite(v)
		}
		s.MovingAverages = append(s.MovingAverages, entry)
	}
	return s
}

// FormatSummary renders the summary as console tables.
func FormatSummary(s Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s | %d bars | %s → %s\n", s.Source, s.Bars, s.First, s.Last))
	if !s.LoadedAt.IsZero() {
		b.WriteString(fmt.Sprintf("loaded %s (load %s)\n", s.LoadedAt.Format("2006-01-02 15:04:05"), s.LoadID))
	}
	b.WriteString("\n")

	prices := table.NewWriter()
	prices.SetTitle("Latest")
	prices.AppendHeader(table.Row{"Series", "Value"})
	prices.AppendRow(table.Row{"Close", formatPtr(s.LastClose)})
	for _, ma := range s.MovingAverages {
		dev := ""
		if ma.Value != nil && s.LastClose != nil && *ma.Value != 0 {
			pct := (*s.LastClose - *ma.Value) / *ma.Value * 100
			dev = fmt.Sprintf(" (%+.1f%%)", pct)
		}
		prices.AppendRow(table.Row{ma.Name, formatPtr(ma.Value) + dev})
	}
	prices.AppendSeparator()
	prices.AppendRow(table.Row{fmt.Sprintf("High (%d)", rangeLookback), formatPtr(s.High)})
	prices.AppendRow(table.Row{fmt.Sprintf("Low (%d)", rangeLookback), formatPtr(s.Low)})
	if s.RangePosition != nil {
		prices.AppendRow(table.Row{"Range position", fmt.Sprintf("%.0f%%", *s.RangePosition*100)})
	}
	prices.SetStyle(table.StyleLight)
	b.WriteString(prices.Render())
	b.WriteString("\n\n")

	days := table.NewWriter()
	days.SetTitle("Bullish days")
	days.AppendHeader(table.Row{"Year", "Bullish", "Total", "%"})
	for _, y := range s.Yearly {
		days.AppendRow(table.Row{y.Year, y.Bullish, y.Total, fmt.Sprintf("%.2f", y.Percentage)})
	}
	days.AppendFooter(table.Row{"All", s.Bullish.Bullish, s.Bullish.Total, fmt.Sprintf("%.2f", s.Bullish.Percentage)})
	days.SetStyle(table.StyleLight)
	b.WriteString(days.Render())
	b.WriteString("\n")
	if s.AvgDailyReturn != nil {
		b.WriteString(fmt.Sprintf("Average daily return: %+.2f%%\n", *s.AvgDailyReturn))
	}
	b.WriteString(fmt.Sprintf("All-time high: %s  low: %s\n", formatPtr(s.AllTimeHigh), formatPtr(s.AllTimeLow)))
	return b.String()
}

// FormatBullish answers "how many bullish days" in one sentence.
func FormatBullish(source string, st calculator.BullishStats) string {
	if st.Year != 0 {
		return fmt.Sprintf("In %d, %s had %d bullish days out of %d trading days, representing %.2f%% of all trading days.",
			st.Year, source, st.Bullish, st.Total, st.Percentage)
	}
	return fmt.Sprintf("%s had %d bullish days out of %d trading days, representing %.2f%% of all trading days.",
		source, st.Bullish, st.Total, st.Percentage)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
