package report

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"TrendLens/internal/calculator"
	"TrendLens/internal/model"
)

func sampleSet(t *testing.T) *model.SeriesSet {
	t.Helper()
	bars := []model.BarRecord{
		{Timestamp: "2023-12-29", Support: 10, Resistance: 20, OHLC: model.OHLC{5, 6, 4, 7}},
		{Timestamp: "2024-01-02", Support: 11, Resistance: 21, OHLC: model.OHLC{6, 7, 5, 8}},
		{Timestamp: "2024-01-03", Support: 12, Resistance: 22, OHLC: model.OHLC{7, 4, 3, 6}},
	}
	set := model.Project(bars)
	set.Source = "tsla.csv"
	mas, err := calculator.MovingAverages([]int{2, 5}, bars, calculator.WarmupFullWindow)
	if err != nil {
		t.Fatal(err)
	}
	set.MovingAverages = mas
	return set
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleSet(t))
	if s.Bars != 3 || s.First != "2023-12-29" || s.Last != "2024-01-03" {
		t.Errorf("unexpected header fields: %+v", s)
	}
	if s.LastClose == nil || *s.LastClose != 4 {
		t.Errorf("last close: got %v", s.LastClose)
	}
	if *s.High != 8 || *s.Low != 3 {
		t.Errorf("range: got %v/%v", *s.High, *s.Low)
	}
	if *s.RangePosition != 0.2 {
		t.Errorf("range position: got %v", *s.RangePosition)
	}
	if len(s.MovingAverages) != 2 {
		t.Fatalf("expected 2 MA entries, got %d", len(s.MovingAverages))
	}
	if s.MovingAverages[0].Value == nil || *s.MovingAverages[0].Value != 5.5 {
		t.Errorf("MA2 latest: got %v", s.MovingAverages[0].Value)
	}
	if s.MovingAverages[1].Value != nil {
		t.Errorf("MA5 should have no value yet, got %v", *s.MovingAverages[1].Value)
	}
	if s.Bullish.Bullish != 2 || len(s.Yearly) != 2 {
		t.Errorf("bullish stats: %+v %+v", s.Bullish, s.Yearly)
	}
}

func TestSummarize_MovingAveragesMatchSeries(t *testing.T) {
	closes := []float64{3.1, 4.1, 5.9, 2.6, 5.3, 5.8, 9.7, 9.3, 2.3, 8.4}
	bars := make([]model.BarRecord, len(closes))
	for i, c := range closes {
		bars[i] = model.BarRecord{Timestamp: "2024-02-01", OHLC: model.NewOHLC(c, c+1, c-1, c)}
	}
	set := model.Project(bars)
	mas, err := calculator.MovingAverages([]int{1, 2, 3, 5, 10, 12}, bars, calculator.WarmupFullWindow)
	if err != nil {
		t.Fatal(err)
	}
	set.MovingAverages = mas

	s := Summarize(set)
	for i, ma := range mas {
		got := s.MovingAverages[i].Value
		want, ok := ma.Latest()
		if !ok {
			if got != nil {
				t.Errorf("%s: expected no value, got %v", ma.Name(), *got)
			}
			continue
		}
		if got == nil || *got != want {
			t.Errorf("%s: expected %v, got %v", ma.Name(), want, got)
		}
	}
}

func TestSummarize_LegacyWarmupStillReportsTrailingAverage(t *testing.T) {
	bars := []model.BarRecord{
		{Timestamp: "2024-01-01", OHLC: model.OHLC{1, 2, 0, 3}},
		{Timestamp: "2024-01-02", OHLC: model.OHLC{2, 4, 1, 5}},
	}
	set := model.Project(bars)
	mas, err := calculator.MovingAverages([]int{2}, bars, calculator.WarmupLegacy)
	if err != nil {
		t.Fatal(err)
	}
	set.MovingAverages = mas
	if _, ok := mas[0].Latest(); ok {
		t.Fatal("legacy series should have no available point yet")
	}
	s := Summarize(set)
	if v := s.MovingAverages[0].Value; v == nil || *v != 3 {
		t.Errorf("MA2 trailing average: expected 3, got %v", v)
	}
}

func TestSummarize_Returns(t *testing.T) {
	s := Summarize(sampleSet(t))
	want := (20.0 + 100.0/6 + (4.0-7)/7*100) / 3
	if s.AvgDailyReturn == nil || math.Abs(*s.AvgDailyReturn-want) > 1e-9 {
		t.Errorf("avg daily return: expected %.6f, got %v", want, s.AvgDailyReturn)
	}
	if s.AllTimeHigh == nil || *s.AllTimeHigh != 8 || s.AllTimeLow == nil || *s.AllTimeLow != 3 {
		t.Errorf("all-time range: got %v/%v", s.AllTimeHigh, s.AllTimeLow)
	}
}

func TestSummarize_NaNClose(t *testing.T) {
	set := model.Project([]model.BarRecord{{Timestamp: "2024-01-01", OHLC: model.OHLC{1, math.NaN(), 0, 2}}})
	s := Summarize(set)
	if s.LastClose != nil {
		t.Errorf("expected nil last close, got %v", *s.LastClose)
	}
	if _, err := json.Marshal(s); err != nil {
		t.Errorf("summary with NaN close must marshal: %v", err)
	}
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(Summarize(sampleSet(t)))
	for _, want := range []string{"tsla.csv", "MA2", "MA5", "n/a", "Bullish days", "2024", "Average daily return: -2.06%", "All-time high: 8.00  low: 3.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatBullish(t *testing.T) {
	msg := FormatBullish("TSLA", calculator.BullishStats{Year: 2024, Bullish: 2, Total: 4, Percentage: 50})
	if !strings.HasPrefix(msg, "In 2024, TSLA had 2 bullish days out of 4") {
		t.Errorf("unexpected message: %s", msg)
	}
	msg = FormatBullish("TSLA", calculator.BullishStats{Bullish: 1, Total: 4, Percentage: 25})
	if !strings.Contains(msg, "25.00%") {
		t.Errorf("unexpected message: %s", msg)
	}
}
