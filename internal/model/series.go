package model

import "time"

// SeriesSet is everything the chart needs from one load: four parallel
// arrays of equal length plus one moving-average series per window.
type SeriesSet struct {
	Source         string                `json:"source"`
	LoadID         string                `json:"load_id"`
	LoadedAt       time.Time             `json:"loaded_at"`
	Timestamps     []string              `json:"timestamps"`
	OHLC           []OHLC                `json:"ohlc"`
	Support        []float64             `json:"support"`
	Resistance     []float64             `json:"resistance"`
	MovingAverages []MovingAverageSeries `json:"moving_averages"`
}

// Project splits bars into the parallel arrays. Moving averages are left to
// the caller.
func Project(bars []BarRecord) *SeriesSet {
	set := &SeriesSet{
		Timestamps: make([]string, len(bars)),
		OHLC:       make([]OHLC, len(bars)),
		Support:    make([]float64, len(bars)),
		Resistance: make([]float64, len(bars)),
	}
	for i, b := range bars {
		set.Timestamps[i] = b.Timestamp
		set.OHLC[i] = b.OHLC
		set.Support[i] = b.Support
		set.Resistance[i] = b.Resistance
	}
	return set
}

// Len is the number of bars in the set.
func (s *SeriesSet) Len() int { return len(s.Timestamps) }

// Bars rebuilds the bar records from the parallel arrays.
func (s *SeriesSet) Bars() []BarRecord {
	bars := make([]BarRecord, s.Len())
	for i := range bars {
		bars[i] = BarRecord{
			Timestamp:  s.Timestamps[i],
			Support:    s.Support[i],
			Resistance: s.Resistance[i],
			OHLC:       s.OHLC[i],
		}
	}
	return bars
}

// Clone returns a deep copy.
func (s *SeriesSet) Clone() *SeriesSet {
	if s == nil {
		return nil
	}
	out := *s
	out.Timestamps = append([]string(nil), s.Timestamps...)
	out.OHLC = append([]OHLC(nil), s.OHLC...)
	out.Support = append([]float64(nil), s.Support...)
	out.Resistance = append([]float64(nil), s.Resistance...)
	out.MovingAverages = make([]MovingAverageSeries, len(s.MovingAverages))
	for i, ma := range s.MovingAverages {
		out.MovingAverages[i] = MovingAverageSeries{
			Window: ma.Window,
			Points: append([]MAPoint(nil), ma.Points...),
		}
	}
	return &out
}
