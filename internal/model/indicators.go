package model

import (
	"math"
	"strconv"
)

// MAPoint is one position of a moving-average series. Valid is false while
// the averaging window is still warming up.
type MAPoint struct {
	Value float64
	Valid bool
}

// Unavailable is the warm-up marker.
var Unavailable = MAPoint{}

// Available wraps a computed average.
func Available(v float64) MAPoint { return MAPoint{Value: v, Valid: true} }

// MarshalJSON encodes unavailable (or NaN) points as null.
func (p MAPoint) MarshalJSON() ([]byte, error) {
	if !p.Valid || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return []byte("null"), nil
	}
	return appendFloat(nil, p.Value), nil
}

// MovingAverageSeries is index-aligned with the bar sequence it was computed from.
type MovingAverageSeries struct {
	Window int       `json:"window"`
	Points []MAPoint `json:"points"`
}

// Name is the legend label used by the chart, e.g. "MA5".
func (s MovingAverageSeries) Name() string {
	return "MA" + strconv.Itoa(s.Window)
}

// Latest returns the last available point.
func (s MovingAverageSeries) Latest() (float64, bool) {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].Valid {
			return s.Points[i].Value, true
		}
	}
	return 0, false
}
