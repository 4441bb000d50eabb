package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// OHLC holds a bar's prices in (open, close, low, high) order, the tuple
// layout the candlestick renderer expects.
type OHLC [4]float64

func (o OHLC) Open() float64  { return o[0] }
func (o OHLC) Close() float64 { return o[1] }
func (o OHLC) Low() float64   { return o[2] }
func (o OHLC) High() float64  { return o[3] }

// NewOHLC builds the tuple from canonically ordered prices.
func NewOHLC(open, high, low, close float64) OHLC {
	return OHLC{open, close, low, high}
}

// MarshalJSON writes NaN prices as null so an unparseable column does not
// break the whole payload.
func (o OHLC) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 48)
	buf = append(buf, '[')
	for i, v := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendFloat(buf, v)
	}
	buf = append(buf, ']')
	return buf, nil
}

// UnmarshalJSON accepts the output of MarshalJSON, mapping null back to NaN.
func (o *OHLC) UnmarshalJSON(data []byte) error {
	var raw [4]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, p := range raw {
		if p == nil {
			o[i] = math.NaN()
			continue
		}
		o[i] = *p
	}
	return nil
}

// BarRecord is one parsed row of the price file.
type BarRecord struct {
	Timestamp  string  `json:"timestamp"`
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	OHLC       OHLC    `json:"ohlc"`
}

func appendFloat(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, v, 'f', -1, 64)
}
