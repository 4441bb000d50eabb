// Package parser turns the delimited price file into bar records.
//
// Each data row carries nine columns:
//
//	timestamp,direction,support,resistance,open,high,low,close,volume
//
// support and resistance are JSON number arrays such as [10,9] (optionally
// wrapped in double quotes); only their first element is kept.
package parser

import (
	"fmt"
	"io"
	"math"
	"strings"

	"TrendLens/internal/model"
)

const (
	colTimestamp = iota
	colDirection
	colSupport
	colResistance
	colOpen
	colHigh
	colLow
	colClose
	colVolume
)

var columns = [...]string{
	"timestamp", "direction", "support", "resistance",
	"open", "high", "low", "close", "volume",
}

// Options tunes how strictly rows are decoded.
type Options struct {
	// StrictNumeric rejects price columns that have no numeric prefix
	// instead of storing NaN.
	StrictNumeric bool
}

// Parse decodes raw with default options.
func Parse(raw string) ([]model.BarRecord, error) {
	return ParseWithOptions(raw, Options{})
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, opts Options) ([]model.BarRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return ParseWithOptions(string(data), opts)
}

// ParseWithOptions discards the header line and decodes every remaining line.
// The first malformed row aborts the parse and no bars are returned.
func ParseWithOptions(raw string, opts Options) ([]model.BarRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, rowError(0, "empty payload")
	}
	lines := strings.Split(raw, "\n")[1:]

	bars := make([]model.BarRecord, len(lines))
	for i, line := range lines {
		bar, err := parseRow(strings.TrimSpace(line), i+2, opts)
		if err != nil {
			return nil, err
		}
		bars[i] = bar
	}
	return bars, nil
}

func parseRow(line string, lineNo int, opts Options) (model.BarRecord, error) {
	fields, err := splitColumns(line)
	if err != nil {
		return model.BarRecord{}, &MalformedFieldError{Line: lineNo, Value: line, Reason: "tokenize row", Err: err}
	}
	if len(fields) != len(columns) {
		return model.BarRecord{}, rowError(lineNo, fmt.Sprintf("expected %d columns, got %d", len(columns), len(fields)))
	}

	support, err := firstOfArray(fields[colSupport])
	if err != nil {
		return model.BarRecord{}, fieldError(lineNo, colSupport, fields[colSupport], "invalid numeric array", err)
	}
	resistance, err := firstOfArray(fields[colResistance])
	if err != nil {
		return model.BarRecord{}, fieldError(lineNo, colResistance, fields[colResistance], "invalid numeric array", err)
	}

	var prices [4]float64
	for k, col := range []int{colOpen, colHigh, colLow, colClose} {
		v := parseFloatPrefix(fields[col])
		if opts.StrictNumeric && math.IsNaN(v) {
			return model.BarRecord{}, fieldError(lineNo, col, fields[col], "no numeric prefix", nil)
		}
		prices[k] = v
	}

	return model.BarRecord{
		Timestamp:  fields[colTimestamp],
		Support:    support,
		Resistance: resistance,
		OHLC:       model.NewOHLC(prices[0], prices[1], prices[2], prices[3]),
	}, nil
}
