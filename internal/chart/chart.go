// Package chart renders a series set as an interactive candlestick page.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"TrendLens/internal/model"
)

const (
	upColor         = "#FD1050"
	downColor       = "#0CF49B"
	supportColor    = "#0088ff"
	resistanceColor = "#ff8800"

	// missing is the echarts placeholder for a gap in a series.
	missing = "-"
)

// Options controls page-level presentation.
type Options struct {
	Title  string
	Width  string
	Height string
}

// Render writes the candlestick page for set to w: candles, one smoothed line
// per moving average, and dashed support/resistance bands.
func Render(w io.Writer, set *model.SeriesSet, o Options) error {
	if set == nil {
		return errors.New("render chart: no series set")
	}
	if o.Title == "" {
		o.Title = "Candlestick"
	}
	if o.Width == "" {
		o.Width = "100%"
	}
	if o.Height == "" {
		o.Height = "640px"
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title, Width: o.Width, Height: o.Height}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: set.Source}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 20}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	kline.SetXAxis(set.Timestamps).
		AddSeries("Candlestick", klineData(set.OHLC),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        upColor,
				Color0:       downColor,
				BorderColor:  upColor,
				BorderColor0: downColor,
			}),
		)

	lines := charts.NewLine()
	lines.SetXAxis(set.Timestamps)
	for _, ma := range set.MovingAverages {
		lines.AddSeries(ma.Name(), maData(ma),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 1}),
		)
	}
	lines.AddSeries("Support", floatData(set.Support),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Color: supportColor}),
	)
	lines.AddSeries("Resistance", floatData(set.Resistance),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Color: resistanceColor}),
	)
	kline.Overlap(lines)

	if err := kline.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderFile renders into path through a temporary file so readers never see
// a half-written page.
func RenderFile(path string, set *model.SeriesSet, o Options) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".chart-*.html")
	if err != nil {
		return fmt.Errorf("create temp chart: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Render(tmp, set, o); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp chart: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move chart into place: %w", err)
	}
	return nil
}

func klineData(ohlc []model.OHLC) []opts.KlineData {
	out := make([]opts.KlineData, len(ohlc))
	for i, o := range ohlc {
		vals := make([]interface{}, len(o))
		for k, v := range o {
			vals[k] = point(v)
		}
		out[i] = opts.KlineData{Value: vals}
	}
	return out
}

func maData(ma model.MovingAverageSeries) []opts.LineData {
	out := make([]opts.LineData, len(ma.Points))
	for i, p := range ma.Points {
		if !p.Valid {
			out[i] = opts.LineData{Value: missing}
			continue
		}
		out[i] = opts.LineData{Value: point(p.Value)}
	}
	return out
}

func floatData(vals []float64) []opts.LineData {
	out := make([]opts.LineData, len(vals))
	for i, v := range vals {
		out[i] = opts.LineData{Value: point(v)}
	}
	return out
}

func point(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return v
}
