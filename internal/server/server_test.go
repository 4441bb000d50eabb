package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"TrendLens/internal/chart"
	"TrendLens/internal/metrics"
	"TrendLens/internal/model"
	"TrendLens/internal/store"
)

func loadedServer(t *testing.T) *Server {
	t.Helper()
	set := model.Project([]model.BarRecord{
		{Timestamp: "2024-01-01", Support: 10, Resistance: 20, OHLC: model.OHLC{5, 6, 4, 7}},
		{Timestamp: "2024-01-02", Support: 11, Resistance: 21, OHLC: model.OHLC{6, 7, 5, 8}},
		{Timestamp: "2025-01-03", Support: 12, Resistance: 22, OHLC: model.OHLC{7, math.NaN(), 3, 6}},
	})
	set.Source = "tsla.csv"
	set.MovingAverages = []model.MovingAverageSeries{{
		Window: 2,
		Points: []model.MAPoint{model.Unavailable, model.Available(6.5), model.Available(math.NaN())},
	}}
	snap := store.NewSnapshot()
	snap.Set(set)
	return NewServer(snap, metrics.NewMetrics(), chart.Options{Title: "TSLA"})
}

func do(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSeries(t *testing.T) {
	rec := do(loadedServer(t), "/api/series")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Timestamps     []string      `json:"timestamps"`
		OHLC           [][4]*float64 `json:"ohlc"`
		Support        []float64     `json:"support"`
		MovingAverages []struct {
			Window int        `json:"window"`
			Points []*float64 `json:"points"`
		} `json:"moving_averages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Timestamps) != 3 || len(body.OHLC) != 3 || len(body.Support) != 3 {
		t.Fatalf("unexpected lengths: %+v", body)
	}
	if body.OHLC[2][1] != nil {
		t.Error("NaN close should be null")
	}
	if *body.OHLC[0][1] != 6 {
		t.Errorf("ohlc[0] close: got %v", *body.OHLC[0][1])
	}
	pts := body.MovingAverages[0].Points
	if pts[0] != nil || pts[1] == nil || *pts[1] != 6.5 || pts[2] != nil {
		t.Errorf("unexpected MA points")
	}
}

func TestNoDataYet(t *testing.T) {
	snap := store.NewSnapshot()
	snap.Fail(errors.New("status 404"))
	s := NewServer(snap, nil, chart.Options{})
	for _, path := range []string{"/api/series", "/api/summary", "/api/stats/bullish", "/chart"} {
		rec := do(s, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "status 404") {
			t.Errorf("%s: expected last error in body", path)
		}
	}
	if rec := do(s, "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("metrics without registry: expected 404, got %d", rec.Code)
	}
}

func TestBullish(t *testing.T) {
	s := loadedServer(t)
	rec := do(s, "/api/stats/bullish?year=2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Stats struct {
			Bullish int `json:"bullish_days"`
			Total   int `json:"total_days"`
		} `json:"stats"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Stats.Bullish != 2 || body.Stats.Total != 2 {
		t.Errorf("unexpected stats: %+v", body.Stats)
	}
	if !strings.HasPrefix(body.Message, "In 2024, tsla.csv had 2 bullish days") {
		t.Errorf("unexpected message: %s", body.Message)
	}

	if rec := do(s, "/api/stats/bullish?year=abc"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad year, got %d", rec.Code)
	}
}

func TestSummaryChartHealthMetrics(t *testing.T) {
	s := loadedServer(t)

	if rec := do(s, "/api/summary"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"bars":3`) {
		t.Errorf("summary: %d %s", rec.Code, rec.Body.String())
	}

	rec := do(s, "/chart")
	if rec.Code != http.StatusOK {
		t.Fatalf("chart: expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("chart: unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "MA2") {
		t.Error("chart: missing MA2 series")
	}

	if rec := do(s, "/healthz"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"has_data":true`) {
		t.Errorf("healthz: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(s, "/metrics"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "trendlens_load_duration_seconds") {
		t.Errorf("metrics: %d", rec.Code)
	}
}
