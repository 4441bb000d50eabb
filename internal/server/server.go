package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"TrendLens/internal/calculator"
	"TrendLens/internal/chart"
	"TrendLens/internal/metrics"
	"TrendLens/internal/model"
	"TrendLens/internal/report"
	"TrendLens/internal/store"
)

// Server exposes the latest series set over HTTP.
type Server struct {
	Engine    *gin.Engine
	Snapshot  *store.Snapshot
	Metrics   *metrics.Metrics
	ChartOpts chart.Options
}

// NewServer wires the routes. m may be nil, in which case /metrics is not served.
func NewServer(snap *store.Snapshot, m *metrics.Metrics, chartOpts chart.Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		Engine:    gin.New(),
		Snapshot:  snap,
		Metrics:   m,
		ChartOpts: chartOpts,
	}
	s.Engine.Use(gin.Recovery(), requestLogger())

	s.Engine.GET("/healthz", s.getHealth)
	api := s.Engine.Group("/api")
	api.GET("/series", s.getSeries)
	api.GET("/summary", s.getSummary)
	api.GET("/stats/bullish", s.getBullish)
	s.Engine.GET("/chart", s.getChart)
	if m != nil {
		s.Engine.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return s
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] http server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Println("[INFO] http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) getHealth(c *gin.Context) {
	resp := gin.H{
		"status":   "ok",
		"has_data": false,
	}
	if set := s.Snapshot.Get(); set != nil {
		resp["has_data"] = true
		resp["bars"] = set.Len()
		resp["loaded_at"] = set.LoadedAt
	}
	if err := s.Snapshot.LastError(); err != nil {
		resp["last_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSeries(c *gin.Context) {
	set, ok := s.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, set)
}

func (s *Server) getSummary(c *gin.Context) {
	set, ok := s.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Summarize(set))
}

func (s *Server) getBullish(c *gin.Context) {
	set, ok := s.current(c)
	if !ok {
		return
	}
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a positive integer"})
			return
		}
		year = y
	}
	st := calculator.CalculateBullishDays(set.Bars(), year)
	c.JSON(http.StatusOK, gin.H{
		"stats":   st,
		"message": report.FormatBullish(set.Source, st),
	})
}

func (s *Server) getChart(c *gin.Context) {
	set, ok := s.current(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, set, s.ChartOpts); err != nil {
		log.Printf("[ERROR] render chart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render chart failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) current(c *gin.Context) (*model.SeriesSet, bool) {
	set := s.Snapshot.Get()
	if set == nil {
		resp := gin.H{"error": "no data loaded yet"}
		if err := s.Snapshot.LastError(); err != nil {
			resp["last_error"] = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, resp)
		return nil, false
	}
	return set, true
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[INFO] %s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
