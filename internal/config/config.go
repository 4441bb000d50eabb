package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		Locator    string `yaml:"locator" toml:"locator"`
		TimeoutSec int    `yaml:"timeout_sec" toml:"timeout_sec"`
	} `yaml:"source" toml:"source"`
	Parser struct {
		StrictNumeric bool `yaml:"strict_numeric" toml:"strict_numeric"`
	} `yaml:"parser" toml:"parser"`
	Indicators struct {
		Windows []int  `yaml:"windows" toml:"windows"`
		Warmup  string `yaml:"warmup" toml:"warmup"`
	} `yaml:"indicators" toml:"indicators"`
	Chart struct {
		Title      string `yaml:"title" toml:"title"`
		OutputPath string `yaml:"output_path" toml:"output_path"`
	} `yaml:"chart" toml:"chart"`
	Server struct {
		Addr string `yaml:"addr" toml:"addr"`
	} `yaml:"server" toml:"server"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron" toml:"refresh_cron"`
	} `yaml:"schedule" toml:"schedule"`
	Proxy string `yaml:"proxy" toml:"proxy"`
}

// Load reads config from a YAML (or .toml) file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			err = toml.Unmarshal(data, cfg)
		} else {
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TRENDLENS_SOURCE"); v != "" {
		cfg.Source.Locator = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TRENDLENS_WINDOWS"); v != "" {
		windows, err := parseWindows(v)
		if err != nil {
			return nil, fmt.Errorf("TRENDLENS_WINDOWS: %w", err)
		}
		cfg.Indicators.Windows = windows
	}
	if v := os.Getenv("TRENDLENS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TRENDLENS_REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TRENDLENS_CHART_OUT"); v != "" {
		cfg.Chart.OutputPath = v
	}
	if v := os.Getenv("TRENDLENS_STRICT_NUMERIC"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TRENDLENS_STRICT_NUMERIC: %w", err)
		}
		cfg.Parser.StrictNumeric = b
	}

	// Defaults
	if len(cfg.Indicators.Windows) == 0 {
		cfg.Indicators.Windows = []int{5, 10, 20, 30}
	}
	if cfg.Indicators.Warmup == "" {
		cfg.Indicators.Warmup = "full"
	}
	if cfg.Source.TimeoutSec == 0 {
		cfg.Source.TimeoutSec = 30
	}
	if cfg.Chart.Title == "" {
		cfg.Chart.Title = "Candlestick"
	}
	if cfg.Chart.OutputPath == "" {
		cfg.Chart.OutputPath = "chart.html"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */15 * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Source.Locator == "" {
		return fmt.Errorf("source.locator is required")
	}
	for _, w := range c.Indicators.Windows {
		if w < 1 {
			return fmt.Errorf("indicators.windows: window %d must be >= 1", w)
		}
	}
	if c.Indicators.Warmup != "full" && c.Indicators.Warmup != "legacy" {
		return fmt.Errorf("indicators.warmup must be \"full\" or \"legacy\", got %q", c.Indicators.Warmup)
	}
	if c.Source.TimeoutSec < 0 {
		return fmt.Errorf("source.timeout_sec must not be negative")
	}
	return nil
}

func parseWindows(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse window %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
