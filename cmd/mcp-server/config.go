package main

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	gofilter "github.com/njchilds90/gofilter"
)

// Config is the server configuration. Values come from the YAML file given
// with -config and are then overridden by explicitly set flags.
type Config struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit     float64 `yaml:"rate_limit"`
	RateBurst     int     `yaml:"rate_burst"`
	DefaultPoints int     `yaml:"default_points"`
	LogLevel      string  `yaml:"log_level"`
	LogFormat     string  `yaml:"log_format"`
}

func defaultConfig() Config {
	return Config{
		Port:              8080,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxBodyBytes:      1 << 20, // 1 MiB
		RateLimit:         50,
		RateBurst:         100,
		DefaultPoints:     gofilter.DefaultResponsePoints,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// loadConfig overlays the YAML file at path onto the defaults. Unknown keys
// are rejected so typos do not pass silently.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return errors.Errorf("port %d out of range", c.Port)
	case c.MaxBodyBytes <= 0:
		return errors.New("max_body_bytes must be positive")
	case c.RateLimit < 0 || c.RateBurst < 0:
		return errors.New("rate_limit and rate_burst must not be negative")
	case c.DefaultPoints <= 0 || c.DefaultPoints > gofilter.MaxResponsePoints:
		return errors.Errorf("default_points must be in 1..%d", gofilter.MaxResponsePoints)
	}
	return nil
}
