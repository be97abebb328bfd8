package api

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxConcurrent  int           `yaml:"max_concurrent"`
	MaxSources     int           `yaml:"max_sources"`
	MaxCells       int64         `yaml:"max_cells"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	SnapRadius     float64       `yaml:"snap_radius_meters"`
	CORSOrigin     string        `yaml:"cors_origin"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:           addr,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   30 * time.Second,
		RequestTimeout: 20 * time.Second,
		MaxConcurrent:  runtime.NumCPU() * 2,
		MaxSources:     64,
		MaxCells:       4 << 20,
		MaxBodyBytes:   64 << 10,
		SnapRadius:     500,
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig(addr).
// Unknown keys are rejected. An empty path returns the defaults.
func LoadConfig(path, addr string) (ServerConfig, error) {
	cfg := DefaultConfig(addr)
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open server config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse server config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that limits and timeouts are usable.
func (c ServerConfig) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("config: addr is empty")
	case c.MaxConcurrent < 1:
		return fmt.Errorf("config: max_concurrent = %d, want >= 1", c.MaxConcurrent)
	case c.MaxSources < 1:
		return fmt.Errorf("config: max_sources = %d, want >= 1", c.MaxSources)
	case c.MaxCells < 1:
		return fmt.Errorf("config: max_cells = %d, want >= 1", c.MaxCells)
	case c.MaxBodyBytes < 1:
		return fmt.Errorf("config: max_body_bytes = %d, want >= 1", c.MaxBodyBytes)
	case c.SnapRadius <= 0:
		return fmt.Errorf("config: snap_radius_meters = %g, want > 0", c.SnapRadius)
	case c.ReadTimeout <= 0, c.WriteTimeout <= 0, c.RequestTimeout <= 0:
		return errors.New("config: timeouts must be positive")
	}
	return nil
}
