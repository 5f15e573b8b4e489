// Package config provides the configuration surface for repool. A single
// PoolConfig structure describes one pool: its bound, prewarm level, trim
// policy, and observability toggles.
//
// Example usage:
//
//	cfg := config.NewPoolConfig("decoder-buffers")
//	cfg.MaxSize = 256
//	cfg.Prewarm = 32
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use human-readable
// values like "30s" or "5m" as well as raw nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// PoolConfig describes a single pool instance.
type PoolConfig struct {
	// Name identifies the pool in logs and metrics
	Name string `yaml:"name" json:"name"`

	// MaxSize bounds the number of live items; 0 means unbounded
	MaxSize int `yaml:"max_size" json:"max_size"`

	// Prewarm is the number of idle items created up front
	Prewarm int `yaml:"prewarm" json:"prewarm"`

	// Trim controls periodic shrinking of the idle set
	Trim TrimConfig `yaml:"trim" json:"trim"`

	// Observability settings for monitoring the pool
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// TrimConfig controls periodic shrinking of a pool's idle set.
type TrimConfig struct {
	// Enabled turns the periodic trim on
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Interval is the time between trim sweeps
	Interval Duration `yaml:"interval" json:"interval"`
	// IdleFloor is the number of idle items a sweep always leaves in place
	IdleFloor int `yaml:"idle_floor" json:"idle_floor"`
}

// ObservabilityConfig contains monitoring settings for a pool.
type ObservabilityConfig struct {
	// EnableMetrics activates Prometheus metrics collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// EnableLogging controls logging output
	EnableLogging bool `yaml:"enable_logging" json:"enable_logging"`
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// NewPoolConfig creates a PoolConfig with sensible defaults: unbounded, no
// prewarm, hourly trim to an empty floor, metrics and logging on.
func NewPoolConfig(name string) *PoolConfig {
	return &PoolConfig{
		Name:    name,
		MaxSize: 0,
		Prewarm: 0,
		Trim: TrimConfig{
			Enabled:   false,
			Interval:  Duration(time.Hour),
			IdleFloor: 0,
		},
		Observability: ObservabilityConfig{
			EnableMetrics: true,
			EnableLogging: true,
			LogLevel:      "info",
		},
	}
}

// Validate checks the configuration for correctness. Call it after loading
// configuration to catch errors early.
func (c *PoolConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("max_size cannot be negative")
	}
	if c.Prewarm < 0 {
		return fmt.Errorf("prewarm cannot be negative")
	}
	if c.MaxSize > 0 && c.Prewarm > c.MaxSize {
		return fmt.Errorf("prewarm (%d) exceeds max_size (%d)", c.Prewarm, c.MaxSize)
	}
	if c.Trim.Enabled {
		if c.Trim.Interval <= 0 {
			return fmt.Errorf("trim.interval must be positive")
		}
		if c.Trim.IdleFloor < 0 {
			return fmt.Errorf("trim.idle_floor cannot be negative")
		}
	}
	return nil
}

// IsBounded returns true if the pool has a live-item cap
func (c *PoolConfig) IsBounded() bool {
	return c.MaxSize > 0
}
