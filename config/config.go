// Package config provides configuration loading and management for the
// lexengine evaluation engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lexkit/lexengine/loader"
)

// Config represents the complete engine configuration
type Config struct {
	Evaluator EvaluatorConfig `yaml:"evaluator"`
	Rules     RulesConfig     `yaml:"rules"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// EvaluatorConfig configures evaluation behavior
type EvaluatorConfig struct {
	// Memoize caches (predicate, fact) results within one evaluator
	Memoize bool `yaml:"memoize"`
}

// RulesConfig configures rule-file loading
type RulesConfig struct {
	// Dir is the directory holding declarative rule files
	Dir string `yaml:"dir"`
	// Patterns are doublestar globs selecting rule files within Dir
	Patterns []string `yaml:"patterns"`
	// Watch rebuilds the registry when rule files change
	Watch bool `yaml:"watch"`
	// DebounceDelay is how long to wait for more changes before rebuilding
	DebounceDelay string `yaml:"debounce_delay"`
}

// MetricsConfig configures Prometheus instrumentation
type MetricsConfig struct {
	// Enabled controls whether evaluation metrics are collected
	Enabled bool `yaml:"enabled"`
	// Namespace prefixes every metric name
	Namespace string `yaml:"namespace"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Evaluator: EvaluatorConfig{
			Memoize: true,
		},
		Rules: RulesConfig{
			Dir:           "rules",
			Patterns:      loader.DefaultPatterns,
			Watch:         false,
			DebounceDelay: "500ms",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "lexengine",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Rules.Dir == "" {
		return fmt.Errorf("rules.dir is required")
	}
	if len(c.Rules.Patterns) == 0 {
		return fmt.Errorf("rules.patterns must list at least one glob")
	}
	if c.Rules.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.Rules.DebounceDelay); err != nil {
			return fmt.Errorf("rules.debounce_delay is not a duration: %w", err)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required when metrics are enabled")
	}
	return nil
}

// WatchConfig converts the rules section into a loader watch configuration
func (c *RulesConfig) WatchConfig() loader.WatchConfig {
	wc := loader.DefaultWatchConfig()
	if c.DebounceDelay != "" {
		wc.DebounceDelay = c.DebounceDelay
	}
	if len(c.Patterns) > 0 {
		wc.Patterns = c.Patterns
	}
	return wc
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values; booleans are copied as-is because LoadFromFile fills
// omitted fields from defaults)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Evaluator
	c.Evaluator.Memoize = other.Evaluator.Memoize

	// Rules
	if other.Rules.Dir != "" {
		c.Rules.Dir = other.Rules.Dir
	}
	if len(other.Rules.Patterns) > 0 {
		c.Rules.Patterns = other.Rules.Patterns
	}
	c.Rules.Watch = other.Rules.Watch
	if other.Rules.DebounceDelay != "" {
		c.Rules.DebounceDelay = other.Rules.DebounceDelay
	}

	// Metrics
	c.Metrics.Enabled = other.Metrics.Enabled
	if other.Metrics.Namespace != "" {
		c.Metrics.Namespace = other.Metrics.Namespace
	}
}
