/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// Default configuration values.
const (
	DefaultInterval      = 60 * time.Second
	DefaultHistorySize   = 1000
	DefaultAlertCapacity = 100
	DefaultTopProcesses  = 10
	DefaultDataFile      = "system_monitor.json"
	DefaultLogLevel      = "info"
	DefaultListenAddr    = "0.0.0.0:8080"
)

// Duration decodes YAML values like "30s" or "5m" into a time.Duration.
// Plain integers are accepted as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config represents application configuration.
type Config struct {
	Interval      Duration           `yaml:"interval"`       // Delay between monitoring ticks
	HistorySize   int                `yaml:"history_size"`   // Snapshot retention capacity
	AlertCapacity int                `yaml:"alert_capacity"` // Alert retention capacity
	TopProcesses  int                `yaml:"top_processes"`  // Processes kept per snapshot
	DataFile      string             `yaml:"data_file"`      // History persistence path
	Thresholds    metrics.Thresholds `yaml:"thresholds"`     // Alerting limits in percent

	// Logging
	LogLevel string `yaml:"log_level"` // Log level: debug, info, warn, error
	LogFile  string `yaml:"log_file"`  // Log file path (empty = stdout)

	// HTTP reporting API
	ListenAddr string `yaml:"listen_addr"` // host:port for the serve command
}

// Default returns a configuration populated with the default values.
func Default() *Config {
	return &Config{
		Interval:      Duration(DefaultInterval),
		HistorySize:   DefaultHistorySize,
		AlertCapacity: DefaultAlertCapacity,
		TopProcesses:  DefaultTopProcesses,
		DataFile:      DefaultDataFile,
		Thresholds:    metrics.DefaultThresholds(),
		LogLevel:      DefaultLogLevel,
		ListenAddr:    DefaultListenAddr,
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if time.Duration(c.Interval) < 1*time.Second {
		return errors.New("interval must be at least 1 second")
	}

	if time.Duration(c.Interval) > 1*time.Hour {
		return errors.New("interval must not exceed 1 hour")
	}

	if c.HistorySize < 1 {
		return errors.New("history size must be at least 1")
	}

	if c.AlertCapacity < 1 {
		return errors.New("alert capacity must be at least 1")
	}

	if c.TopProcesses < 1 {
		return errors.New("top processes must be at least 1")
	}

	if c.DataFile == "" {
		return errors.New("data file cannot be empty")
	}

	for name, value := range map[string]float64{
		"cpu":    c.Thresholds.CPUPercent,
		"memory": c.Thresholds.MemoryPercent,
		"disk":   c.Thresholds.DiskPercent,
	} {
		if value < 0 || value > 100 {
			return fmt.Errorf("%s threshold must be between 0 and 100, got %v", name, value)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Interval=%v, HistorySize=%d, AlertCapacity=%d, TopProcesses=%d, DataFile=%s, Thresholds={cpu=%.0f mem=%.0f disk=%.0f}}",
		c.Interval, c.HistorySize, c.AlertCapacity, c.TopProcesses, c.DataFile,
		c.Thresholds.CPUPercent, c.Thresholds.MemoryPercent, c.Thresholds.DiskPercent)
}
