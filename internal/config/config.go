package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// WatchConfig describes the route the watch command polls for journeys.
type WatchConfig struct {
	From            string `yaml:"from"`
	To              string `yaml:"to"`
	OutboundTime    string `yaml:"outbound_time"`
	ReturnTime      string `yaml:"return_time"`
	IntervalSeconds int    `yaml:"interval_seconds"`
}

func (w WatchConfig) Interval() time.Duration {
	return time.Duration(w.IntervalSeconds) * time.Second
}

type Config struct {
	API   APIConfig   `yaml:"api"`
	Watch WatchConfig `yaml:"watch"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api: base_url is required")
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api: timeout_seconds must not be negative")
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.Watch.IntervalSeconds < 0 {
		return fmt.Errorf("watch: interval_seconds must not be negative")
	}
	if c.Watch.IntervalSeconds == 0 {
		c.Watch.IntervalSeconds = 300
	}
	return nil
}
