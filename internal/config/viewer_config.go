package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultIntervalSeconds = 2

type ViewerConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		IntervalSeconds: DefaultIntervalSeconds,
	}
}

func LoadViewerConfig(path string) (*ViewerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ViewerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.IntervalSeconds <= 0 {
		cfg.IntervalSeconds = DefaultIntervalSeconds
	}

	return &cfg, nil
}

func (c *ViewerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
