package main

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Reads a YAML (or JSON) config file on top of the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Checks values the rest of the program relies on
func (c *Config) Validate() error {
	switch {
	case c.Retries < 1:
		return errors.New("retries must be at least 1")
	case c.Jobs < 1:
		return errors.New("jobs must be at least 1")
	case c.RetryInterval < 0:
		return errors.New("retryInterval must not be negative")
	}
	return nil
}
