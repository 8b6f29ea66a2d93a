package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads YAML configuration from the provided path.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// UnmarshalYAML decodes GitConfig with durations written in Go syntax
// ("10m", "1h30m") rather than raw nanosecond integers.
func (g *GitConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout string `yaml:"timeout"`
		Offline bool   `yaml:"offline"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	g.Offline = raw.Offline
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid git timeout %q: %w", raw.Timeout, err)
		}
		g.Timeout = d
	}
	return nil
}
