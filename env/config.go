package env

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultEnvID names the engine registered at process start.
const DefaultEnvID = "MartisGame-v0"

// Config is the adapter configuration. It is immutable after
// construction. ReplayPath is optional in value but the field itself is
// required: a config document without the key is rejected, because the
// path is read unconditionally.
type Config struct {
	EnvID      string  `yaml:"env_id"`
	ReplayPath *string `yaml:"replay_path"`
}

// DefaultConfig returns the stock configuration: the default engine and
// no replay persistence.
func DefaultConfig() Config {
	return Config{EnvID: DefaultEnvID, ReplayPath: nil}
}

// LoadConfig reads a YAML config file. Missing env_id falls back to the
// default; a missing replay_path key is a fatal configuration error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	// Key presence matters, not just the value, so probe a map first.
	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if _, ok := keys["replay_path"]; !ok {
		return Config{}, fmt.Errorf("config is missing required field %q", "replay_path")
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.EnvID == "" {
		cfg.EnvID = DefaultEnvID
	}
	return cfg, nil
}
