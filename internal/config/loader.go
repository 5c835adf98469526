package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "clusterpop.yaml"

// Load reads the ClusterPop configuration.
// Search order: customPath -> ~/.clusterpop/configs/clusterpop.yaml ->
// ./configs/clusterpop.yaml -> embedded default -> hardcoded default.
// Only an explicit customPath can produce an error.
func Load(customPath string) (ClusterPopConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ClusterPopConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return ClusterPopConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if path := userConfigPath(configFile); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultClusterPopYAML); err == nil {
		return cfg, nil
	}
	return DefaultClusterPopConfig(), nil
}

// parse decodes YAML over the hardcoded defaults so omitted keys keep
// their default values, then validates the result.
func parse(data []byte) (ClusterPopConfig, error) {
	cfg := DefaultClusterPopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ClusterPopConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ClusterPopConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c ClusterPopConfig) Validate() error {
	r := c.Rules
	switch {
	case r.MinMatch < 1:
		return fmt.Errorf("rules.min_match must be at least 1, got %d", r.MinMatch)
	case r.BonusThreshold < 0:
		return fmt.Errorf("rules.bonus_threshold must not be negative, got %d", r.BonusThreshold)
	case r.BonusMoves < 0:
		return fmt.Errorf("rules.bonus_moves must not be negative, got %d", r.BonusMoves)
	case r.PenaltyPerItem < 0:
		return fmt.Errorf("rules.penalty_per_item must not be negative, got %d", r.PenaltyPerItem)
	case r.Multiplier < 1:
		return fmt.Errorf("rules.multiplier must be at least 1, got %d", r.Multiplier)
	case c.Difficulty.MoveScale < 0:
		return fmt.Errorf("difficulty.move_scale must not be negative, got %g", c.Difficulty.MoveScale)
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return err
	}
	return nil
}

// DataDir returns ~/.clusterpop, or "" if the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clusterpop")
}

// userConfigPath returns the path to a user config file, or "" if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
