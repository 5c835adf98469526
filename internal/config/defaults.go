package config

import (
	_ "embed"
)

//go:embed defaults/clusterpop.yaml
var defaultClusterPopYAML []byte

// DefaultClusterPopConfig returns the hardcoded default configuration.
func DefaultClusterPopConfig() ClusterPopConfig {
	return ClusterPopConfig{
		Rules: RulesConfig{
			MinMatch:       2,
			BonusThreshold: 10,
			BonusMoves:     1,
			PenaltyPerItem: 10,
			Multiplier:     1,
		},
		Difficulty: DifficultyConfig{
			Preset:    DifficultyNormal,
			MoveScale: 1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultClusterPopYAML
}
