// Package config loads ClusterPop settings from YAML with embedded defaults
// and applies difficulty presets.
package config

// ClusterPopConfig contains all tunable settings for the game.
type ClusterPopConfig struct {
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     LevelsConfig     `yaml:"levels"`
}

// RulesConfig mirrors the engine's gameplay constants.
type RulesConfig struct {
	MinMatch       int `yaml:"min_match"`
	BonusThreshold int `yaml:"bonus_threshold"` // regions larger than this refund moves
	BonusMoves     int `yaml:"bonus_moves"`
	PenaltyPerItem int `yaml:"penalty_per_item"`
	Multiplier     int `yaml:"multiplier"`
}

// DifficultyConfig scales each level's move budget.
type DifficultyConfig struct {
	Preset    DifficultyPreset `yaml:"preset"`
	MoveScale float64          `yaml:"move_scale"` // applied when preset is empty
}

// LevelsConfig points at an optional directory of extra level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}
