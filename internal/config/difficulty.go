package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name yields "".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// MoveScaleForPreset returns the move budget multiplier for a preset.
func MoveScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}

// ApplyPreset overrides the difficulty section with a preset.
// An empty preset leaves the configuration untouched.
func ApplyPreset(cfg *ClusterPopConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Preset = preset
	cfg.Difficulty.MoveScale = MoveScaleForPreset(preset)
}

// EffectiveMoveScale returns the multiplier to apply to move budgets.
func (d DifficultyConfig) EffectiveMoveScale() float64 {
	if d.Preset != "" {
		return MoveScaleForPreset(d.Preset)
	}
	if d.MoveScale <= 0 {
		return 1.0
	}
	return d.MoveScale
}

// ScaleMoves applies scale to a move budget, rounding to the nearest move
// and never going below one.
func ScaleMoves(base int, scale float64) int {
	n := int(math.Round(float64(base) * scale))
	if n < 1 {
		return 1
	}
	return n
}
