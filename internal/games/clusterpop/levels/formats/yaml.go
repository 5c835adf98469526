// Package formats provides level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
)

const (
	defaultCellSize = 100
	defaultGap      = 2
)

// YAMLPack is a file holding several levels under a "levels" key.
type YAMLPack struct {
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel is the YAML structure of one level.
type YAMLLevel struct {
	ID        int           `yaml:"id"`
	Name      string        `yaml:"name"`
	Grid      YAMLGrid      `yaml:"grid"`
	MaxItems  int           `yaml:"max_items,omitempty"` // defaults to rows*cols
	Colors    []string      `yaml:"colors"`
	Objective YAMLObjective `yaml:"objective"`
	Layout    []string      `yaml:"layout,omitempty"`
}

// YAMLGrid holds board dimensions and presentation hints.
type YAMLGrid struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	CellSize int `yaml:"cell_size,omitempty"`
	Gap      int `yaml:"gap,omitempty"`
}

// YAMLObjective holds level goals.
type YAMLObjective struct {
	TargetScore int `yaml:"target_score"`
	MaxMoves    int `yaml:"max_moves"`
}

// ParseYAML parses either a level pack or a single level document.
// Every returned level has passed engine validation.
func ParseYAML(data []byte) ([]engine.LevelConfig, error) {
	var pack YAMLPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	docs := pack.Levels
	if len(docs) == 0 {
		var single YAMLLevel
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
		if single.ID == 0 {
			return nil, errors.New("no levels found")
		}
		docs = []YAMLLevel{single}
	}

	out := make([]engine.LevelConfig, 0, len(docs))
	for _, yl := range docs {
		cfg, err := yl.ToConfig()
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// ToConfig converts and validates the level.
func (yl YAMLLevel) ToConfig() (engine.LevelConfig, error) {
	cfg := engine.LevelConfig{
		ID:        yl.ID,
		Name:      yl.Name,
		Rows:      yl.Grid.Rows,
		Cols:      yl.Grid.Cols,
		CellSize:  yl.Grid.CellSize,
		Gap:       yl.Grid.Gap,
		MaxItems:  yl.MaxItems,
		Objective: engine.Objective{TargetScore: yl.Objective.TargetScore, MaxMoves: yl.Objective.MaxMoves},
		Layout:    yl.Layout,
	}
	if cfg.ID < 1 {
		return engine.LevelConfig{}, fmt.Errorf("level %q: id must be positive, got %d", yl.Name, yl.ID)
	}
	if cfg.CellSize == 0 {
		cfg.CellSize = defaultCellSize
	}
	if cfg.Gap == 0 {
		cfg.Gap = defaultGap
	}
	if cfg.MaxItems == 0 {
		cfg.MaxItems = cfg.Rows * cfg.Cols
	}
	for _, name := range yl.Colors {
		c, ok := engine.ParseColor(name)
		if !ok {
			return engine.LevelConfig{}, fmt.Errorf("level %d: unknown color %q", yl.ID, name)
		}
		cfg.Colors = append(cfg.Colors, c)
	}
	if err := cfg.Validate(); err != nil {
		return engine.LevelConfig{}, err
	}
	return cfg, nil
}

// FromConfig converts a level back to its YAML form.
func FromConfig(cfg engine.LevelConfig) YAMLLevel {
	yl := YAMLLevel{
		ID:   cfg.ID,
		Name: cfg.Name,
		Grid: YAMLGrid{
			Rows:     cfg.Rows,
			Cols:     cfg.Cols,
			CellSize: cfg.CellSize,
			Gap:      cfg.Gap,
		},
		MaxItems:  cfg.MaxItems,
		Objective: YAMLObjective{TargetScore: cfg.Objective.TargetScore, MaxMoves: cfg.Objective.MaxMoves},
		Layout:    cfg.Layout,
	}
	for _, c := range cfg.Colors {
		yl.Colors = append(yl.Colors, c.String())
	}
	return yl
}

// MarshalPack encodes levels as a YAML level pack.
func MarshalPack(cfgs []engine.LevelConfig) ([]byte, error) {
	pack := YAMLPack{Levels: make([]YAMLLevel, 0, len(cfgs))}
	for _, cfg := range cfgs {
		pack.Levels = append(pack.Levels, FromConfig(cfg))
	}
	return yaml.Marshal(pack)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
