package engine

import (
	"fmt"
	"unicode/utf8"
)

// ValidationError describes why a level configuration was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Objective holds a level's goals and budget.
type Objective struct {
	TargetScore int
	MaxMoves    int
}

// LevelConfig describes one playable level.
type LevelConfig struct {
	ID       int
	Name     string
	Rows     int
	Cols     int
	CellSize int // presentation only
	Gap      int // presentation only
	Colors   []Color
	// MaxItems caps the total number of items spawned during the level,
	// counting the initial fill and any layout items.
	MaxItems  int
	Objective Objective
	// Layout optionally presets the starting board, one string per row,
	// using Color.Char letters and '.' for an empty slot.
	Layout []string
}

// Clone returns a deep copy of the configuration.
func (c *LevelConfig) Clone() *LevelConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.Colors = append([]Color(nil), c.Colors...)
	if c.Layout != nil {
		out.Layout = append([]string(nil), c.Layout...)
	}
	return &out
}

// Validate checks the configuration for structural problems.
func (c *LevelConfig) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("level %d: grid must be at least 1x1, got %dx%d", c.ID, c.Rows, c.Cols),
		}
	}
	if len(c.Colors) == 0 {
		return ValidationError{
			Code:    "NO_COLORS",
			Message: fmt.Sprintf("level %d: palette is empty", c.ID),
		}
	}
	for _, col := range c.Colors {
		if col >= ColorCount {
			return ValidationError{
				Code:    "INVALID_COLOR",
				Message: fmt.Sprintf("level %d: unknown color %d", c.ID, col),
			}
		}
	}
	if c.MaxItems < 1 {
		return ValidationError{
			Code:    "INVALID_MAX_ITEMS",
			Message: fmt.Sprintf("level %d: max items must be positive, got %d", c.ID, c.MaxItems),
		}
	}
	if c.Objective.MaxMoves < 1 {
		return ValidationError{
			Code:    "INVALID_MOVES",
			Message: fmt.Sprintf("level %d: max moves must be positive, got %d", c.ID, c.Objective.MaxMoves),
		}
	}
	if c.Layout != nil {
		preset, err := ParseLayout(c.Layout, c.Rows, c.Cols)
		if err != nil {
			return err
		}
		if len(preset) > c.MaxItems {
			return ValidationError{
				Code:    "LAYOUT_EXCEEDS_MAX_ITEMS",
				Message: fmt.Sprintf("level %d: layout has %d items, max items is %d", c.ID, len(preset), c.MaxItems),
			}
		}
	}
	return nil
}

// PresetItem is one item placed by a layout.
type PresetItem struct {
	Pos   Pos
	Color Color
}

// ParseLayout reads layout rows into preset items in row-major order.
func ParseLayout(layout []string, rows, cols int) ([]PresetItem, error) {
	if len(layout) != rows {
		return nil, ValidationError{
			Code:    "INVALID_LAYOUT",
			Message: fmt.Sprintf("layout has %d rows, expected %d", len(layout), rows),
		}
	}
	var out []PresetItem
	for r, line := range layout {
		if n := utf8.RuneCountInString(line); n != cols {
			return nil, ValidationError{
				Code:    "INVALID_LAYOUT",
				Message: fmt.Sprintf("layout row %d has %d cells, expected %d", r, n, cols),
			}
		}
		c := 0
		for _, ch := range line {
			if ch != '.' {
				color, ok := ParseColor(string(ch))
				if !ok {
					return nil, ValidationError{
						Code:    "INVALID_LAYOUT",
						Message: fmt.Sprintf("layout row %d col %d: unknown color %q", r, c, ch),
					}
				}
				out = append(out, PresetItem{Pos: Pos{Row: r, Col: c}, Color: color})
			}
			c++
		}
	}
	return out, nil
}
