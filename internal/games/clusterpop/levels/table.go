// Package levels provides the ClusterPop level table and level file loading.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/levels/formats"
)

var (
	// ErrLevelNotFound is returned for an unknown level ID.
	ErrLevelNotFound = errors.New("levels: level not found")
	// ErrDuplicateLevel is returned by Add when the ID is taken.
	ErrDuplicateLevel = errors.New("levels: duplicate level id")
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// Table is an ordered set of levels keyed by ID. It is safe for concurrent
// use and always hands out copies.
type Table struct {
	mu     sync.RWMutex
	levels []*engine.LevelConfig // sorted by ID
}

// NewTable creates a table from the given levels.
func NewTable(cfgs ...engine.LevelConfig) (*Table, error) {
	t := &Table{}
	for _, cfg := range cfgs {
		if err := t.Add(cfg); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Default returns the built-in campaign, read from the embedded YAML and
// falling back to the compiled-in table.
func Default() *Table {
	if cfgs, err := formats.ParseYAML(defaultLevelsYAML); err == nil {
		if t, err := NewTable(cfgs...); err == nil {
			return t
		}
	}
	t, _ := NewTable(Builtin()...)
	return t
}

// Builtin returns the compiled-in campaign.
func Builtin() []engine.LevelConfig {
	type row struct {
		name     string
		size     int
		cellSize int
		colors   int
		moves    int
	}
	rows := []row{
		{"Warm-up", 8, 100, 3, 5},
		{"Blue Joins", 8, 100, 4, 22},
		{"Wider Board", 9, 100, 4, 20},
		{"Green Joins", 9, 100, 5, 18},
		{"Tight Budget", 9, 100, 5, 15},
		{"Big Board", 10, 80, 5, 16},
		{"Orange Joins", 10, 70, 6, 14},
		{"Squeeze", 10, 70, 6, 12},
		{"Rainbow", 11, 70, 7, 13},
		{"Finale", 11, 70, 7, 10},
	}
	palette := []engine.Color{
		engine.ColorRed, engine.ColorYellow, engine.ColorPurple, engine.ColorBlue,
		engine.ColorGreen, engine.ColorOrange, engine.ColorMulti,
	}

	out := make([]engine.LevelConfig, len(rows))
	for i, r := range rows {
		out[i] = engine.LevelConfig{
			ID:        i + 1,
			Name:      r.name,
			Rows:      r.size,
			Cols:      r.size,
			CellSize:  r.cellSize,
			Gap:       2,
			Colors:    append([]engine.Color(nil), palette[:r.colors]...),
			MaxItems:  r.size * r.size,
			Objective: engine.Objective{TargetScore: 1000, MaxMoves: r.moves},
		}
	}
	return out
}

// Get returns a copy of the level with the given ID.
func (t *Table) Get(id int) (*engine.LevelConfig, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i, ok := t.find(id); ok {
		return t.levels[i].Clone(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, id)
}

// Exists reports whether a level ID is present.
func (t *Table) Exists(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.find(id)
	return ok
}

// All returns copies of every level in ID order.
func (t *Table) All() []*engine.LevelConfig {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*engine.LevelConfig, len(t.levels))
	for i, l := range t.levels {
		out[i] = l.Clone()
	}
	return out
}

// Count returns the number of levels.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.levels)
}

// MaxID returns the highest level ID, or 0 for an empty table.
func (t *Table) MaxID() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.levels) == 0 {
		return 0
	}
	return t.levels[len(t.levels)-1].ID
}

// Next returns the ID that follows id in table order.
func (t *Table) Next(id int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := sort.Search(len(t.levels), func(i int) bool { return t.levels[i].ID > id })
	if i == len(t.levels) {
		return 0, false
	}
	return t.levels[i].ID, true
}

// Add inserts a validated copy of cfg. Existing IDs are rejected.
func (t *Table) Add(cfg engine.LevelConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("levels: add level %d: %w", cfg.ID, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.find(cfg.ID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateLevel, cfg.ID)
	}
	t.insert(cfg.Clone())
	return nil
}

// Put inserts or replaces a validated copy of cfg.
func (t *Table) Put(cfg engine.LevelConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("levels: put level %d: %w", cfg.ID, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if i, ok := t.find(cfg.ID); ok {
		t.levels[i] = cfg.Clone()
		return nil
	}
	t.insert(cfg.Clone())
	return nil
}

func (t *Table) find(id int) (int, bool) {
	i := sort.Search(len(t.levels), func(i int) bool { return t.levels[i].ID >= id })
	return i, i < len(t.levels) && t.levels[i].ID == id
}

func (t *Table) insert(cfg *engine.LevelConfig) {
	i, _ := t.find(cfg.ID)
	t.levels = append(t.levels, nil)
	copy(t.levels[i+1:], t.levels[i:])
	t.levels[i] = cfg
}
