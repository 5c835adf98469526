package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/levels/formats"
)

// Loader reads level files from a directory tree.
type Loader struct {
	Root string
	// OnSkip, if set, is called for every file that fails to load.
	OnSkip func(path string, err error)
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every supported file under Root.
// Invalid files are skipped. Levels are returned sorted by ID.
func (l *Loader) LoadAll() ([]engine.LevelConfig, error) {
	var out []engine.LevelConfig

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		cfgs, err := l.LoadFile(path)
		if err != nil {
			if l.OnSkip != nil {
				l.OnSkip(path, err)
			}
			return nil
		}
		out = append(out, cfgs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads every level from one file.
func (l *Loader) LoadFile(path string) ([]engine.LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		cfgs, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
		}
		return cfgs, nil
	default:
		return nil, fmt.Errorf("levels: unsupported extension: %s", ext)
	}
}

// LoadInto merges every loaded level into t, replacing levels with the
// same ID. Returns the number of levels merged.
func (l *Loader) LoadInto(t *Table) (int, error) {
	cfgs, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, cfg := range cfgs {
		if err := t.Put(cfg); err != nil {
			return 0, err
		}
	}
	return len(cfgs), nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(ext))
}
