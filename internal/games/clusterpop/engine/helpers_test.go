package engine_test

import (
	"testing"
	"unicode/utf8"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
)

// gridFromLayout builds a fully tiled grid with items placed per layout.
func gridFromLayout(t *testing.T, layout ...string) *engine.Grid {
	t.Helper()
	rows, cols := len(layout), 0
	if rows > 0 {
		cols = utf8.RuneCountInString(layout[0])
	}
	items, err := engine.ParseLayout(layout, rows, cols)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	g := engine.NewGrid(rows, cols).Build()
	for i, p := range items {
		g.Get(p.Pos.Row, p.Pos.Col).SetItem(&engine.Item{ID: uint64(i + 1), Color: p.Color})
	}
	return g
}

func assertBoard(t *testing.T, g *engine.Grid, want ...string) {
	t.Helper()
	got := g.Letters()
	if len(got) != len(want) {
		t.Fatalf("board has %d rows, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("board mismatch\n got: %q\nwant: %q", got, want)
			return
		}
	}
}

func itemIDs(g *engine.Grid) map[uint64]engine.Color {
	ids := make(map[uint64]engine.Color)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if it := g.ItemAt(r, c); it != nil {
				ids[it.ID] = it.Color
			}
		}
	}
	return ids
}
