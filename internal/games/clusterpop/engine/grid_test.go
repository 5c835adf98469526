package engine_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
)

func TestNewGridSlotsStartUnset(t *testing.T) {
	g := engine.NewGrid(2, 3)
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", g.Rows(), g.Cols())
	}
	if g.Get(0, 0) != nil {
		t.Error("slot should be nil before Build")
	}

	g.Build()
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			tile := g.Get(r, c)
			if tile == nil {
				t.Fatalf("slot (%d,%d) nil after Build", r, c)
			}
			if tile.Row() != r || tile.Col() != c {
				t.Errorf("tile at (%d,%d) reports (%d,%d)", r, c, tile.Row(), tile.Col())
			}
			if tile.HasItem() {
				t.Errorf("tile at (%d,%d) should start empty", r, c)
			}
		}
	}
}

func TestGridGetOutOfBounds(t *testing.T) {
	g := engine.NewGrid(3, 3).Build()

	testCases := []struct {
		row, col int
		valid    bool
	}{
		{0, 0, true},
		{2, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{3, 0, false},
		{0, 3, false},
	}

	for _, tc := range testCases {
		if got := g.IsValidPosition(tc.row, tc.col); got != tc.valid {
			t.Errorf("IsValidPosition(%d,%d) = %v, want %v", tc.row, tc.col, got, tc.valid)
		}
		if tile := g.Get(tc.row, tc.col); (tile != nil) != tc.valid {
			t.Errorf("Get(%d,%d) = %v, want present=%v", tc.row, tc.col, tile, tc.valid)
		}
	}
}

func TestGridSetStampsPosition(t *testing.T) {
	g := engine.NewGrid(2, 2)
	tile := engine.NewTile()
	g.Set(1, 0, tile)

	if g.Get(1, 0) != tile {
		t.Fatal("Get should return the tile that was set")
	}
	if tile.Pos() != (engine.Pos{Row: 1, Col: 0}) {
		t.Errorf("tile position = %v, want (1,0)", tile.Pos())
	}

	// Out of range is ignored
	g.Set(5, 5, engine.NewTile())
	if g.Get(5, 5) != nil {
		t.Error("out-of-range Set should be ignored")
	}
}

func TestGridMoveItem(t *testing.T) {
	g := gridFromLayout(t, "R.", "B.")

	if !g.MoveItem(0, 0, 0, 1) {
		t.Fatal("move onto empty tile should succeed")
	}
	assertBoard(t, g, ".R", "B.")

	if g.MoveItem(1, 0, 0, 1) {
		t.Error("move onto occupied tile should fail")
	}
	if g.MoveItem(0, 0, 1, 1) {
		t.Error("move from empty tile should fail")
	}
	if g.MoveItem(1, 0, 2, 0) {
		t.Error("move off the board should fail")
	}
}

func TestGridOccupiedTreatsEdgesAsFull(t *testing.T) {
	g := gridFromLayout(t, "R.")

	if !g.Occupied(0, 0) {
		t.Error("(0,0) holds an item")
	}
	if g.Occupied(0, 1) {
		t.Error("(0,1) is empty")
	}
	if !g.Occupied(0, 2) || !g.Occupied(-1, 0) {
		t.Error("out-of-range positions should report occupied")
	}

	partial := engine.NewGrid(1, 2)
	partial.Set(0, 0, engine.NewTile())
	if !partial.Occupied(0, 1) {
		t.Error("unset slots should report occupied")
	}
}

func TestGridItemCountAndClear(t *testing.T) {
	g := gridFromLayout(t, "R.B", "..Y")

	if g.ItemCount() != 3 {
		t.Errorf("ItemCount() = %d, want 3", g.ItemCount())
	}
	if g.IsEmpty() {
		t.Error("grid with items should not be empty")
	}
	if n := g.ClearItems(); n != 3 {
		t.Errorf("ClearItems() = %d, want 3", n)
	}
	if !g.IsEmpty() {
		t.Error("grid should be empty after ClearItems")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	testCases := []struct {
		name   string
		layout []string
		rows   int
		cols   int
	}{
		{"too few rows", []string{"RR"}, 2, 2},
		{"short row", []string{"RR", "R"}, 2, 2},
		{"unknown letter", []string{"RX"}, 1, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ParseLayout(tc.layout, tc.rows, tc.cols)
			var verr engine.ValidationError
			if !errors.As(err, &verr) || verr.Code != "INVALID_LAYOUT" {
				t.Errorf("expected INVALID_LAYOUT, got %v", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	for _, c := range engine.AllColors() {
		got, ok := engine.ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, ok)
		}
		got, ok = engine.ParseColor(string(c.Char()))
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", string(c.Char()), got, ok)
		}
	}
	if _, ok := engine.ParseColor("teal"); ok {
		t.Error("unknown color should not parse")
	}
}
