package engine_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
)

func TestApplyGravity(t *testing.T) {
	g := gridFromLayout(t,
		"R.",
		"..",
		"B.",
		"..",
	)
	gs := engine.NewGravitySystem(g)

	moves := gs.ApplyGravity()
	assertBoard(t, g,
		"..",
		"..",
		"R.",
		"B.",
	)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d: %+v", len(moves), moves)
	}
	want := engine.Move{Kind: engine.MoveFall, From: engine.Pos{Row: 2, Col: 0}, To: engine.Pos{Row: 3, Col: 0}}
	if moves[0] != want {
		t.Errorf("first move = %+v, want %+v", moves[0], want)
	}
}

func TestShiftRight(t *testing.T) {
	g := gridFromLayout(t, "R.B.", "Y..G")
	gs := engine.NewGravitySystem(g)

	moves := gs.ShiftRight()
	assertBoard(t, g, "..RB", "..YG")
	for _, m := range moves {
		if m.Kind != engine.MoveShift || m.From.Row != m.To.Row || m.To.Col <= m.From.Col {
			t.Errorf("unexpected shift move %+v", m)
		}
	}
}

func TestResolve(t *testing.T) {
	g := gridFromLayout(t,
		"R..",
		"...",
		"..B",
	)
	gs := engine.NewGravitySystem(g)

	moves := gs.Resolve()
	assertBoard(t, g,
		"...",
		"...",
		".RB",
	)
	if len(moves) != 2 {
		t.Fatalf("expected a fall and a shift, got %+v", moves)
	}
	if moves[0].Kind != engine.MoveFall || moves[1].Kind != engine.MoveShift {
		t.Errorf("moves out of order: %+v", moves)
	}
}

func TestEmptyCellsOrder(t *testing.T) {
	g := gridFromLayout(t,
		"R..",
		".B.",
	)
	gs := engine.NewGravitySystem(g)

	got := gs.EmptyCells()
	want := []engine.Pos{
		{Row: 1, Col: 2}, {Row: 0, Col: 2},
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("EmptyCells() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmptyCells()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// randomLayout produces a board with roughly one empty slot in three.
func randomLayout(rng *rand.Rand, rows, cols int) []string {
	letters := []rune("RYB.")
	layout := make([]string, rows)
	for r := range layout {
		row := make([]rune, cols)
		for c := range row {
			row[c] = letters[rng.Intn(len(letters))]
		}
		layout[r] = string(row)
	}
	return layout
}

func TestResolveFixedPointAndConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		g := gridFromLayout(t, randomLayout(rng, 1+rng.Intn(6), 1+rng.Intn(6))...)
		before := itemIDs(g)
		gs := engine.NewGravitySystem(g)

		gs.Resolve()

		after := itemIDs(g)
		if len(after) != len(before) {
			t.Fatalf("board %d: item count changed %d -> %d", i, len(before), len(after))
		}
		for id, color := range before {
			if after[id] != color {
				t.Fatalf("board %d: item %d lost or recolored", i, id)
			}
		}

		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if g.ItemAt(r, c) == nil {
					continue
				}
				if !g.Occupied(r+1, c) {
					t.Errorf("board %d: item at (%d,%d) has an empty slot below", i, r, c)
				}
				if !g.Occupied(r, c+1) {
					t.Errorf("board %d: item at (%d,%d) has an empty slot to the right", i, r, c)
				}
			}
		}

		if again := gs.Resolve(); len(again) != 0 {
			t.Errorf("board %d: second Resolve moved %d items", i, len(again))
		}
	}
}
