package clusterpop

import "github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"

// Snapshot captures the game and engine state for determinism tests.
type Snapshot struct {
	Tick     uint64
	Cursor   engine.Pos
	Selected *engine.Pos
	Paused   bool
	Engine   engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Cursor: g.cursor,
		Paused: g.paused,
	}
	if g.selected != nil {
		p := *g.selected
		s.Selected = &p
	}
	if g.model != nil {
		s.Engine = g.model.Snapshot()
	}
	return s
}
