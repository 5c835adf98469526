package registry

import (
	"testing"

	"github.com/vovakirdan/clusterpop/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "stub-create", Title: "Stub"}, func() Game {
		return &stubGame{id: "stub-create"}
	})

	a, err := Create("stub-create")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := Create("stub-create")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID() != "stub-create" {
		t.Errorf("ID() = %q, expected stub-create", a.ID())
	}
	if a == b {
		t.Error("each Create should return a fresh instance")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("expected an error for an unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "stub-dup"}, func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "stub-dup"}, func() Game { return &stubGame{id: "stub-dup"} })
}
