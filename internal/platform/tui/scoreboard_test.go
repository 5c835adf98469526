package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop"
	"github.com/vovakirdan/clusterpop/internal/storage"
)

func scoreboardKey(t *testing.T, m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardPagesByLevel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, s := range []struct {
		level int
		score int
		won   bool
	}{
		{1, 400, true},
		{1, 200, false},
		{2, 900, true},
	} {
		if _, err := store.SaveScore(clusterpop.ID, s.level, s.score, s.won); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	m := NewScoreboardModel(store, pairTable(t), 100, 30)
	if len(m.scores) != 2 {
		t.Fatalf("level 1 should have 2 scores, got %d", len(m.scores))
	}
	if m.scores[0].Score != 400 {
		t.Errorf("top score = %d, expected 400", m.scores[0].Score)
	}
	view := m.View()
	if !strings.Contains(view, "Plays 2") || !strings.Contains(view, "Best 400") {
		t.Errorf("stats line missing from view:\n%s", view)
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.scores) != 1 || m.scores[0].Score != 900 {
		t.Errorf("level 2 scores = %+v", m.scores)
	}

	// Wraps around
	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.current().ID != 1 {
		t.Errorf("expected to wrap to level 1, got %d", m.current().ID)
	}
	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.current().ID != 2 {
		t.Errorf("expected to wrap back to level 2, got %d", m.current().ID)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, pairTable(t), 60, 20)

	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}
}
