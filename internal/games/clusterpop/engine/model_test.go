package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
)

type recorder struct {
	scores   []int
	moves    []int
	finished []engine.Outcome
}

func (r *recorder) ScoreChanged(score, delta int)   { r.scores = append(r.scores, score) }
func (r *recorder) MovesChanged(movesLeft, maxMoves int) { r.moves = append(r.moves, movesLeft) }
func (r *recorder) LevelFinished(o engine.Outcome)  { r.finished = append(r.finished, o) }

func layoutLevel(maxItems, maxMoves int, layout ...string) *engine.LevelConfig {
	cols := 0
	if len(layout) > 0 {
		cols = len(layout[0])
	}
	return &engine.LevelConfig{
		ID:        1,
		Rows:      len(layout),
		Cols:      cols,
		Colors:    []engine.Color{engine.ColorRed, engine.ColorBlue, engine.ColorYellow},
		MaxItems:  maxItems,
		Objective: engine.Objective{TargetScore: 1000, MaxMoves: maxMoves},
		Layout:    layout,
	}
}

func startModel(t *testing.T, cfg *engine.LevelConfig) (*engine.Model, *recorder) {
	t.Helper()
	rec := &recorder{}
	m := engine.NewModel(engine.DefaultRules(), rand.New(rand.NewSource(1)), rec)
	if _, err := m.StartLevel(cfg); err != nil {
		t.Fatalf("StartLevel: %v", err)
	}
	return m, rec
}

func TestNewModelIsIdle(t *testing.T) {
	m := engine.NewModel(engine.DefaultRules(), nil, nil)
	if m.State() != engine.StateIdle {
		t.Errorf("State() = %v, want idle", m.State())
	}
	if res := m.CollectAt(0, 0); res.Accepted {
		t.Error("collect before StartLevel should be rejected")
	}
	if res := m.TrySwap(0, 0, engine.DirRight); res.Accepted {
		t.Error("swap before StartLevel should be rejected")
	}
	if m.Exit() != nil {
		t.Error("exit before StartLevel should be a no-op")
	}
}

func TestStartLevelErrors(t *testing.T) {
	m := engine.NewModel(engine.DefaultRules(), nil, nil)

	if _, err := m.StartLevel(nil); !errors.Is(err, engine.ErrNoLevel) {
		t.Errorf("nil config: got %v, want ErrNoLevel", err)
	}

	bad := layoutLevel(4, 0, "RB", "BR")
	_, err := m.StartLevel(bad)
	var verr engine.ValidationError
	if !errors.As(err, &verr) || verr.Code != "INVALID_MOVES" {
		t.Errorf("zero moves: got %v, want INVALID_MOVES", err)
	}

	crowded := layoutLevel(1, 3, "RB")
	if _, err := m.StartLevel(crowded); !errors.As(err, &verr) || verr.Code != "LAYOUT_EXCEEDS_MAX_ITEMS" {
		t.Errorf("crowded layout: got %v", err)
	}

	if m.State() != engine.StateIdle {
		t.Errorf("failed starts must leave the model idle, got %v", m.State())
	}
}

func TestStartLevelFillsBoard(t *testing.T) {
	cfg := &engine.LevelConfig{
		ID:        3,
		Rows:      8,
		Cols:      8,
		Colors:    []engine.Color{engine.ColorRed, engine.ColorYellow, engine.ColorPurple},
		MaxItems:  64,
		Objective: engine.Objective{TargetScore: 1000, MaxMoves: 5},
	}
	m, rec := startModel(t, cfg)

	if m.State() != engine.StatePlayerInput {
		t.Fatalf("State() = %v, want player_input", m.State())
	}
	if m.Grid().ItemCount() != 64 || m.Spawned() != 64 {
		t.Errorf("expected full 8x8 board, got %d items, %d spawned", m.Grid().ItemCount(), m.Spawned())
	}
	if m.MovesLeft() != 5 || m.Score() != 0 {
		t.Errorf("expected 5 moves and 0 score, got %d and %d", m.MovesLeft(), m.Score())
	}
	allowed := map[engine.Color]bool{}
	for _, c := range cfg.Colors {
		allowed[c] = true
	}
	for _, color := range itemIDs(m.Grid()) {
		if !allowed[color] {
			t.Errorf("spawned color %v outside the palette", color)
		}
	}
	if len(rec.moves) != 1 || rec.moves[0] != 5 {
		t.Errorf("expected one moves notification, got %v", rec.moves)
	}
}

func TestStartLevelRespectsSpawnCap(t *testing.T) {
	cfg := &engine.LevelConfig{
		ID:        1,
		Rows:      3,
		Cols:      3,
		Colors:    []engine.Color{engine.ColorRed, engine.ColorBlue},
		MaxItems:  4,
		Objective: engine.Objective{MaxMoves: 3},
	}
	m, _ := startModel(t, cfg)

	if m.Grid().ItemCount() != 4 {
		t.Fatalf("expected 4 items, got %d", m.Grid().ItemCount())
	}
	// The rightmost column fills first; the fourth item settles to the
	// bottom-right of the next column.
	board := m.Grid().Letters()
	if board[0][0] != '.' || board[0][1] != '.' || board[1][1] != '.' {
		t.Errorf("unexpected board %q", board)
	}
	if board[2][1] == '.' || board[0][2] == '.' {
		t.Errorf("unexpected board %q", board)
	}
}

func TestCollectBasic(t *testing.T) {
	tests := []struct {
		multiplier int
		score      int
	}{
		{1, 36},
		{3, 108},
	}

	for _, tt := range tests {
		m, rec := startModel(t, layoutLevel(9, 5, "RRR", "RRR", "BBB"))
		m.SetMultiplier(tt.multiplier)

		res := m.CollectAt(0, 0)
		if !res.Accepted {
			t.Fatal("collect should be accepted")
		}
		if len(res.Removed) != 6 || res.Color != engine.ColorRed {
			t.Errorf("removed %d %v, want 6 red", len(res.Removed), res.Color)
		}
		if res.Score.Total != tt.score || m.Score() != tt.score {
			t.Errorf("multiplier %d: score %d / %d, want %d", tt.multiplier, res.Score.Total, m.Score(), tt.score)
		}
		if m.MovesLeft() != 4 || res.MovesDelta != -1 || res.Bonus {
			t.Errorf("moves left %d delta %d bonus %v", m.MovesLeft(), res.MovesDelta, res.Bonus)
		}
		if len(res.Spawns) != 0 {
			t.Errorf("spawn cap reached, got %d spawns", len(res.Spawns))
		}
		if res.Outcome != nil || m.State() != engine.StatePlayerInput {
			t.Errorf("level should continue, got %v", m.State())
		}
		assertBoard(t, m.Grid(), "...", "...", "BBB")
		if last := rec.scores[len(rec.scores)-1]; last != tt.score {
			t.Errorf("observer saw score %d, want %d", last, tt.score)
		}
	}
}

func TestCollectRejections(t *testing.T) {
	m, rec := startModel(t, layoutLevel(6, 5, "RBR", "RYY"))
	before := m.Snapshot()
	notified := len(rec.scores)

	for _, pos := range []engine.Pos{{Row: 0, Col: 1}, {Row: -1, Col: 0}, {Row: 5, Col: 5}} {
		if res := m.CollectAt(pos.Row, pos.Col); res.Accepted {
			t.Errorf("collect at %v should be rejected", pos)
		}
	}

	after := m.Snapshot()
	if after.Score != before.Score || after.MovesLeft != before.MovesLeft || after.State != before.State {
		t.Errorf("rejected collect changed the model: %+v -> %+v", before, after)
	}
	if len(rec.scores) != notified {
		t.Error("rejected collect notified the observer")
	}
}

func TestCollectPerfectClear(t *testing.T) {
	m, rec := startModel(t, layoutLevel(2, 3, "...", "...", ".RR"))

	res := m.CollectAt(2, 2)
	if !res.Accepted || res.Outcome == nil {
		t.Fatalf("expected terminal collect, got %+v", res)
	}
	o := *res.Outcome
	if !o.IsWin || o.Reason != engine.ReasonPerfectClear || o.Penalty != 0 || o.Score != 4 {
		t.Errorf("unexpected outcome %+v", o)
	}
	if m.State() != engine.StateLevelComplete {
		t.Errorf("State() = %v, want level_complete", m.State())
	}
	if len(rec.finished) != 1 || !rec.finished[0].IsWin {
		t.Errorf("observer finish events: %+v", rec.finished)
	}
	if res := m.CollectAt(2, 2); res.Accepted {
		t.Error("actions after the end must be rejected")
	}
}

func TestCollectDeadBoardPenalty(t *testing.T) {
	tests := []struct {
		name       string
		multiplier int
		want       int
	}{
		{"penalty floors at zero", 1, 0},
		{"penalty subtracted", 20, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := startModel(t, layoutLevel(7, 5, "RRBYBYB"))
			m.SetMultiplier(tt.multiplier)

			res := m.CollectAt(0, 0)
			if res.Outcome == nil {
				t.Fatal("dead board should end the level")
			}
			o := *res.Outcome
			if !o.IsWin || o.Reason != engine.ReasonNoMatches {
				t.Errorf("unexpected outcome %+v", o)
			}
			if o.Remaining != 5 || o.Penalty != 50 {
				t.Errorf("remaining %d penalty %d, want 5 and 50", o.Remaining, o.Penalty)
			}
			if o.Score != tt.want || m.Score() != tt.want {
				t.Errorf("score %d, want %d", m.Score(), tt.want)
			}
			if !m.Grid().IsEmpty() {
				t.Error("board should be cleared")
			}
		})
	}
}

func TestCollectOutOfMoves(t *testing.T) {
	m, rec := startModel(t, layoutLevel(6, 1, "RRB", "YYB"))

	res := m.CollectAt(0, 0)
	if res.Outcome == nil || res.Outcome.IsWin || res.Outcome.Reason != engine.ReasonOutOfMoves {
		t.Fatalf("expected game over, got %+v", res.Outcome)
	}
	if m.State() != engine.StateGameOver || !m.Grid().IsEmpty() {
		t.Errorf("State() = %v, items %d", m.State(), m.Grid().ItemCount())
	}
	if len(rec.finished) != 1 {
		t.Errorf("expected one finish event, got %d", len(rec.finished))
	}
}

func TestCollectBonusMove(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		moves  int
		bonus  bool
	}{
		{"region of ten", []string{"RRRRR", "RRRRR", "BYBYB"}, 2, false},
		{"region of eleven", []string{"RRRR", "RRRR", "RRRB"}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := startModel(t, layoutLevel(len(tt.layout)*len(tt.layout[0]), 3, tt.layout...))

			res := m.CollectAt(0, 0)
			if res.Bonus != tt.bonus {
				t.Errorf("Bonus = %v, want %v", res.Bonus, tt.bonus)
			}
			if m.MovesLeft() != tt.moves {
				t.Errorf("MovesLeft() = %d, want %d", m.MovesLeft(), tt.moves)
			}
			if res.MovesDelta != tt.moves-3 {
				t.Errorf("MovesDelta = %d, want %d", res.MovesDelta, tt.moves-3)
			}
		})
	}
}

func TestSwap(t *testing.T) {
	m, _ := startModel(t, layoutLevel(3, 3, "RBY"))

	res := m.TrySwap(0, 0, engine.DirRight)
	if !res.Accepted || res.MovesDelta != -1 {
		t.Fatalf("swap should be accepted, got %+v", res)
	}
	assertBoard(t, m.Grid(), "BRY")
	// No match was created but the move is spent anyway.
	if m.MovesLeft() != 2 || m.State() != engine.StatePlayerInput {
		t.Errorf("moves %d state %v", m.MovesLeft(), m.State())
	}

	for _, tc := range []struct {
		row, col int
		dir      engine.Direction
	}{
		{0, 0, engine.DirLeft},
		{0, 2, engine.DirRight},
		{0, 1, engine.DirUp},
	} {
		if res := m.TrySwap(tc.row, tc.col, tc.dir); res.Accepted {
			t.Errorf("swap (%d,%d) %v should be rejected", tc.row, tc.col, tc.dir)
		}
	}
	if m.MovesLeft() != 2 {
		t.Errorf("rejected swaps spent moves, %d left", m.MovesLeft())
	}
}

func TestSwapWithEmptyNeighborRejected(t *testing.T) {
	m, _ := startModel(t, layoutLevel(2, 3, ".RB"))

	if res := m.TrySwap(0, 1, engine.DirLeft); res.Accepted {
		t.Error("swap with an empty tile should be rejected")
	}
}

func TestSwapExhaustsMoves(t *testing.T) {
	m, rec := startModel(t, layoutLevel(4, 1, "RB", "BR"))

	res := m.TrySwap(0, 0, engine.DirRight)
	if !res.Accepted || res.Outcome == nil {
		t.Fatalf("expected terminal swap, got %+v", res)
	}
	if res.Outcome.IsWin || res.Outcome.Reason != engine.ReasonOutOfMoves || res.Outcome.Remaining != 4 {
		t.Errorf("unexpected outcome %+v", *res.Outcome)
	}
	if m.State() != engine.StateGameOver || !m.Grid().IsEmpty() {
		t.Errorf("State() = %v, items %d", m.State(), m.Grid().ItemCount())
	}
	if len(rec.finished) != 1 || rec.finished[0].IsWin {
		t.Errorf("observer finish events: %+v", rec.finished)
	}
	if res := m.CollectAt(0, 0); res.Accepted {
		t.Error("collect after game over must be rejected")
	}
}

func TestExit(t *testing.T) {
	m, _ := startModel(t, layoutLevel(4, 3, "RB", "BR"))

	o := m.Exit()
	if o == nil || o.IsWin || o.Reason != engine.ReasonExit {
		t.Fatalf("unexpected exit outcome %+v", o)
	}
	if m.State() != engine.StateGameOver || !m.Grid().IsEmpty() {
		t.Errorf("State() = %v, items %d", m.State(), m.Grid().ItemCount())
	}
	if m.Exit() != nil {
		t.Error("second exit should be a no-op")
	}
}

// firstMatch returns a collectable position or false.
func firstMatch(m *engine.Model) (engine.Pos, bool) {
	g := m.Grid()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if engine.IsValidMatch(engine.FindConnectedRegion(g, g.Get(r, c)), m.Rules().MinMatch) {
				return engine.Pos{Row: r, Col: c}, true
			}
		}
	}
	return engine.Pos{}, false
}

func TestPlaythroughInvariants(t *testing.T) {
	cfg := &engine.LevelConfig{
		ID:        1,
		Rows:      5,
		Cols:      5,
		Colors:    []engine.Color{engine.ColorRed, engine.ColorBlue, engine.ColorYellow},
		MaxItems:  40,
		Objective: engine.Objective{MaxMoves: 30},
	}
	m, _ := startModel(t, cfg)

	seen := make(map[uint64]bool)
	for id := range itemIDs(m.Grid()) {
		seen[id] = true
	}
	lastScore := 0

	for !m.State().IsTerminal() {
		pos, ok := firstMatch(m)
		if !ok {
			break
		}
		before := m.Grid().ItemCount()
		res := m.CollectAt(pos.Row, pos.Col)
		if !res.Accepted {
			t.Fatalf("collect at %v rejected", pos)
		}
		for _, s := range res.Spawns {
			if seen[s.ItemID] {
				t.Fatalf("item id %d reused", s.ItemID)
			}
			seen[s.ItemID] = true
		}
		if m.Spawned() > cfg.MaxItems {
			t.Fatalf("spawned %d exceeds cap %d", m.Spawned(), cfg.MaxItems)
		}
		if res.Outcome != nil {
			break
		}
		if got, want := m.Grid().ItemCount(), before-len(res.Removed)+len(res.Spawns); got != want {
			t.Fatalf("item count %d, want %d", got, want)
		}
		if m.Score() < lastScore {
			t.Fatalf("score decreased without a penalty: %d -> %d", lastScore, m.Score())
		}
		lastScore = m.Score()
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	cfg := &engine.LevelConfig{
		ID:        2,
		Rows:      6,
		Cols:      6,
		Colors:    []engine.Color{engine.ColorRed, engine.ColorBlue, engine.ColorYellow, engine.ColorGreen},
		MaxItems:  60,
		Objective: engine.Objective{MaxMoves: 10},
	}

	run := func() engine.Snapshot {
		m := engine.NewModel(engine.DefaultRules(), rand.New(rand.NewSource(99)), nil)
		if _, err := m.StartLevel(cfg); err != nil {
			t.Fatalf("StartLevel: %v", err)
		}
		for i := 0; i < 5; i++ {
			pos, ok := firstMatch(m)
			if !ok {
				break
			}
			m.CollectAt(pos.Row, pos.Col)
		}
		return m.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.MovesLeft != b.MovesLeft || a.State != b.State {
		t.Fatalf("runs diverged: %+v vs %+v", a, b)
	}
	for i := range a.Board {
		if a.Board[i] != b.Board[i] {
			t.Fatalf("boards diverged at row %d: %q vs %q", i, a.Board[i], b.Board[i])
		}
	}
}

func TestLevelReturnsCopy(t *testing.T) {
	m, _ := startModel(t, layoutLevel(4, 3, "RB", "BR"))

	lvl := m.Level()
	lvl.Colors[0] = engine.ColorMulti
	lvl.Layout[0] = "MM"
	if m.Level().Colors[0] == engine.ColorMulti || m.Level().Layout[0] == "MM" {
		t.Error("Level() must return a deep copy")
	}
}
