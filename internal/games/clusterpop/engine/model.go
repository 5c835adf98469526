package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoLevel is returned by StartLevel when no configuration is given.
var ErrNoLevel = errors.New("engine: no level configuration")

// State is the lifecycle state of a level.
type State uint8

const (
	StateIdle State = iota
	StatePlayerInput
	StateGameOver
	StateLevelComplete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlayerInput:
		return "player_input"
	case StateGameOver:
		return "game_over"
	case StateLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the level has ended.
func (s State) IsTerminal() bool {
	return s == StateGameOver || s == StateLevelComplete
}

// Rules holds the tunable gameplay constants.
type Rules struct {
	MinMatch       int // smallest collectable region
	BonusThreshold int // regions larger than this refund moves
	BonusMoves     int // moves refunded for a bonus region
	PenaltyPerItem int // score lost per item left on a dead board
	Multiplier     int // score multiplier at level start
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		MinMatch:       2,
		BonusThreshold: 10,
		BonusMoves:     1,
		PenaltyPerItem: 10,
		Multiplier:     1,
	}
}

func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.MinMatch < 1 {
		r.MinMatch = d.MinMatch
	}
	if r.BonusThreshold < 0 {
		r.BonusThreshold = d.BonusThreshold
	}
	if r.BonusMoves < 0 {
		r.BonusMoves = 0
	}
	if r.PenaltyPerItem < 0 {
		r.PenaltyPerItem = 0
	}
	if r.Multiplier < 1 {
		r.Multiplier = d.Multiplier
	}
	return r
}

// FinishReason tells why a level ended.
type FinishReason uint8

const (
	ReasonPerfectClear FinishReason = iota
	ReasonNoMatches
	ReasonOutOfMoves
	ReasonExit
)

// String returns the reason name.
func (r FinishReason) String() string {
	switch r {
	case ReasonPerfectClear:
		return "perfect_clear"
	case ReasonNoMatches:
		return "no_matches"
	case ReasonOutOfMoves:
		return "out_of_moves"
	case ReasonExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a level.
type Outcome struct {
	IsWin     bool
	Score     int
	Reason    FinishReason
	Penalty   int // points deducted for a dead board
	Remaining int // items left on the board when the level ended
}

// Spawn records a new item placed on the board.
type Spawn struct {
	ItemID uint64
	Color  Color
	Pos    Pos
}

// Observer receives notifications as a level progresses.
type Observer interface {
	ScoreChanged(score, delta int)
	MovesChanged(movesLeft, maxMoves int)
	LevelFinished(o Outcome)
}

type nopObserver struct{}

func (nopObserver) ScoreChanged(int, int) {}
func (nopObserver) MovesChanged(int, int) {}
func (nopObserver) LevelFinished(Outcome) {}

// StartResult describes the board produced by StartLevel.
type StartResult struct {
	Preset []Spawn // items placed from the layout
	Spawns []Spawn // items placed by the initial fill
	Settle []Move  // compaction after the fill
}

// CollectResult describes one collect action.
// A rejected action has Accepted == false and every other field zero.
type CollectResult struct {
	Accepted   bool
	Color      Color
	Removed    []Pos
	Score      ScoreResult
	MovesDelta int  // net change in moves; a bonus refund offsets the cost
	Bonus      bool // region exceeded the bonus threshold
	Moves      []Move
	Spawns     []Spawn
	Settle     []Move // compaction after the refill
	Outcome    *Outcome
}

// SwapResult describes one swap action.
type SwapResult struct {
	Accepted   bool
	From       Pos
	To         Pos
	MovesDelta int
	Outcome    *Outcome
}

// Snapshot is a serializable view of the model.
type Snapshot struct {
	Level      int      `json:"level"`
	State      string   `json:"state"`
	Score      int      `json:"score"`
	MovesLeft  int      `json:"moves_left"`
	MaxMoves   int      `json:"max_moves"`
	Spawned    int      `json:"spawned"`
	MaxItems   int      `json:"max_items"`
	Multiplier int      `json:"multiplier"`
	Board      []string `json:"board"`
}

// Model runs one level at a time. It is not safe for concurrent use.
type Model struct {
	rules    Rules
	obs      Observer
	balancer *ColorBalancer

	level   *LevelConfig
	grid    *Grid
	gravity *GravitySystem

	state      State
	score      int
	movesLeft  int
	spawned    int
	multiplier int
	nextID     uint64
	outcome    *Outcome
}

// NewModel creates an idle model. A nil rng uses a fixed seed and a nil
// observer discards notifications.
func NewModel(rules Rules, rng *rand.Rand, obs Observer) *Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if obs == nil {
		obs = nopObserver{}
	}
	rules = rules.normalized()
	return &Model{
		rules:      rules,
		obs:        obs,
		balancer:   NewColorBalancer(rng),
		grid:       NewGrid(0, 0),
		multiplier: rules.Multiplier,
	}
}

// StartLevel builds and fills the board for cfg and enters player input.
func (m *Model) StartLevel(cfg *LevelConfig) (StartResult, error) {
	if cfg == nil {
		return StartResult{}, ErrNoLevel
	}
	if err := cfg.Validate(); err != nil {
		return StartResult{}, fmt.Errorf("engine: start level %d: %w", cfg.ID, err)
	}
	var preset []PresetItem
	if cfg.Layout != nil {
		preset, _ = ParseLayout(cfg.Layout, cfg.Rows, cfg.Cols)
	}

	m.level = cfg.Clone()
	m.grid = NewGrid(cfg.Rows, cfg.Cols).Build()
	m.gravity = NewGravitySystem(m.grid)
	m.state = StateIdle
	m.score = 0
	m.movesLeft = cfg.Objective.MaxMoves
	m.spawned = 0
	m.multiplier = m.rules.Multiplier
	m.outcome = nil

	var res StartResult
	for _, p := range preset {
		res.Preset = append(res.Preset, m.spawn(p.Pos, p.Color))
	}
	res.Spawns = m.initialFill()
	res.Settle = m.gravity.Resolve()

	m.state = StatePlayerInput
	m.obs.ScoreChanged(m.score, 0)
	m.obs.MovesChanged(m.movesLeft, m.MaxMoves())
	return res, nil
}

// initialFill fills empty tiles column by column from right to left,
// top to bottom within a column, until the spawn cap is reached.
func (m *Model) initialFill() []Spawn {
	var out []Spawn
	for col := m.grid.Cols() - 1; col >= 0; col-- {
		for row := 0; row < m.grid.Rows(); row++ {
			if !m.CanSpawnMore() {
				return out
			}
			if m.grid.Occupied(row, col) {
				continue
			}
			color := m.balancer.Pick(m.grid, row, col, m.level.Colors)
			out = append(out, m.spawn(Pos{Row: row, Col: col}, color))
		}
	}
	return out
}

// refill fills empty tiles in GravitySystem.EmptyCells order until the
// spawn cap is reached.
func (m *Model) refill() []Spawn {
	var out []Spawn
	for _, p := range m.gravity.EmptyCells() {
		if !m.CanSpawnMore() {
			break
		}
		color := m.balancer.Pick(m.grid, p.Row, p.Col, m.level.Colors)
		out = append(out, m.spawn(p, color))
	}
	return out
}

func (m *Model) spawn(p Pos, color Color) Spawn {
	m.nextID++
	m.grid.Get(p.Row, p.Col).SetItem(&Item{ID: m.nextID, Color: color})
	m.spawned++
	return Spawn{ItemID: m.nextID, Color: color, Pos: p}
}

// CollectAt removes the region containing (row, col) if it is large enough,
// then compacts, refills and checks for the end of the level.
func (m *Model) CollectAt(row, col int) CollectResult {
	if m.state != StatePlayerInput || m.movesLeft <= 0 {
		return CollectResult{}
	}
	match := FindConnectedRegion(m.grid, m.grid.Get(row, col))
	if !IsValidMatch(match, m.rules.MinMatch) {
		return CollectResult{}
	}

	res := CollectResult{Accepted: true, Color: match.Color, Removed: match.Positions()}

	before := m.movesLeft
	m.useMove()
	if match.Count > m.rules.BonusThreshold {
		m.movesLeft += m.rules.BonusMoves
		res.Bonus = true
	}
	res.MovesDelta = m.movesLeft - before

	res.Score = CalculateScore(match.Count, m.multiplier)
	m.score += res.Score.Total
	m.obs.ScoreChanged(m.score, res.Score.Total)
	m.obs.MovesChanged(m.movesLeft, m.MaxMoves())

	for _, t := range match.Tiles {
		t.RemoveItem()
	}
	res.Moves = m.gravity.Resolve()
	res.Spawns = m.refill()
	res.Settle = m.gravity.Resolve()
	res.Outcome = m.checkEnd()
	return res
}

// checkEnd applies the end-of-turn rules in priority order: perfect clear,
// dead board, out of moves.
func (m *Model) checkEnd() *Outcome {
	if m.grid.IsEmpty() {
		return m.finish(Outcome{IsWin: true, Reason: ReasonPerfectClear})
	}
	if !HasPossibleMoves(m.grid, m.rules.MinMatch) {
		remaining := m.grid.ItemCount()
		penalty := remaining * m.rules.PenaltyPerItem
		before := m.score
		m.score = max(0, m.score-penalty)
		m.obs.ScoreChanged(m.score, m.score-before)
		m.grid.ClearItems()
		return m.finish(Outcome{IsWin: true, Reason: ReasonNoMatches, Penalty: penalty, Remaining: remaining})
	}
	if m.movesLeft == 0 {
		remaining := m.grid.ClearItems()
		return m.finish(Outcome{Reason: ReasonOutOfMoves, Remaining: remaining})
	}
	return nil
}

func (m *Model) finish(o Outcome) *Outcome {
	o.Score = m.score
	if o.IsWin {
		m.state = StateLevelComplete
	} else {
		m.state = StateGameOver
	}
	m.outcome = &o
	m.obs.LevelFinished(o)
	out := o
	return &out
}

// TrySwap exchanges the item at (row, col) with its neighbor in dir.
// The swap costs a move whether or not it creates a match.
func (m *Model) TrySwap(row, col int, dir Direction) SwapResult {
	if m.state != StatePlayerInput || m.movesLeft <= 0 {
		return SwapResult{}
	}
	from := Pos{Row: row, Col: col}
	to := from.Step(dir)
	a, b := m.grid.Get(from.Row, from.Col), m.grid.Get(to.Row, to.Col)
	if a == nil || b == nil || !a.HasItem() || !b.HasItem() {
		return SwapResult{}
	}

	ai, bi := a.RemoveItem(), b.RemoveItem()
	a.SetItem(bi)
	b.SetItem(ai)

	m.useMove()
	m.obs.MovesChanged(m.movesLeft, m.MaxMoves())

	res := SwapResult{Accepted: true, From: from, To: to, MovesDelta: -1}
	if m.movesLeft == 0 {
		remaining := m.grid.ClearItems()
		res.Outcome = m.finish(Outcome{Reason: ReasonOutOfMoves, Remaining: remaining})
	}
	return res
}

// Exit abandons the level. Returns nil unless the level was in progress.
func (m *Model) Exit() *Outcome {
	if m.state != StatePlayerInput {
		return nil
	}
	remaining := m.grid.ClearItems()
	return m.finish(Outcome{Reason: ReasonExit, Remaining: remaining})
}

func (m *Model) useMove() {
	if m.movesLeft > 0 {
		m.movesLeft--
	}
}

// CanSpawnMore reports whether the spawn cap allows another item.
func (m *Model) CanSpawnMore() bool {
	return m.level != nil && m.spawned < m.level.MaxItems
}

// SetMultiplier changes the score multiplier for subsequent collects.
func (m *Model) SetMultiplier(mult int) {
	if mult < 1 {
		mult = 1
	}
	m.multiplier = mult
}

// State returns the current lifecycle state.
func (m *Model) State() State { return m.state }

// Score returns the current score.
func (m *Model) Score() int { return m.score }

// MovesLeft returns the remaining move budget.
func (m *Model) MovesLeft() int { return m.movesLeft }

// MaxMoves returns the level's starting move budget.
func (m *Model) MaxMoves() int {
	if m.level == nil {
		return 0
	}
	return m.level.Objective.MaxMoves
}

// Spawned returns how many items have been spawned this level.
func (m *Model) Spawned() int { return m.spawned }

// MaxItems returns the level's spawn cap.
func (m *Model) MaxItems() int {
	if m.level == nil {
		return 0
	}
	return m.level.MaxItems
}

// Multiplier returns the current score multiplier.
func (m *Model) Multiplier() int { return m.multiplier }

// Rules returns the rule set in effect.
func (m *Model) Rules() Rules { return m.rules }

// Grid returns the live board. Callers must not mutate it.
func (m *Model) Grid() *Grid { return m.grid }

// Level returns a copy of the current level configuration, or nil.
func (m *Model) Level() *LevelConfig { return m.level.Clone() }

// Outcome returns the terminal outcome, or nil while the level is running.
func (m *Model) Outcome() *Outcome {
	if m.outcome == nil {
		return nil
	}
	o := *m.outcome
	return &o
}

// Snapshot captures the model for comparison and debugging.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		State:      m.state.String(),
		Score:      m.score,
		MovesLeft:  m.movesLeft,
		MaxMoves:   m.MaxMoves(),
		Spawned:    m.spawned,
		MaxItems:   m.MaxItems(),
		Multiplier: m.multiplier,
		Board:      m.grid.Letters(),
	}
	if m.level != nil {
		s.Level = m.level.ID
	}
	return s
}
