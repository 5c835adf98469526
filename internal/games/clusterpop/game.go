// Package clusterpop adapts the ClusterPop engine to the arcade platform:
// cursor input, level flow, HUD rendering and logging.
package clusterpop

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clusterpop/internal/config"
	"github.com/vovakirdan/clusterpop/internal/core"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/levels"
	"github.com/vovakirdan/clusterpop/internal/registry"
)

// ID is the registry and score storage identifier.
const ID = "clusterpop"

// messageTicks is how long a status message stays in the HUD.
const messageTicks = 60

// Process-wide settings shared by every game instance.
var (
	settingsMu sync.RWMutex
	table      = levels.Default()
	settings   = config.DefaultClusterPopConfig()
	logger     = log.New(io.Discard)
)

// SetLevels replaces the level table used by new games.
func SetLevels(t *levels.Table) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	table = t
}

// Levels returns the level table used by new games.
func Levels() *levels.Table {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return table
}

// SetConfig replaces the configuration used by new games.
func SetConfig(cfg config.ClusterPopConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "ClusterPop"}, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for ClusterPop.
type Game struct {
	table *levels.Table
	cfg   config.ClusterPopConfig
	log   *log.Logger

	model   *engine.Model
	rng     *rand.Rand
	levelID int
	level   *engine.LevelConfig

	cursor   engine.Pos
	selected *engine.Pos // tile marked for swapping

	tick     uint64
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	message  string
	msgTicks int
	err      error
}

// New creates a game using the process-wide level table, config and logger.
func New() *Game {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return NewWith(table, settings, logger)
}

// NewWith creates a game with explicit dependencies.
func NewWith(t *levels.Table, cfg config.ClusterPopConfig, l *log.Logger) *Game {
	if l == nil {
		l = log.New(io.Discard)
	}
	g := &Game{table: t, cfg: cfg, log: l.WithPrefix(ID)}
	if first, ok := t.Next(0); ok {
		g.levelID = first
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "ClusterPop" }

// SelectLevel chooses the level started by the next Reset.
func (g *Game) SelectLevel(id int) error {
	if !g.table.Exists(id) {
		return fmt.Errorf("clusterpop: %w: %d", levels.ErrLevelNotFound, id)
	}
	g.levelID = id
	return nil
}

// Reset restarts the selected level with a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	rules := engine.Rules{
		MinMatch:       g.cfg.Rules.MinMatch,
		BonusThreshold: g.cfg.Rules.BonusThreshold,
		BonusMoves:     g.cfg.Rules.BonusMoves,
		PenaltyPerItem: g.cfg.Rules.PenaltyPerItem,
		Multiplier:     g.cfg.Rules.Multiplier,
	}
	g.model = engine.NewModel(rules, g.rng, observer{g})
	g.startLevel(g.levelID)
}

// startLevel loads a level from the table, applies the difficulty scale
// and starts it on the existing model.
func (g *Game) startLevel(id int) {
	g.err = nil
	g.selected = nil
	g.cursor = engine.Pos{}

	lvl, err := g.table.Get(id)
	if err != nil {
		g.fail(err)
		return
	}
	lvl.Objective.MaxMoves = config.ScaleMoves(lvl.Objective.MaxMoves, g.cfg.Difficulty.EffectiveMoveScale())

	res, err := g.model.StartLevel(lvl)
	if err != nil {
		g.fail(err)
		return
	}
	g.levelID = id
	g.level = lvl
	g.cursor = engine.Pos{Row: lvl.Rows - 1, Col: lvl.Cols - 1}
	g.checkScreenSize()
	g.log.Info("level started",
		"level", id,
		"size", fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols),
		"colors", len(lvl.Colors),
		"moves", lvl.Objective.MaxMoves,
		"items", len(res.Preset)+len(res.Spawns))
}

func (g *Game) fail(err error) {
	g.err = err
	g.log.Error("cannot start level", "level", g.levelID, "err", err)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	minW, minH := 44, 12
	if g.level != nil {
		minW = max(minW, g.level.Cols*cellWidth+2)
		minH = g.level.Rows + 2 + hudHeight + footerHeight
	}
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}

	if g.tooSmall || g.err != nil || g.model == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.model.State().IsTerminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.model.State().IsTerminal() {
		if in.Has(core.ActionNext) || in.Has(core.ActionConfirm) {
			g.advance()
		}
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionExit):
		g.model.Exit()
	case in.Has(core.ActionSelect):
		g.toggleSelection()
	case in.Has(core.ActionConfirm):
		g.collect()
	default:
		if dir, ok := directionFrom(in); ok {
			g.handleDirection(dir)
		}
	}

	return core.StepResult{State: g.State()}
}

func directionFrom(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// handleDirection swaps the marked tile, or moves the cursor when no tile
// is marked.
func (g *Game) handleDirection(dir engine.Direction) {
	if g.selected != nil {
		from := *g.selected
		g.selected = nil
		res := g.model.TrySwap(from.Row, from.Col, dir)
		if !res.Accepted {
			g.say("Cannot swap there")
			return
		}
		g.cursor = res.To
		g.log.Debug("swap", "from", res.From, "to", res.To, "moves", g.model.MovesLeft())
		return
	}

	next := g.cursor.Step(dir)
	grid := g.model.Grid()
	g.cursor = engine.Pos{
		Row: core.Clamp(next.Row, 0, grid.Rows()-1),
		Col: core.Clamp(next.Col, 0, grid.Cols()-1),
	}
}

func (g *Game) toggleSelection() {
	if g.selected != nil {
		g.selected = nil
		return
	}
	if g.model.Grid().ItemAt(g.cursor.Row, g.cursor.Col) == nil {
		g.say("Nothing to swap")
		return
	}
	p := g.cursor
	g.selected = &p
}

func (g *Game) collect() {
	res := g.model.CollectAt(g.cursor.Row, g.cursor.Col)
	if !res.Accepted {
		g.say(fmt.Sprintf("Need %d or more connected", g.model.Rules().MinMatch))
		return
	}
	g.log.Debug("collect",
		"color", res.Color,
		"count", len(res.Removed),
		"points", res.Score.Total,
		"spawned", len(res.Spawns),
		"moves", g.model.MovesLeft())
	if res.Bonus {
		g.say(fmt.Sprintf("+%d points, bonus move!", res.Score.Total))
	} else {
		g.say(fmt.Sprintf("+%d points", res.Score.Total))
	}
}

// advance starts the next level after a win.
func (g *Game) advance() {
	o := g.model.Outcome()
	if o == nil || !o.IsWin {
		return
	}
	if next, ok := g.table.Next(g.levelID); ok {
		g.startLevel(next)
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgTicks = messageTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused: g.paused || g.tooSmall,
		Level:  g.levelID,
	}
	if g.err != nil {
		st.GameOver = true
		return st
	}
	if g.model == nil {
		return st
	}
	st.Score = g.model.Score()
	st.GameOver = g.model.State().IsTerminal()
	if o := g.model.Outcome(); o != nil {
		st.Won = o.IsWin
	}
	return st
}

// observer logs engine notifications.
type observer struct{ g *Game }

func (o observer) ScoreChanged(score, delta int) {
	if delta < 0 {
		o.g.log.Info("penalty applied", "level", o.g.levelID, "delta", delta, "score", score)
	}
}

func (o observer) MovesChanged(movesLeft, maxMoves int) {
	if movesLeft == 1 && maxMoves > 1 {
		o.g.say("Last move!")
	}
}

func (o observer) LevelFinished(out engine.Outcome) {
	o.g.selected = nil
	o.g.log.Info("level finished",
		"level", o.g.levelID,
		"won", out.IsWin,
		"reason", out.Reason,
		"score", out.Score,
		"penalty", out.Penalty,
		"remaining", out.Remaining)
}
