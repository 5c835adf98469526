package clusterpop

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/clusterpop/internal/core"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
)

const (
	cellWidth    = 3 // "[●]" per tile
	hudHeight    = 3
	footerHeight = 2
)

var tileColors = map[engine.Color]core.Color{
	engine.ColorRed:    core.ColorRed,
	engine.ColorYellow: core.ColorYellow,
	engine.ColorPurple: core.ColorPurple,
	engine.ColorBlue:   core.ColorBlue,
	engine.ColorPink:   core.ColorPink,
	engine.ColorGreen:  core.ColorGreen,
	engine.ColorOrange: core.ColorOrange,
	engine.ColorMulti:  core.ColorWhite,
}

func tileGlyph(c engine.Color) rune {
	if c == engine.ColorMulti {
		return '◆'
	}
	return '●'
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Cannot start level", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2, g.err.Error())
		return
	}
	if g.model == nil || g.level == nil {
		return
	}
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Please resize terminal")
		return
	}

	grid := g.model.Grid()
	boardW := grid.Cols()*cellWidth + 2
	boardH := grid.Rows() + 2
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)
	g.renderBoard(dst, boardX+1, boardY+1)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	m := g.model
	title := fmt.Sprintf("ClusterPop  Level %d: %s", g.levelID, g.level.Name)
	dst.DrawTextCenteredColored(0, title, core.ColorCyan)

	stats := fmt.Sprintf("Score: %d/%d   Moves: %d/%d   Items: %d/%d",
		m.Score(), g.level.Objective.TargetScore,
		m.MovesLeft(), m.MaxMoves(),
		m.Spawned(), m.MaxItems())
	dst.DrawTextCentered(1, stats)

	if m.Multiplier() > 1 {
		dst.DrawTextCenteredColored(2, fmt.Sprintf("x%d", m.Multiplier()), core.ColorYellow)
	}
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	grid := g.model.Grid()
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			x := x0 + col*cellWidth
			y := y0 + row

			p := engine.Pos{Row: row, Col: col}
			left, right := ' ', ' '
			switch {
			case g.selected != nil && *g.selected == p:
				left, right = '<', '>'
			case g.cursor == p && g.model.State() == engine.StatePlayerInput:
				left, right = '[', ']'
			}
			dst.Set(x, y, left)
			dst.Set(x+2, y, right)

			item := grid.ItemAt(row, col)
			if item == nil {
				dst.SetColored(x+1, y, '·', core.ColorGray)
				continue
			}
			dst.SetColored(x+1, y, tileGlyph(item.Color), tileColors[item.Color])
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	h := dst.Height()
	if g.message != "" {
		dst.DrawTextCenteredColored(h-2, g.message, core.ColorYellow)
	}
	help := "Arrows: move  Enter: collect  Space: swap  X: exit  P: pause  Q: quit"
	if g.selected != nil {
		help = "Arrow: swap direction  Space: cancel"
	}
	dst.DrawTextCenteredColored(h-1, help, core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	if g.paused {
		g.renderOverlay(dst, core.ColorCyan, "Paused", "Press P to continue")
		return
	}
	o := g.model.Outcome()
	if o == nil {
		return
	}

	if !o.IsWin {
		line := "Out of moves"
		if o.Reason == engine.ReasonExit {
			line = "Level abandoned"
		}
		g.renderOverlay(dst, core.ColorRed, "Game Over", line,
			fmt.Sprintf("Score: %d", o.Score), "R: retry  B: levels")
		return
	}

	lines := []string{fmt.Sprintf("Score: %d", o.Score)}
	if o.Reason == engine.ReasonPerfectClear {
		lines = append(lines, "Perfect clear!")
	} else if o.Penalty > 0 {
		lines = append(lines, fmt.Sprintf("%d left, -%d penalty", o.Remaining, o.Penalty))
	}
	if _, ok := g.table.Next(g.levelID); ok {
		lines = append(lines, "N: next level  R: retry")
	} else {
		lines = append(lines, "All levels complete!")
	}
	g.renderOverlay(dst, core.ColorGreen, "Level Complete", lines...)
}

// renderOverlay draws a boxed message in the middle of the screen.
func (g *Game) renderOverlay(dst *core.Screen, c core.Color, title string, lines ...string) {
	width := utf8.RuneCountInString(title)
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	boxW := width + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ')
	dst.DrawBox(box, c)
	dst.DrawTextCenteredColored(boxY+1, title, c)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l)
	}
}
