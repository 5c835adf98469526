package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clusterpop/internal/core"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/levels"
	"github.com/vovakirdan/clusterpop/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// LevelMenuModel lets the player pick an unlocked level.
type LevelMenuModel struct {
	levels    []*engine.LevelConfig
	progress  storage.Progress
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	message   string

	selected       int // chosen level ID, 0 while choosing
	openScoreboard bool
	quitting       bool
}

// NewLevelMenuModel creates a level menu with the cursor on the current level.
func NewLevelMenuModel(table *levels.Table, progress storage.Progress, width, height int) LevelMenuModel {
	m := LevelMenuModel{
		levels:    table.All(),
		progress:  progress,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, lvl := range m.levels {
		if lvl.ID == progress.CurrentLevel {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		lvl := m.levels[m.cursor]
		if !m.progress.IsLevelUnlocked(lvl.ID) {
			m.message = fmt.Sprintf("Level %d is locked", lvl.ID)
			return m, nil
		}
		m.selected = lvl.ID
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C L U S T E R P O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %-14s %2dx%-2d  %d colors  %2d moves",
			cursor, lvl.ID, lvl.Name, lvl.Rows, lvl.Cols, len(lvl.Colors), lvl.Objective.MaxMoves)

		switch {
		case !m.progress.IsLevelUnlocked(lvl.ID):
			line = menuLockedStyle.Render(line + "  [locked]")
		case i == m.cursor:
			line = menuCursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen level ID, or 0 if none.
func (m LevelMenuModel) Selected() int {
	return m.selected
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m LevelMenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// LevelMenuResult holds the result of running the level menu.
type LevelMenuResult struct {
	LevelID         int
	WantsScoreboard bool
	Quit            bool
}

// RunLevelMenu runs the level menu and returns the selection.
func RunLevelMenu(table *levels.Table, progress storage.Progress, cfg core.RuntimeConfig) (LevelMenuResult, error) {
	p := tea.NewProgram(
		NewLevelMenuModel(table, progress, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return LevelMenuResult{}, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return LevelMenuResult{Quit: true}, nil
	}

	switch {
	case m.WantsScoreboard():
		return LevelMenuResult{WantsScoreboard: true}, nil
	case m.Selected() > 0:
		return LevelMenuResult{LevelID: m.Selected()}, nil
	default:
		return LevelMenuResult{Quit: true}, nil
	}
}
