package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/engine"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/levels"
	"github.com/vovakirdan/clusterpop/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 26
	maxScores          = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevLevel, k.NextLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextLevel: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the score history one level at a time.
type ScoreboardModel struct {
	levels    []*engine.LevelConfig
	cursor    int
	store     *storage.Store
	stats     map[int]storage.LevelStats
	scores    []storage.ScoreEntry
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard with one page per level. A nil
// store shows empty pages.
func NewScoreboardModel(store *storage.Store, levelTable *levels.Table, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: levelTable.All(),
		store:  store,
		stats:  make(map[int]storage.LevelStats),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.loadStats()
	m.table = m.newTable()
	m.loadScores()
	return m
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m *ScoreboardModel) newTable() table.Model {
	dateWidth := 14
	if w := m.width - 4; m.wide() && w-sidebarWidth > 60 {
		dateWidth = 20
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 8},
		{Title: "Played", Width: dateWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) loadStats() {
	if m.store == nil {
		return
	}
	all, err := m.store.GetLevelStats(clusterpop.ID)
	if err != nil {
		return
	}
	for _, ls := range all {
		m.stats[ls.LevelID] = ls
	}
}

func (m *ScoreboardModel) current() *engine.LevelConfig {
	if len(m.levels) == 0 {
		return nil
	}
	return m.levels[m.cursor]
}

func (m *ScoreboardModel) loadScores() {
	m.scores = nil
	if lvl := m.current(); lvl != nil && m.store != nil {
		if scores, err := m.store.TopScores(clusterpop.ID, lvl.ID, maxScores); err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		result := "lost"
		if s.Won {
			result = "cleared"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			result,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.levels)) % len(m.levels)
	m.loadScores()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.moveLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.moveLevel(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.loadScores()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if lvl := m.current(); lvl != nil {
		title += " - " + levelLabel(lvl)
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	body := panelStyle.Render(m.statsLine() + "\n\n" + m.tableView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.levelTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// sidebar lists every level with its best score; cleared levels get a mark.
func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))
	sb.WriteString("\n")

	for i, lvl := range m.levels {
		best := "-"
		mark := " "
		if ls, ok := m.stats[lvl.ID]; ok {
			best = strconv.Itoa(ls.HighScore)
			if ls.Wins > 0 {
				mark = wonStyle.Render("✓")
			}
		}

		name := levelLabel(lvl)
		nameWidth := sidebarWidth - 6 - len(best) - 2
		if r := []rune(name); len(r) > nameWidth {
			name = string(r[:nameWidth-1]) + "…"
		}
		line := fmt.Sprintf("%-*s %s", nameWidth, name, best)

		if i == m.cursor {
			sb.WriteString(activeStyle.Render("> "+line) + " " + mark)
		} else {
			sb.WriteString("  " + line + " " + mark)
		}
		sb.WriteString("\n")
	}

	return panelStyle.Width(sidebarWidth).Render(sb.String())
}

// levelTabs is the narrow-screen replacement for the sidebar.
func (m ScoreboardModel) levelTabs() string {
	tabs := make([]string, len(m.levels))
	for i, lvl := range m.levels {
		label := strconv.Itoa(lvl.ID)
		if i == m.cursor {
			tabs[i] = activeStyle.Background(lipgloss.Color("57")).Padding(0, 1).Render(label)
		} else {
			tabs[i] = mutedStyle.Render(" " + label + " ")
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		if lvl := m.current(); lvl != nil {
			line = fmt.Sprintf("< %s >", levelLabel(lvl))
		}
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	lvl := m.current()
	if lvl == nil {
		return mutedStyle.Render("No levels loaded")
	}
	ls, ok := m.stats[lvl.ID]
	if !ok {
		return mutedStyle.Render(fmt.Sprintf("Target %d in %d moves", lvl.Objective.TargetScore, lvl.Objective.MaxMoves))
	}
	return fmt.Sprintf("Plays %d   Cleared %d   Best %d   Avg %.0f",
		ls.Plays, ls.Wins, ls.HighScore, ls.AvgScore)
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return mutedStyle.Italic(true).Padding(1, 2).
			Render("No scores recorded yet.\nFinish this level to set one!")
	}
	return m.table.View()
}

func levelLabel(lvl *engine.LevelConfig) string {
	if lvl.Name == "" {
		return fmt.Sprintf("Level %d", lvl.ID)
	}
	return fmt.Sprintf("%d. %s", lvl.ID, lvl.Name)
}

// IsGoingBack reports whether the user asked to return to the level menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user wants to go back to the level menu.
func RunScoreboard(store *storage.Store, levelTable *levels.Table, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, levelTable, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
