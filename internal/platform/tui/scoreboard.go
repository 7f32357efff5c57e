package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reflex/internal/storage"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// Scoreboard layout constants
const (
	maxSessions = 100 // Max sessions to load
)

// scoreboardTab selects what the table shows.
type scoreboardTab int

const (
	tabRecords scoreboardTab = iota
	tabRecent
	tabCount
)

func (t scoreboardTab) title() string {
	if t == tabRecent {
		return "Recent sessions"
	}
	return "Records"
}

// HistorySource provides session history for the scoreboard.
type HistorySource interface {
	RecentSessions(limit int) ([]storage.SessionEntry, error)
	GetLevelStats() (map[trainer.Level]*storage.LevelStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	scores   trainer.HighScores
	history  HistorySource // May be nil for the records backend
	stats    map[trainer.Level]*storage.LevelStats
	sessions []storage.SessionEntry
	loadErr  error
	tab      scoreboardTab
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(scores trainer.HighScores, history HistorySource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		scores:  scores.Normalize(),
		history: history,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}

	m.loadHistory()
	m.table = m.createTable()
	m.updateTableRows()

	return m
}

// loadHistory reads aggregates and recent sessions once.
func (m *ScoreboardModel) loadHistory() {
	if m.history == nil {
		return
	}
	stats, err := m.history.GetLevelStats()
	if err != nil {
		m.loadErr = err
		return
	}
	sessions, err := m.history.RecentSessions(maxSessions)
	if err != nil {
		m.loadErr = err
		return
	}
	m.stats = stats
	m.sessions = sessions
}

// columns returns the column set for the current tab.
func (m *ScoreboardModel) columns() []table.Column {
	if m.tab == tabRecent {
		return []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Level", Width: 12},
			{Title: "Score", Width: 7},
			{Title: "Mean", Width: 7},
			{Title: "Best", Width: 7},
			{Title: "", Width: 8},
		}
	}
	return []table.Column{
		{Title: "Level", Width: 12},
		{Title: "Record", Width: 8},
		{Title: "Played", Width: 7},
		{Title: "Avg", Width: 7},
		{Title: "Mean", Width: 7},
		{Title: "Best", Width: 7},
	}
}

// createTable creates a new table with columns for the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// rows builds table rows for the current tab.
func (m *ScoreboardModel) rows() []table.Row {
	if m.tab == tabRecent {
		rows := make([]table.Row, len(m.sessions))
		for i, s := range m.sessions {
			flag := ""
			if s.NewRecord {
				flag = "record"
			}
			rows[i] = table.Row{
				s.CreatedAt.Format("Jan 02 15:04"),
				s.Level.String(),
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%.2fs", s.MeanReaction),
				fmt.Sprintf("%.2fs", s.BestReaction),
				flag,
			}
		}
		return rows
	}

	levels := trainer.Levels()
	rows := make([]table.Row, len(levels))
	for i, lvl := range levels {
		row := table.Row{lvl.String(), fmt.Sprintf("%d", m.scores.Record(lvl)), "-", "-", "-", "-"}
		if st, ok := m.stats[lvl]; ok {
			row[2] = fmt.Sprintf("%d", st.Sessions)
			row[3] = fmt.Sprintf("%.0f", st.AvgScore)
			row[4] = fmt.Sprintf("%.2fs", st.AvgReaction)
			row[5] = fmt.Sprintf("%.2fs", st.BestReaction)
		}
		rows[i] = row
	}
	return rows
}

// updateTableRows refreshes the table for the current tab.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchTab(delta int) {
	m.tab = scoreboardTab((int(m.tab) + delta + int(tabCount)) % int(tabCount))
	m.table.SetColumns(m.columns())
	m.updateTableRows()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REFLEX TRAINER - "+strings.ToUpper(m.tab.title()), m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for t := scoreboardTab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.title())
		} else {
			tabs[t] = tabStyle.Render(" " + t.title() + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or an explanatory message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.tab == tabRecent {
		switch {
		case m.history == nil:
			return emptyStyle.Render("Session history needs the sqlite backend.")
		case m.loadErr != nil:
			return emptyStyle.Render("Could not load history:\n" + m.loadErr.Error())
		case len(m.sessions) == 0:
			return emptyStyle.Render("No sessions recorded yet.\nPlay a session to fill this table!")
		}
	}

	return m.table.View()
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = strings.Repeat(" ", (width-w)/2) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(scores trainer.HighScores, history HistorySource, width, height int) error {
	model := NewScoreboardModel(scores, history, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
