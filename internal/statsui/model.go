// Package statsui provides the Bubble Tea history interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordrush/internal/model"
	"github.com/verte-zerg/wordrush/internal/stats"
)

const (
	tabSessions = iota
	tabOverview
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	src stats.HistorySource
	cfg model.HistoryConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	table     table.Model
	overview  viewport.Model

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(src stats.HistorySource, cfg model.HistoryConfig) *Model {
	m := &Model{
		src:      src,
		cfg:      cfg,
		tabs:     []string{"Sessions", "Overview"},
		overview: viewport.New(0, 0),
	}
	m.table = table.New(
		table.WithColumns(sessionColumns(80)),
		table.WithHeight(1),
		table.WithStyles(tableStyles()),
		table.WithFocused(true),
	)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, tea.ClearScreen
		case "d":
			m.cfg.Difficulty = nextDifficulty(m.cfg.Difficulty)
			m.refreshReport()
			m.updateLayout()
			return m, nil
		case "g", "home":
			if m.activeTab == tabSessions {
				m.table.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSessions {
				m.table.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabSessions {
			m.table, cmd = m.table.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var body string
	switch {
	case m.errMsg != "":
		body = errorStyle.Render(m.errMsg)
	case len(m.report.Sessions) == 0:
		body = "No sessions found."
	case m.activeTab == tabSessions:
		body = tableMutedStyle.Render(m.table.View())
	default:
		body = m.overview.View()
	}
	return strings.Join([]string{m.renderTabs(), m.renderFilterSummary(), body, m.renderHelp()}, "\n")
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load history: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.table.SetRows(sessionRows(report.Sessions))
	m.table.GotoBottom()

	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, report); err != nil {
		m.errMsg = fmt.Sprintf("Failed to render history: %v", err)
		return
	}
	m.overview.SetContent(buf.String())
}

func (m *Model) updateLayout() {
	headerHeight := lipgloss.Height(m.renderTabs()) + 1
	bodyHeight := m.height - headerHeight - 1
	if bodyHeight < 2 {
		bodyHeight = 2
	}
	m.table.SetColumns(sessionColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(bodyHeight)
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	difficulty := "any"
	if m.cfg.Difficulty != 0 {
		difficulty = m.cfg.Difficulty.String()
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	return headerStyle.Render(fmt.Sprintf("Filters: difficulty=%s  since=%s  last=%s", difficulty, since, last))
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Tabs: left/right  Scroll: up/down/pgup/pgdn  Difficulty: d  Quit: q")
}

func nextDifficulty(d model.Difficulty) model.Difficulty {
	if d == 0 {
		return model.Difficulties[0]
	}
	for i, candidate := range model.Difficulties {
		if candidate == d && i+1 < len(model.Difficulties) {
			return model.Difficulties[i+1]
		}
	}
	return 0
}

func sessionColumns(width int) []table.Column {
	fixed := []int{16, 10, 9, 9}
	rating := width - 2*len(stats.SessionHeaders)
	for _, w := range fixed {
		rating -= w
	}
	if rating < 12 {
		rating = 12
	}
	widths := append(fixed, rating)
	columns := make([]table.Column, len(stats.SessionHeaders))
	for i, title := range stats.SessionHeaders {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}
	return columns
}

func sessionRows(sessions []model.SessionAggregate) []table.Row {
	raw := stats.SessionRows(sessions)
	rows := make([]table.Row, len(raw))
	for i, r := range raw {
		rows[i] = table.Row(r)
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color("#8C8C8C")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
