// Package statsui provides the Bubble Tea quiz history interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/model"
	"github.com/verte-zerg/fourstroke/internal/stats"
	"github.com/verte-zerg/fourstroke/internal/store"
)

const (
	tabOverview = iota
	tabAttempts
)

const timeLayout = "2006-01-02 15:04"

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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea quiz history UI.
type Model struct {
	store  *store.Store
	filter model.AttemptFilter

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	attempts  table.Model

	width  int
	height int
}

// NewModel constructs a quiz history UI model.
func NewModel(st *store.Store, filter model.AttemptFilter) *Model {
	m := &Model{
		store:    st,
		filter:   filter,
		tabs:     []string{"Overview", "Attempts"},
		overview: viewport.New(0, 0),
		attempts: buildAttemptTable(nil, 0, 1),
	}
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
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "L":
			m.filter.Lang = nextLang(m.filter.Lang)
			m.refreshReport()
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			if m.activeTab == tabAttempts {
				m.attempts.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabAttempts {
				m.attempts.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabAttempts {
				m.attempts, cmd = m.attempts.Update(msg)
			} else {
				m.overview, cmd = m.overview.Update(msg)
			}
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.attempts.SetWidth(m.width)
	m.attempts.SetHeight(max(bodyHeight-1, 1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabAttempts {
		m.attempts.Focus()
	} else {
		m.attempts.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load quiz history.")
		return
	}
	m.errMsg = ""
	m.report = report
	_, bodyHeight, _ := m.layoutHeights()
	focused := m.attempts.Focused()
	m.attempts = buildAttemptTable(report.History, m.width, bodyHeight)
	if focused {
		m.attempts.Focus()
	}
	m.renderContents()
}

func (m *Model) renderContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report.Summary, width))
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

func (m *Model) renderHeader() string {
	return m.renderTabs() + "\n" + m.renderFilterSummary()
}

func (m *Model) renderFilterSummary() string {
	lang := m.filter.Lang
	if lang == "" {
		lang = "any"
	}
	since := "any"
	if m.filter.Since != nil {
		since = m.filter.Since.Format("2006-01-02")
	}
	last := "all"
	if m.filter.Last > 0 {
		last = fmt.Sprintf("%d", m.filter.Last)
	}
	summary := fmt.Sprintf("Filter: lang=%s  since=%s  last=%s", lang, since, last)
	return headerStyle.Render(runewidth.Truncate(summary, m.width, "..."))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabAttempts {
		if len(m.report.History) == 0 {
			return "No quiz attempts found."
		}
		return tableMutedStyle.Render(m.attempts.View())
	}
	return m.overview.View()
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Lang: L  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(s stats.Summary, width int) string {
	if s.Attempts == 0 {
		return "No quiz attempts found."
	}
	cards := []string{
		metricCard("Attempts", fmt.Sprintf("%d", s.Attempts)),
		metricCard("Correct", fmt.Sprintf("%d", s.Correct)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", s.Accuracy*100)),
		metricCard("Streak", fmt.Sprintf("%d", s.Streak)),
	}
	var summary string
	if width < 60 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	var buf bytes.Buffer
	if err := stats.WriteSummary(&buf, s); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

// buildAttemptTable lists attempts newest first.
func buildAttemptTable(history []model.QuizAttempt, width, height int) table.Model {
	columns := []table.Column{
		{Title: "When", Width: len(timeLayout)},
		{Title: "Lang", Width: 4},
		{Title: "Answer", Width: 8},
		{Title: "Result", Width: 6},
	}
	rows := make([]table.Row, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		a := history[i]
		result := "wrong"
		if a.Correct {
			result = "right"
		}
		answer := a.Answer
		if answer == "" {
			answer = "<empty>"
		}
		rows = append(rows, table.Row{
			a.AnsweredAt.Local().Format(timeLayout),
			a.Lang,
			answer,
			result,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(height-1, 1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// nextLang cycles through "" (any) and every known language.
func nextLang(current string) string {
	langs := append([]string{""}, locale.Languages()...)
	for i, lang := range langs {
		if lang == current {
			return langs[(i+1)%len(langs)]
		}
	}
	return ""
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
