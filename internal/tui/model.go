// Package tui provides the Bubble Tea engine cycle interface.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fourstroke/internal/anim"
	"github.com/verte-zerg/fourstroke/internal/canvas"
	"github.com/verte-zerg/fourstroke/internal/geometry"
	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/model"
	"github.com/verte-zerg/fourstroke/internal/quiz"
	"github.com/verte-zerg/fourstroke/internal/scene"
	"github.com/verte-zerg/fourstroke/internal/store"
)

const (
	defaultFPS = 60

	// Logical pixels per terminal cell. Cells are roughly twice as tall as
	// they are wide.
	cellWidthPx  = 7
	cellHeightPx = 14

	defaultCols = 80
	panelWidth  = 40
	minCols     = 10
)

var (
	labelTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Bold(true).Padding(0, 1)
	panelStyle     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	factLabelStyle = lipgloss.NewStyle().Bold(true)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea engine cycle UI.
type Model struct {
	config model.Config
	loc    locale.Locale
	store  *store.Store

	grid     *canvas.Grid
	label    *scene.TextLabel
	panel    *scene.TextPanel
	renderer *scene.Renderer
	sched    *frameScheduler
	driver   *anim.Driver

	input     textinput.Model
	quizFocus bool
	result    quiz.Result
	hasResult bool

	width  int
	height int
}

// NewModel constructs the UI model. st may be nil, in which case quiz
// answers are not recorded.
func NewModel(cfg model.Config, loc locale.Locale, st *store.Store) *Model {
	rows := rowsFor(defaultCols)
	m := &Model{
		config: cfg,
		loc:    loc,
		store:  st,
		grid:   canvas.NewGrid(defaultCols, rows, defaultCols*cellWidthPx),
		label:  &scene.TextLabel{},
		panel:  &scene.TextPanel{},
		sched:  newFrameScheduler(cfg.FPS),
	}
	m.renderer = scene.NewRenderer(m.grid, m.label, m.panel, loc)
	m.driver = anim.New(m.sched, m.sched, m.renderer)
	m.initInput()
	m.driver.Redraw()
	return m
}

func (m *Model) initInput() {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = m.loc.Quiz.Placeholder
	input.CharLimit = 16
	input.Width = 12
	m.input = input
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
		m.resize()
		return m, nil
	case frameMsg:
		if !m.sched.deliver(msg) {
			return m, nil
		}
		return m, m.sched.takeCmd()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.quizFocus {
			return m.updateQuiz(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "s":
			m.driver.Start()
		case "p":
			m.driver.Pause()
		case " ":
			m.driver.Toggle()
		case "r":
			m.driver.Reset()
		case "tab", "enter":
			m.quizFocus = true
			return m, m.input.Focus()
		default:
			return m, nil
		}
		return m, m.sched.takeCmd()
	}
	return m, nil
}

func (m *Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.quizFocus = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.submitAnswer()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitAnswer() {
	answer := m.input.Value()
	m.result = quiz.Check(m.loc, answer)
	m.hasResult = true
	if m.store == nil {
		return
	}
	attempt := model.QuizAttempt{
		AnsweredAt: time.Now(),
		Lang:       m.loc.Code,
		Answer:     answer,
		Correct:    m.result.Correct,
	}
	if _, err := m.store.InsertAttempt(context.Background(), attempt); err != nil {
		logErrf("failed to save quiz attempt: %v\n", err)
	}
}

// resize fits the diagram into the space left of the side panel, then
// recomputes the layout and redraws at the current progress.
func (m *Model) resize() {
	availCols := m.width - panelWidth - 1
	availRows := m.height - 1
	cols, rows := fitDiagram(availCols, availRows)
	m.grid.Resize(cols, rows, float64(cols*cellWidthPx))
	m.renderer.Resize()
	m.driver.Redraw()
}

// fitDiagram picks the largest grid that fits the available cells while
// keeping the diagram's aspect ratio.
func fitDiagram(availCols, availRows int) (cols, rows int) {
	cols = max(availCols, minCols)
	rows = rowsFor(cols)
	if availRows > 0 && rows > availRows {
		rows = max(availRows, 1)
		cols = int(float64(rows) * cellHeightPx * geometry.AspectWidth / geometry.AspectHeight / cellWidthPx)
		cols = max(cols, minCols)
	}
	return cols, rows
}

func rowsFor(cols int) int {
	height := geometry.HeightFor(float64(cols * cellWidthPx))
	return max(int(math.Round(height/cellHeightPx)), 1)
}

// View implements tea.Model.
func (m *Model) View() string {
	diagram := m.grid.Render()
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderLabel(),
		m.renderPanel(),
		"",
		m.renderQuiz(),
		"",
		m.renderStatus(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, diagram, " ", side)
	if m.height < 3 {
		return body
	}
	return body + "\n" + m.renderFooter()
}

func (m *Model) renderLabel() string {
	return labelTextStyle.Background(lipgloss.Color(m.label.Background)).Render(m.label.Text)
}

func (m *Model) renderPanel() string {
	exp := m.panel.Explanation
	inner := panelWidth - 4
	lines := []string{titleStyle.Render(exp.Title)}
	for _, fact := range exp.Facts {
		wrapped := wrapWords(fact.Label+": "+fact.Text, inner)
		if len(wrapped) > 0 && strings.HasPrefix(wrapped[0], fact.Label+":") {
			wrapped[0] = factLabelStyle.Render(fact.Label+":") + strings.TrimPrefix(wrapped[0], fact.Label+":")
		}
		lines = append(lines, wrapped...)
	}
	return panelStyle.
		BorderForeground(lipgloss.Color(m.label.Background)).
		Width(panelWidth - 2).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderQuiz() string {
	lines := wrapWords(m.loc.Quiz.Question, panelWidth-2)
	for i, line := range lines {
		lines[i] = questionStyle.Render(line)
	}
	lines = append(lines, m.input.View())
	if m.hasResult {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.result.Color))
		for _, line := range wrapWords(m.result.Message, panelWidth-2) {
			lines = append(lines, style.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	state := m.loc.Paused
	if m.driver.Running() {
		state = m.loc.Running
	}
	frame := m.renderer.LastFrame()
	return statusStyle.Render(fmt.Sprintf("%s · %d°", state, frame.CrankDegrees))
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(m.loc.Help)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
