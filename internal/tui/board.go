// Package tui is a keyboard-driven terminal board. Task moves go through the
// same drop handling as drag-and-drop.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"taskflow/internal/board"
	"taskflow/internal/model"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputTask
	inputColumn
)

type tickMsg time.Time

// Model is the bubbletea model for the board screen.
type Model struct {
	ctx     context.Context
	board   *board.Board
	columns []model.Column

	col int
	row int

	mode   inputMode
	buffer string
	status string

	clock    func() time.Time
	now      time.Time
	interval time.Duration
}

type Option func(*Model)

// WithClock sets the time source and refresh interval of the footer clock.
func WithClock(clock func() time.Time, interval time.Duration) Option {
	return func(m *Model) {
		m.clock = clock
		m.interval = interval
	}
}

func New(ctx context.Context, b *board.Board, opts ...Option) *Model {
	m := &Model{
		ctx:      ctx,
		board:    b,
		clock:    time.Now,
		interval: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.now = m.clock()
	m.refresh()
	return m
}

// Run blocks until the user quits.
func Run(ctx context.Context, b *board.Board, opts ...Option) error {
	program := tea.NewProgram(New(ctx, b, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = m.clock()
		return m, tickCmd(m.interval)
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m, m.updateInput(msg)
		}
		return m, m.updateBoard(msg)
	}
	return m, nil
}

func (m *Model) updateBoard(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "left":
		m.focus(m.col-1, m.row)
	case "right":
		m.focus(m.col+1, m.row)
	case "up":
		m.focus(m.col, m.row-1)
	case "down":
		m.focus(m.col, m.row+1)
	case "H":
		m.moveAcross(-1)
	case "L":
		m.moveAcross(1)
	case "K":
		m.moveWithin(-1)
	case "J":
		m.moveWithin(1)
	case "p":
		m.cyclePriority()
	case "d":
		m.deleteTask()
	case "x":
		m.deleteColumn()
	case "n":
		if len(m.columns) > 0 {
			m.mode = inputTask
		}
	case "c":
		m.mode = inputColumn
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.mode, m.buffer = inputNone, ""
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.buffer); len(r) > 0 {
			m.buffer = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.buffer += " "
	case tea.KeyRunes:
		m.buffer += string(msg.Runes)
	}
	return nil
}

func (m *Model) submit() {
	title := m.buffer
	mode := m.mode
	m.mode, m.buffer = inputNone, ""

	switch mode {
	case inputTask:
		col := m.columns[m.col]
		task, err := m.board.AddTask(m.ctx, col.ID, model.TaskDraft{Title: title})
		if m.check(err) {
			m.refresh()
			m.focus(m.col, len(m.columns[m.col].Tasks)-1)
			m.status = fmt.Sprintf("added %q", task.Title)
		}
	case inputColumn:
		col, err := m.board.AddColumn(m.ctx, title)
		if m.check(err) {
			m.refresh()
			m.focus(len(m.columns)-1, 0)
			m.status = fmt.Sprintf("added column %q", col.Title)
		}
	}
}

func (m *Model) moveAcross(dir int) {
	task, ok := m.focused()
	if !ok {
		return
	}
	target := m.col + dir
	if target < 0 || target >= len(m.columns) {
		return
	}
	dst := min(m.row, len(m.columns[target].Tasks))
	m.drop(target, dst, task)
}

func (m *Model) moveWithin(dir int) {
	task, ok := m.focused()
	if !ok {
		return
	}
	dst := m.row + dir
	if dst < 0 || dst >= len(m.columns[m.col].Tasks) {
		return
	}
	m.drop(m.col, dst, task)
}

func (m *Model) drop(col, row int, task model.Task) {
	moved, err := m.board.Drop(m.ctx, board.DropResult{
		Source:      board.Location{ColumnID: m.columns[m.col].ID, Index: m.row},
		Destination: &board.Location{ColumnID: m.columns[col].ID, Index: row},
	})
	if !m.check(err) || !moved {
		return
	}
	m.refresh()
	m.focus(col, row)
	m.status = fmt.Sprintf("moved %q to %s", task.Title, m.columns[col].Title)
}

func (m *Model) cyclePriority() {
	task, ok := m.focused()
	if !ok {
		return
	}
	next := task.Priority.Next()
	_, err := m.board.UpdateTask(m.ctx, m.columns[m.col].ID, task.ID, model.TaskPatch{Priority: &next})
	if m.check(err) {
		m.refresh()
	}
}

func (m *Model) deleteTask() {
	task, ok := m.focused()
	if !ok {
		return
	}
	if m.check(m.board.DeleteTask(m.ctx, m.columns[m.col].ID, task.ID)) {
		m.refresh()
		m.focus(m.col, m.row)
		m.status = fmt.Sprintf("deleted %q", task.Title)
	}
}

func (m *Model) deleteColumn() {
	if len(m.columns) == 0 {
		return
	}
	col := m.columns[m.col]
	if m.check(m.board.DeleteColumn(m.ctx, col.ID)) {
		m.refresh()
		m.focus(m.col, 0)
		m.status = fmt.Sprintf("deleted column %q", col.Title)
	}
}

// check records err in the status line and reports whether it was nil.
func (m *Model) check(err error) bool {
	if err == nil {
		return true
	}
	log.WithError(err).Warn("board update failed")
	m.status = "error: " + err.Error()
	return false
}

func (m *Model) refresh() {
	m.columns = m.board.Columns()
	m.focus(m.col, m.row)
}

// focus moves the cursor, clamped to the board.
func (m *Model) focus(col, row int) {
	if len(m.columns) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = max(0, min(col, len(m.columns)-1))
	m.row = max(0, min(row, len(m.columns[m.col].Tasks)-1))
}

func (m *Model) focused() (model.Task, bool) {
	if len(m.columns) == 0 || len(m.columns[m.col].Tasks) == 0 {
		return model.Task{}, false
	}
	return m.columns[m.col].Tasks[m.row], true
}

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(28)
	focusedColumnStyle = columnStyle.BorderForeground(lipgloss.Color("63"))
	headerStyle        = lipgloss.NewStyle().Bold(true)
	cursorStyle        = lipgloss.NewStyle().Reverse(true)
	mutedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var badgeColors = map[string]lipgloss.Color{
	"destructive": lipgloss.Color("#ef4444"),
	"secondary":   lipgloss.Color("#3b82f6"),
	"outline":     lipgloss.Color("#9ca3af"),
}

func badge(p model.Priority) string {
	return lipgloss.NewStyle().Foreground(badgeColors[p.Badge()]).Render(string(p))
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("TaskFlow") + "\n\n")

	if len(m.columns) == 0 {
		b.WriteString(mutedStyle.Render("No columns. Press c to add one.") + "\n")
	} else {
		rendered := make([]string, len(m.columns))
		for i, col := range m.columns {
			rendered[i] = m.renderColumn(i, col)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n")
	}

	switch m.mode {
	case inputTask:
		b.WriteString(fmt.Sprintf("\nNew task in %s: %s_\n", m.columns[m.col].Title, m.buffer))
	case inputColumn:
		b.WriteString(fmt.Sprintf("\nNew column: %s_\n", m.buffer))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf(
		"%s  ←→↑↓ focus  H/L move  K/J reorder  p priority  n task  c column  d delete  x delete column  q quit",
		m.now.Format("Mon Jan 2 15:04"),
	)))
	return b.String()
}

func (m *Model) renderColumn(i int, col model.Column) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))) + "\n")

	if len(col.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("empty"))
	}
	for j, task := range col.Tasks {
		var when string
		if task.Scheduled() {
			when = fmt.Sprintf(" %s %s-%s", task.Date, task.StartTime, task.EndTime)
		}
		line := task.Title
		switch {
		case i == m.col && j == m.row:
			line = cursorStyle.Render(task.Title + when)
		case when != "":
			line += mutedStyle.Render(when)
		}
		b.WriteString(badge(task.Priority) + " " + line)
		if j < len(col.Tasks)-1 {
			b.WriteString("\n")
		}
	}

	style := columnStyle
	if i == m.col {
		style = focusedColumnStyle
	}
	return style.Render(b.String())
}
