// Package tui shows a vramcon console in a Bubble Tea program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/glyph"
)

// Options configures the viewer
type Options struct {
	Title    string
	Interval time.Duration // refresh period (default 50ms)
	Status   func() string // extra status text, may be nil
}

// refreshMsg asks the model to take a new snapshot.
type refreshMsg time.Time

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Reverse(true)
)

// Model is the Bubble Tea model for one console.
type Model struct {
	console *vramcon.Console
	opts    Options
	screen  vramcon.Screen
}

// New creates a model showing console.
func New(console *vramcon.Console, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	return Model{
		console: console,
		opts:    opts,
		screen:  console.Snapshot(),
	}
}

func (m Model) refresh() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles refresh ticks and the quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.screen = m.console.Snapshot()
		return m, m.refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View draws the grid in a rounded frame with a status line underneath.
func (m Model) View() string {
	lines := glyph.Lines(&m.screen)
	grid := frameStyle.Render(strings.Join(lines, "\n"))

	status := fmt.Sprintf(" Cursor: %d,%d | Scrolls: %d ",
		m.screen.Cursor.Row+1, m.screen.Cursor.Col+1, m.screen.Scrolls)
	if m.opts.Status != nil {
		status += "| " + m.opts.Status() + " "
	}

	sections := []string{grid, statusStyle.Render(status)}
	if m.opts.Title != "" {
		sections = append([]string{titleStyle.Render(m.opts.Title)}, sections...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run shows console until the user quits or ctx is cancelled.
func Run(ctx context.Context, console *vramcon.Console, opts Options) error {
	p := tea.NewProgram(
		New(console, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
