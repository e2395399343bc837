package spinner

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned when the user quits before the work finishes
var ErrInterrupted = errors.New("interrupted")

type doneMsg struct{ err error }

type model struct {
	spinner  spinner.Model
	quitting bool
	done     bool
	err      error
	message  string
}

func InitialModel(message string) model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6"))
	return model{
		spinner: s,
		message: message,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			return m, nil
		}

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}
	str := fmt.Sprintf("%s %s", m.spinner.View(), m.message)
	if m.quitting {
		return str + "\n"
	}
	return str
}

// While shows a spinner with message until work returns, then yields
// work's error.
func While(message string, work func() error, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(InitialModel(message), opts...)

	go func() {
		p.Send(doneMsg{err: work()})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner failed: %w", err)
	}

	m := final.(model)
	if !m.done {
		return ErrInterrupted
	}
	return m.err
}
