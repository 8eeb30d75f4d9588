package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pendingDoneMsg struct {
	err error
}

// pendingSpinnerModel shows a label while one ledger round trip runs. The
// elapsed time appears once the work is slower than a second.
type pendingSpinnerModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	started time.Time
	now     time.Time
	err     error
	done    bool
}

func newPendingSpinnerModel(label string, work tea.Cmd) pendingSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	started := time.Now()
	return pendingSpinnerModel{
		spinner: s,
		label:   label,
		work:    work,
		started: started,
		now:     started,
	}
}

func (m pendingSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m pendingSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.now = msg.Time
		return m, cmd
	case pendingDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m pendingSpinnerModel) View() string {
	if m.done {
		return ""
	}

	line := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if elapsed := m.now.Sub(m.started); elapsed >= time.Second {
		line += fmt.Sprintf(" %ds", int(elapsed.Seconds()))
	}
	return line
}

// runPendingSpinner shows label on output while work runs and returns
// work's error.
func runPendingSpinner(ctx context.Context, output io.Writer, label string, work func(context.Context) error) error {
	workCmd := func() tea.Msg {
		return pendingDoneMsg{err: work(ctx)}
	}

	p := tea.NewProgram(
		newPendingSpinnerModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(pendingSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
