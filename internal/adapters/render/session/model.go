package session

import (
	"errors"
	"io"

	"github.com/bnema/link-portal-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// frameMsg carries the drawn session back into the program.
type frameMsg string

type frame struct {
	snapshot domain.Session
	opts     RenderOptions
	text     string
}

func (f frame) Init() tea.Cmd {
	snapshot, opts := f.snapshot, f.opts
	return func() tea.Msg {
		return frameMsg(renderView(snapshot, opts, newStyles()))
	}
}

func (f frame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if text, ok := msg.(frameMsg); ok {
		f.text = string(text)
		return f, tea.Quit
	}
	return f, nil
}

func (f frame) View() string {
	return f.text
}

// Render draws a session snapshot once and returns the text.
func Render(snapshot domain.Session, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		frame{snapshot: snapshot.Clone(), opts: opts},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	drawn, ok := final.(frame)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return drawn.View(), nil
}
