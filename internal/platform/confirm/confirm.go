// Package confirm asks the user before destructive operations.
package confirm

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"banditboard/internal/ui/theme"
)

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Static answers every prompt the same way (--yes, tests).
type Static struct {
	Answer bool
}

func (s Static) Confirm(context.Context, string) (bool, error) {
	return s.Answer, nil
}

// TUI renders a y/n prompt with bubbletea on the given streams.
type TUI struct {
	In  io.Reader
	Out io.Writer
}

func NewTUI(in io.Reader, out io.Writer) TUI {
	return TUI{In: in, Out: out}
}

func (t TUI) Confirm(ctx context.Context, prompt string) (bool, error) {
	program := tea.NewProgram(
		newModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	)
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	m, ok := final.(model)
	if !ok {
		return false, nil
	}
	return m.answer, nil
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
	hintStyle   = theme.Muted
)

type model struct {
	prompt string
	answer bool
	done   bool
}

func newModel(prompt string) model {
	return model{prompt: strings.TrimSpace(prompt)}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "enter", "esc", "ctrl+c", "q":
		m.answer = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return promptStyle.Render(m.prompt) + " " + hintStyle.Render("[y/N]") + "\n"
}
