package confirm

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelAcceptsOnlyY(t *testing.T) {
	t.Parallel()
	cases := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, false},
	}
	for _, tc := range cases {
		next, cmd := newModel("delete everything?").Update(tc.key)
		m := next.(model)
		if !m.done {
			t.Fatalf("key %q should finish the prompt", tc.key.String())
		}
		if cmd == nil {
			t.Fatalf("key %q should quit the program", tc.key.String())
		}
		if m.answer != tc.want {
			t.Fatalf("key %q: expected answer %t, got %t", tc.key.String(), tc.want, m.answer)
		}
	}
}

func TestModelIgnoresOtherKeys(t *testing.T) {
	t.Parallel()
	next, cmd := newModel("reset?").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if next.(model).done || cmd != nil {
		t.Fatalf("unrelated key must not end the prompt")
	}
	if next.View() == "" {
		t.Fatalf("pending prompt should render")
	}
}

func TestStaticConfirmer(t *testing.T) {
	t.Parallel()
	ok, err := Static{Answer: true}.Confirm(context.Background(), "sure?")
	if err != nil || !ok {
		t.Fatalf("expected static yes, got %t %v", ok, err)
	}
}
