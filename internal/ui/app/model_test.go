package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	confidencedto "banditboard/internal/modules/confidence/dto"
	experimentdto "banditboard/internal/modules/experiment/dto"
	hypothesisdto "banditboard/internal/modules/hypothesis/dto"
	matrixdto "banditboard/internal/modules/matrix/dto"
	"banditboard/internal/ui/components"
)

type fakeBoard struct {
	ideas      []matrixdto.IdeaOutput
	statuses   map[string]string
	confidence map[string]int
}

func (f *fakeBoard) Matrix(context.Context) (matrixdto.MatrixOutput, error) {
	var out matrixdto.MatrixOutput
	for _, i := range f.ideas {
		out.Cells[i.Impact-1][i.Cost-1] = append(out.Cells[i.Impact-1][i.Cost-1], matrixdto.MatrixCell{Title: i.Title, Zone: i.Zone, Score: i.Score})
	}
	return out, nil
}

func (f *fakeBoard) ListIdeas(context.Context, bool) ([]matrixdto.IdeaOutput, error) {
	return f.ideas, nil
}

func (f *fakeBoard) AddIdea(_ context.Context, title, _ string, impact, cost int) (matrixdto.IdeaOutput, error) {
	idea := matrixdto.IdeaOutput{Title: title, Impact: impact, Cost: cost, Zone: "QUICK_WINS", ZoneLabel: "Quick Wins"}
	f.ideas = append(f.ideas, idea)
	return idea, nil
}

func (f *fakeBoard) ToggleFilter(context.Context, string) ([]matrixdto.FilterOutput, error) {
	return nil, nil
}

func (f *fakeBoard) List(context.Context, string, string) ([]hypothesisdto.ItemOutput, error) {
	return []hypothesisdto.ItemOutput{{ID: "h1", IdeaTitle: "Ads", Hypothesis: "banners convert", Status: f.statuses["h1"], StatusLabel: f.statuses["h1"]}}, nil
}

func (f *fakeBoard) Resources(context.Context) (hypothesisdto.ResourcesOutput, error) {
	return hypothesisdto.ResourcesOutput{Total: 120, Overfilled: true}, nil
}

func (f *fakeBoard) SetStatus(_ context.Context, id, status string) (hypothesisdto.ItemOutput, error) {
	f.statuses[id] = status
	return hypothesisdto.ItemOutput{ID: id, IdeaTitle: "Ads", Status: status, StatusLabel: status}, nil
}

type fakeExperiments struct{}

func (fakeExperiments) List(context.Context, string, string) ([]experimentdto.ExperimentOutput, error) {
	return nil, nil
}

func (fakeExperiments) SyncConfidence(context.Context) (int, error) { return 0, nil }

type fakeConfidence struct{ board *fakeBoard }

func (f fakeConfidence) List(context.Context) ([]confidencedto.RecordOutput, error) {
	var out []confidencedto.RecordOutput
	for title, level := range f.board.confidence {
		out = append(out, confidencedto.RecordOutput{IdeaTitle: title, Confidence: level})
	}
	return out, nil
}

func (f fakeConfidence) Update(_ context.Context, title string, level *int, _, _ *string) (confidencedto.RecordOutput, error) {
	f.board.confidence[title] = *level
	return confidencedto.RecordOutput{IdeaTitle: title, Confidence: *level}, nil
}

func newTestModel() (Model, *fakeBoard) {
	board := &fakeBoard{statuses: map[string]string{"h1": "trial"}, confidence: map[string]int{}}
	return NewModel(Ports{Matrix: board, Portfolio: board, Experiment: fakeExperiments{}, Confidence: fakeConfidence{board: board}}), board
}

// drive runs a command chain until it settles, feeding each message back.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelLoadsAndSwitchesTabs(t *testing.T) {
	t.Parallel()
	m, board := newTestModel()
	board.ideas = []matrixdto.IdeaOutput{{Title: "Landing page", Impact: 5, Cost: 1, Score: 10, Zone: "QUICK_WINS", ZoneLabel: "Quick Wins"}}
	m = drive(t, m, m.Init())
	if m.status != "ready" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "Landing page") {
		t.Fatalf("matrix tab should list the idea:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.activeTab != tabPortfolio {
		t.Fatalf("tab should move to portfolio, got %d", m.activeTab)
	}
	view := m.View()
	if !strings.Contains(view, "banners convert") || !strings.Contains(view, "120% over capacity") {
		t.Fatalf("portfolio tab missing content:\n%s", view)
	}
}

func TestModelExecutesCommands(t *testing.T) {
	t.Parallel()
	m, board := newTestModel()
	m = drive(t, m, m.Init())

	next, cmd := m.execute("status h1 focus")
	m = drive(t, next.(Model), cmd)
	if board.statuses["h1"] != "focus" {
		t.Fatalf("status not applied: %v", board.statuses)
	}
	if m.activeTab != tabPortfolio || !strings.Contains(m.status, "focus") {
		t.Fatalf("unexpected state: tab=%d status=%q", m.activeTab, m.status)
	}

	next, cmd = m.execute("confidence 70 Ads")
	m = drive(t, next.(Model), cmd)
	if board.confidence["Ads"] != 70 {
		t.Fatalf("confidence not applied: %v", board.confidence)
	}
	if !strings.Contains(m.View(), "70%") {
		t.Fatalf("confidence tab should show the new level:\n%s", m.View())
	}

	next, cmd = m.execute("idea 4 2 New channel")
	m = drive(t, next.(Model), cmd)
	if len(board.ideas) != 1 || board.ideas[0].Title != "New channel" {
		t.Fatalf("idea not added: %+v", board.ideas)
	}

	next, _ = m.execute("idea x 2 Broken")
	if got := next.(Model).status; got != "impact and cost must be numbers" {
		t.Fatalf("unexpected status %q", got)
	}
	next, _ = m.execute("frobnicate")
	if got := next.(Model).status; got != "unknown command: frobnicate" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestModelRefusesWorkWhileBusy(t *testing.T) {
	t.Parallel()
	m, board := newTestModel()
	if next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); cmd != nil || !next.(Model).busy {
		t.Fatalf("reload must wait for the initial load")
	}
	m = drive(t, m, m.Init())
	if m.busy {
		t.Fatalf("model should be idle after loading")
	}

	next, first := m.Update(components.PaletteSubmitMsg{Input: "idea 5 1 first"})
	m = next.(Model)
	if first == nil || !m.busy {
		t.Fatalf("first action should start and mark the model busy")
	}
	next, second := m.Update(components.PaletteSubmitMsg{Input: "idea 4 2 second"})
	m = next.(Model)
	if second != nil || m.status != "busy, try again" {
		t.Fatalf("second action must be refused, status=%q", m.status)
	}
	next, reload := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if reload != nil {
		t.Fatalf("reload must be refused while busy")
	}

	m = drive(t, m, first)
	if m.busy || len(board.ideas) != 1 {
		t.Fatalf("first action should finish alone: busy=%v ideas=%+v", m.busy, board.ideas)
	}
	next, second = m.Update(components.PaletteSubmitMsg{Input: "idea 4 2 second"})
	m = drive(t, next.(Model), second)
	if len(board.ideas) != 2 {
		t.Fatalf("second action should run once idle: %+v", board.ideas)
	}
}
