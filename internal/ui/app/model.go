package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	confidencedto "banditboard/internal/modules/confidence/dto"
	experimentdto "banditboard/internal/modules/experiment/dto"
	hypothesisdto "banditboard/internal/modules/hypothesis/dto"
	matrixdto "banditboard/internal/modules/matrix/dto"
	"banditboard/internal/ui/components"
	"banditboard/internal/ui/theme"
	matrixview "banditboard/internal/ui/views/matrix"
	"banditboard/internal/ui/views/portfolio"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type MatrixPort interface {
	Matrix(ctx context.Context) (matrixdto.MatrixOutput, error)
	ListIdeas(ctx context.Context, all bool) ([]matrixdto.IdeaOutput, error)
	AddIdea(ctx context.Context, title, memo string, impact, cost int) (matrixdto.IdeaOutput, error)
	ToggleFilter(ctx context.Context, zone string) ([]matrixdto.FilterOutput, error)
}

type PortfolioPort interface {
	List(ctx context.Context, status, sort string) ([]hypothesisdto.ItemOutput, error)
	Resources(ctx context.Context) (hypothesisdto.ResourcesOutput, error)
	SetStatus(ctx context.Context, id, status string) (hypothesisdto.ItemOutput, error)
}

type ExperimentPort interface {
	List(ctx context.Context, ideaTitle, sort string) ([]experimentdto.ExperimentOutput, error)
	SyncConfidence(ctx context.Context) (int, error)
}

type ConfidencePort interface {
	List(ctx context.Context) ([]confidencedto.RecordOutput, error)
	Update(ctx context.Context, title string, confidence *int, impact, memo *string) (confidencedto.RecordOutput, error)
}

type Ports struct {
	Matrix     MatrixPort
	Portfolio  PortfolioPort
	Experiment ExperimentPort
	Confidence ConfidencePort
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabMatrix tabID = iota
	tabPortfolio
	tabExperiments
	tabConfidence
	tabCount
)

var tabLabels = [tabCount]string{"Matrix", "Portfolio", "Experiments", "Confidence"}

var paletteHints = []string{
	"idea <impact> <cost> <title>",
	"filter <zone>",
	"status <id> <status>",
	"confidence <level> <idea title>",
	"reload",
}

// ─── async messages ───────────────────────────────────────────────────────────

type snapshot struct {
	matrix      matrixdto.MatrixOutput
	ideas       []matrixdto.IdeaOutput
	items       []hypothesisdto.ItemOutput
	resources   hypothesisdto.ResourcesOutput
	experiments []experimentdto.ExperimentOutput
	confidence  []confidencedto.RecordOutput
}

type loadedMsg struct {
	snap snapshot
	err  error
}

type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the dashboard: one tab per board, all reads and writes through
// the ports. Every action reloads the full snapshot afterwards. While an
// action or reload is in flight, busy refuses new ones so each finishes and
// persists before the next starts.
type Model struct {
	ports Ports

	busy      bool
	snap      snapshot
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(ports Ports) Model {
	return Model{
		ports:   ports,
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(paletteHints),
		status:  "loading",
		busy:    true,
		width:   100,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		if m.status == "loading" {
			m.status = "ready"
		}

	case actionDoneMsg:
		if msg.err != nil {
			m.busy = false
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.loadCmd()

	case components.PaletteSubmitMsg:
		if m.busy {
			m.status = "busy, try again"
			return m, nil
		}
		next, cmd := m.execute(msg.Input)
		nm := next.(Model)
		nm.busy = cmd != nil
		return nm, cmd

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = true
		case "r":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "reloading"
			return m, m.loadCmd()
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabMatrix:
		return m.matrixView()
	case tabPortfolio:
		return m.portfolioView()
	case tabExperiments:
		return m.experimentsView()
	case tabConfidence:
		return m.confidenceView()
	}
	return ""
}

func (m Model) matrixView() string {
	var sb strings.Builder
	sb.WriteString(matrixview.Render(m.snap.matrix, m.width) + "\n\n")
	for _, idea := range m.snap.ideas {
		sb.WriteString(fmt.Sprintf("%2d  %s  %s\n", idea.Score, theme.ZoneStyle(idea.Zone).Render(idea.ZoneLabel), idea.Title))
	}
	return sb.String()
}

func (m Model) portfolioView() string {
	var sb strings.Builder
	sb.WriteString(portfolio.RenderResources(m.snap.resources, min(m.width-4, 60)) + "\n\n")
	if len(m.snap.items) == 0 {
		sb.WriteString(theme.Muted.Render("no hypotheses") + "\n")
	}
	for _, item := range m.snap.items {
		sb.WriteString(portfolio.RenderItem(item) + "\n")
	}
	return sb.String()
}

func (m Model) experimentsView() string {
	if len(m.snap.experiments) == 0 {
		return theme.Muted.Render("no experiments") + "\n"
	}
	var sb strings.Builder
	for _, e := range m.snap.experiments {
		rates := make([]string, 0, len(e.Rates))
		for _, r := range e.Rates {
			rates = append(rates, r.Label+" "+r.Display)
		}
		sb.WriteString(fmt.Sprintf("%s / %s  %s\n", theme.Title.Render(e.IdeaTitle), e.TestTitle, theme.Muted.Render(strings.Join(rates, "  "))))
	}
	return sb.String()
}

func (m Model) confidenceView() string {
	if len(m.snap.confidence) == 0 {
		return theme.Muted.Render("no tracked ideas") + "\n"
	}
	var sb strings.Builder
	for _, r := range m.snap.confidence {
		sb.WriteString(fmt.Sprintf("%3d%%  %s  %s\n", r.Confidence, r.IdeaTitle, theme.Muted.Render(r.ImpactLabel)))
	}
	return sb.String()
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "banditboard  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snap.resources.Overfilled {
		left = theme.Warn.Render(fmt.Sprintf("resources %d%%", m.snap.resources.Total)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── commands ─────────────────────────────────────────────────────────────────

func (m Model) execute(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "reload":
		return m, m.loadCmd()
	case "idea":
		if len(parts) < 4 {
			m.status = "usage: idea <impact> <cost> <title>"
			return m, nil
		}
		impact, errI := strconv.Atoi(parts[1])
		cost, errC := strconv.Atoi(parts[2])
		if errI != nil || errC != nil {
			m.status = "impact and cost must be numbers"
			return m, nil
		}
		title := strings.Join(parts[3:], " ")
		m.activeTab = tabMatrix
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.ports.Matrix.AddIdea(ctx, title, "", impact, cost)
			return "added " + out.Title, err
		})
	case "filter":
		if len(parts) != 2 {
			m.status = "usage: filter <zone>"
			return m, nil
		}
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			_, err := m.ports.Matrix.ToggleFilter(ctx, parts[1])
			return "filter toggled", err
		})
	case "status":
		if len(parts) != 3 {
			m.status = "usage: status <id> <status>"
			return m, nil
		}
		m.activeTab = tabPortfolio
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.ports.Portfolio.SetStatus(ctx, parts[1], parts[2])
			return out.IdeaTitle + " → " + out.StatusLabel, err
		})
	case "confidence":
		if len(parts) < 3 {
			m.status = "usage: confidence <level> <idea title>"
			return m, nil
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "level must be a number"
			return m, nil
		}
		title := strings.Join(parts[2:], " ")
		m.activeTab = tabConfidence
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.ports.Confidence.Update(ctx, title, &level, nil, nil)
			return fmt.Sprintf("%s: %d%%", out.IdeaTitle, out.Confidence), err
		})
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

func (m Model) actionCmd(run func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := run(context.Background())
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.load(context.Background())
		return loadedMsg{snap: snap, err: err}
	}
}

func (m Model) load(ctx context.Context) (snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.matrix, err = m.ports.Matrix.Matrix(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.ideas, err = m.ports.Matrix.ListIdeas(ctx, false); err != nil {
		return snapshot{}, err
	}
	if snap.items, err = m.ports.Portfolio.List(ctx, "active", "resource"); err != nil {
		return snapshot{}, err
	}
	if snap.resources, err = m.ports.Portfolio.Resources(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.experiments, err = m.ports.Experiment.List(ctx, "all", "newest"); err != nil {
		return snapshot{}, err
	}
	if _, err = m.ports.Experiment.SyncConfidence(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.confidence, err = m.ports.Confidence.List(ctx); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}
