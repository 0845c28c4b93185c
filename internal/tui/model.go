package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/tally/internal/export"
	"github.com/Mr-Dark-debug/tally/internal/registry"
)

// Exporter writes counters to disk and returns the file path.
type Exporter interface {
	ExportFrom(src export.Source) (string, error)
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the Tally TUI.
// Counter state lives in the registry; the binder mirrors it as cards
// and rendering is delegated to component functions in separate files.
type Model struct {
	reg      *registry.Registry
	binder   *Binder
	exporter Exporter
	lg       *zap.SugaredLogger
	now      func() time.Time

	// UI state
	selected  int
	scrollRow int
	width     int
	height    int
	inputMode bool
	input     string

	// Status
	statusMsg string
	statusErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for user actions.
func WithLogger(lg *zap.SugaredLogger) Option {
	return func(m *Model) {
		if lg != nil {
			m.lg = lg
		}
	}
}

// WithClock overrides the time source used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// NewModel creates a TUI model over reg. The model's binder is subscribed
// to reg and seeded with any counters reg already holds.
func NewModel(reg *registry.Registry, exporter Exporter, opts ...Option) (Model, error) {
	m := Model{
		reg:      reg,
		binder:   NewBinder(reg),
		exporter: exporter,
		lg:       zap.NewNop().Sugar(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	names, err := reg.Names()
	if err != nil {
		return Model{}, fmt.Errorf("loading counters: %w", err)
	}
	for _, name := range names {
		m.binder.CreateCollector(name)
		m.binder.UpdateCollector(name)
	}
	if err := m.binder.Err(); err != nil {
		return Model{}, fmt.Errorf("loading counters: %w", err)
	}

	reg.Subscribe(m.binder)
	return m, nil
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type exportDoneMsg struct {
	path string
	err  error
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

// export snapshots the registry now and writes the file in the background,
// so keys pressed after "e" are not part of the export.
func (m *Model) export() tea.Cmd {
	snap, err := m.reg.Snapshot()
	if err != nil {
		m.lg.Errorw("export failed", "error", err)
		m.setError(err)
		return nil
	}

	m.setStatus("Exporting...")
	exporter := m.exporter
	return func() tea.Msg {
		path, err := exporter.ExportFrom(snap)
		return exportDoneMsg{path: path, err: err}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.lg.Errorw("export failed", "error", msg.err)
			m.setError(msg.err)
			return m, nil
		}
		m.lg.Infow("exported counters", "path", msg.path)
		m.setStatus(fmt.Sprintf("Exported to %s", msg.path))
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// ── Name input ──

	if m.inputMode {
		switch msg.Type {
		case tea.KeyEsc:
			m.inputMode = false
			m.input = ""
		case tea.KeyEnter:
			m.createCollector()
		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.input = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
		return m, nil
	}

	// ── Cards ──

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "n", "/":
		m.inputMode = true
		m.input = ""

	case "left", "h":
		m.moveSelection(-1)
	case "right", "l", "tab":
		m.moveSelection(1)
	case "up", "k":
		m.moveSelection(-m.columns())
	case "down", "j":
		m.moveSelection(m.columns())

	case "+", "=", "enter", " ":
		m.apply(m.selected, actionIncrement)
	case "-", "_", "backspace", "x":
		m.apply(m.selected, actionDecrement)

	case "e":
		cmd := m.export()
		return m, cmd
	}

	return m, nil
}

// handleMouse maps left clicks on a card's buttons to counter actions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		idx, action := m.hitTest(msg.X, msg.Y)
		if idx < 0 {
			return m, nil
		}
		m.selected = idx
		m.apply(idx, action)
	case tea.MouseButtonWheelUp:
		m.moveSelection(-m.columns())
	case tea.MouseButtonWheelDown:
		m.moveSelection(m.columns())
	}
	return m, nil
}

// createCollector submits the name input. Empty and duplicate names leave
// the input open and unchanged.
func (m *Model) createCollector() {
	created, err := m.reg.AddCollector(m.input)
	if err != nil {
		m.lg.Errorw("create counter failed", "name", m.input, "error", err)
		m.setError(err)
		return
	}
	if !created {
		return
	}

	name := registry.NormalizeName(m.input)
	m.lg.Infow("counter created", "name", name)
	m.input = ""
	m.inputMode = false
	m.selected = m.binder.Len() - 1
	m.ensureVisible()
	m.setStatus("")
}

// apply runs a card action against the counter at idx.
func (m *Model) apply(idx int, action cardAction) {
	c, ok := m.binder.at(idx)
	if !ok {
		return
	}

	var err error
	switch action {
	case actionIncrement:
		err = m.reg.Add(c.name)
	case actionDecrement:
		err = m.reg.RemoveLast(c.name)
	default:
		return
	}
	if err == nil {
		err = m.binder.Err()
	}
	if err != nil {
		m.lg.Errorw("update counter failed", "name", c.name, "error", err)
		m.setError(err)
		return
	}

	count, _ := m.binder.Count(c.name)
	m.lg.Debugw("counter updated", "name", c.name, "count", count)
}

func (m *Model) moveSelection(delta int) {
	if m.binder.Len() == 0 {
		return
	}
	m.selected = clamp(m.selected+delta, 0, m.binder.Len()-1)
	m.ensureVisible()
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusErr = true
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	input := renderInput(&m)
	grid := renderGrid(&m)
	detail := renderDetail(&m)
	footer := renderFooter(&m)

	// Pin the detail line and footer to the bottom of the screen.
	gridHeight := maxInt(0, m.height-chromeHeight)
	grid = lipgloss.NewStyle().Height(gridHeight).MaxHeight(gridHeight).Render(grid)

	return lipgloss.JoinVertical(lipgloss.Left, header, input, "", grid, detail, footer)
}
