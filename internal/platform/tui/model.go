package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/storage"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// maxFrameDelta caps the step after a stall so objects do not tunnel.
const maxFrameDelta = 0.25

// Model is the Bubble Tea model running one game.
type Model struct {
	engine     *engine.Engine
	canvas     *Canvas
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	held       heldControls
	lastTick   time.Time
	summary    table.Model
	endShown   bool
	best       int
	quitting   bool
}

// NewModel creates a model for e. store may be nil, in which case no
// results are recorded.
func NewModel(e *engine.Engine, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rec := &recorder{store: store, engine: e, gameID: e.Definition().ID, logger: logger}
	e.Subscribe(rec.observe)

	return Model{
		engine:     e,
		canvas:     NewCanvas(cfg.Seed),
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(DefaultKeyMap()),
		help:       help.New(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the frame and time-left loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), timerCmd(m.engine.TimeLeftInterval()))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case TimerMsg:
		m.engine.TimerTick()
		return m, timerCmd(m.engine.TimeLeftInterval())
	}

	return m, nil
}

// handleKey processes keyboard input. Screen transitions apply at once;
// movement and shooting are buffered for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionConfirm:
		if err := m.engine.Confirm(); err != nil {
			m.logger.Error("confirm failed", "err", err)
		}
	case core.ActionPause:
		m.engine.TogglePause()
		m.held.release()
	case core.ActionRetry:
		m.retry()
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// retry restarts a failed level, or the whole game from the end screen.
func (m *Model) retry() {
	if m.engine.GameState() != world.GameEndScreen {
		m.engine.Retry()
		return
	}
	if err := m.engine.RestartGame(); err != nil {
		m.logger.Error("restart failed", "err", err)
	}
	m.endShown = false
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
	m.help.Width = msg.Width
	if m.endShown {
		m.summary = newSummaryTable(m.engine.Summary(), m.config.ScreenW, m.config.ScreenH)
	}
	return m, nil
}

// handleTick advances the engine by the wall-clock time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := 1 / float64(core.Max(m.config.TickRate, 1))
	if !m.lastTick.IsZero() {
		if d := now.Sub(m.lastTick).Seconds(); d > 0 {
			delta = min(d, maxFrameDelta)
		}
	}
	m.lastTick = now

	if m.engine.GameState() == world.GameNormalPlay {
		m.canvas.Advance(delta)
	}
	if err := m.engine.Step(m.held.controls(m.inputFrame), delta); err != nil {
		m.logger.Error("step failed", "err", err)
	}
	m.inputFrame.Clear()

	if m.engine.GameState() == world.GameEndScreen && !m.endShown {
		m.showEndScreen()
	}
	return m, tickCmd(m.config.TickRate)
}

// showEndScreen builds the summary table and looks up the stored best.
func (m *Model) showEndScreen() {
	m.endShown = true
	m.held.release()
	m.summary = newSummaryTable(m.engine.Summary(), m.config.ScreenW, m.config.ScreenH)
	m.best = 0
	if m.store != nil {
		best, err := m.store.HighScore(m.engine.Definition().ID)
		if err != nil {
			m.logger.Warn("high score lookup failed", "err", err)
		}
		m.best = best
	}
}

// projection maps the engine's bounds onto the play area.
func (m Model) projection() Projection {
	params := m.engine.Params()
	return Projection{Min: params.BoundsMin, Max: params.BoundsMax, Area: playArea(m.screen)}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.canvas.Draw(m.screen, m.engine.Store(), m.projection())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade3d", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.engine.Definition().ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.engine.GameState() == world.GameEndScreen && m.endShown {
		def := m.engine.Definition()
		title := def.Title
		if title == "" {
			title = def.ID
		}
		return renderEndScreen(title, m.summary, m.engine.TotalScore(), m.best, m.config.ScreenW)
	}

	m.canvas.Draw(m.screen, m.engine.Store(), m.projection())
	if o, ok := overlayFor(m.engine); ok {
		o.draw(m.screen)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// recorder stores finished levels and games on the scoreboard.
type recorder struct {
	store  *storage.Store
	engine *engine.Engine
	gameID string
	logger *log.Logger
}

func (r *recorder) observe(ev engine.Event) {
	if r.store == nil {
		return
	}
	switch ev.Kind {
	case engine.EventLevelWon, engine.EventLevelFailed:
		if ev.Result == nil {
			return
		}
		if _, err := r.store.SaveLevelResult(r.gameID, *ev.Result); err != nil {
			r.logger.Error("save level result", "level", ev.LevelID, "err", err)
		}
	case engine.EventGameEnded:
		if _, err := r.store.SaveScore(r.gameID, r.engine.TotalScore()); err != nil {
			r.logger.Error("save score", "err", err)
		}
	}
}

// Run starts the Bubble Tea program for e.
func Run(e *engine.Engine, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(e, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
