// Package game runs the overall game state machine: start screen, play,
// pause, linear level flow and the end-screen summary.
package game

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/level"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// ErrInvalidFlowState is returned when the level flow cannot be advanced
// because the current level is unset or not part of the flow.
var ErrInvalidFlowState = errors.New("game: invalid level flow state")

// Machine drives the game settings of a store.
type Machine struct {
	store  *world.Store
	level  *level.Machine
	clock  core.Clock
	logger *log.Logger

	pausedAtMs int64
}

// New creates a game machine. The level machine receives pause and resume
// notifications.
func New(store *world.Store, lvl *level.Machine, clock core.Clock, logger *log.Logger) *Machine {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{store: store, level: lvl, clock: clock, logger: logger}
}

// State returns the current game state.
func (m *Machine) State() world.GameState {
	return m.store.Game.GameState
}

// Init merges settings over the defaults and, for a linear flow, requests
// the first level.
func (m *Machine) Init(settings world.GameSettings) {
	merged := Merge(settings)
	merged.GameState = world.GameStartScreen
	merged.CurrentLevel = ""
	merged.GoToLevel = ""
	if merged.LevelFlowType == world.FlowLinear && len(merged.LevelFlow) > 0 {
		merged.GoToLevel = merged.LevelFlow[0]
	}
	m.store.Game = merged
}

// Merge overlays the non-zero fields of s onto DefaultGameSettings.
// A non-nil LevelFlow carries its LevelFlowType with it, FlowNone included.
func Merge(s world.GameSettings) world.GameSettings {
	out := world.DefaultGameSettings()
	if s.Background != "" {
		out.Background = s.Background
	}
	if s.BackgroundAddition != core.BackgroundNone {
		out.BackgroundAddition = s.BackgroundAddition
	}
	if s.OverlayTextColor != "" {
		out.OverlayTextColor = s.OverlayTextColor
	}
	if s.Gravity != "" {
		out.Gravity = s.Gravity
	}
	if s.TravelDirection != "" {
		out.TravelDirection = s.TravelDirection
	}
	if s.LevelFlowType != world.FlowNone || s.LevelFlow != nil {
		out.LevelFlowType = s.LevelFlowType
	}
	if s.LevelFlow != nil {
		out.LevelFlow = slices.Clone(s.LevelFlow)
	}
	out.CurrentLevel = s.CurrentLevel
	out.GoToLevel = s.GoToLevel
	out.GameState = s.GameState
	return out
}

// Start leaves the start screen.
func (m *Machine) Start() bool {
	if m.store.Game.GameState != world.GameStartScreen {
		m.logger.Debug("game start ignored", "state", m.store.Game.GameState)
		return false
	}
	m.store.Game.GameState = world.GameNormalPlay
	return true
}

// Pause enters the paused state and suspends the level timer.
func (m *Machine) Pause() bool {
	if m.store.Game.GameState != world.GameNormalPlay {
		m.logger.Debug("pause ignored", "state", m.store.Game.GameState)
		return false
	}
	m.store.Game.GameState = world.GamePaused
	m.pausedAtMs = core.NowMs(m.clock)
	if m.level != nil {
		m.level.Suspend()
	}
	return true
}

// Resume leaves the paused state and forwards the paused duration to the
// current level.
func (m *Machine) Resume() bool {
	if m.store.Game.GameState != world.GamePaused {
		m.logger.Debug("resume ignored", "state", m.store.Game.GameState)
		return false
	}
	m.store.Game.GameState = world.GameNormalPlay
	elapsed := core.NowMs(m.clock) - m.pausedAtMs
	if m.level != nil {
		m.level.Resume(elapsed)
	}
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (m *Machine) TogglePause() bool {
	if m.store.Game.GameState == world.GamePaused {
		return m.Resume()
	}
	return m.Pause()
}

// AdvanceLevel moves the linear flow on: the next level is requested, or
// the game ends after the last one.
func (m *Machine) AdvanceLevel() error {
	g := &m.store.Game
	if g.LevelFlowType != world.FlowLinear {
		m.logger.Warn("advance ignored", "flow", g.LevelFlowType)
		return nil
	}
	if g.CurrentLevel == "" {
		return fmt.Errorf("%w: no current level", ErrInvalidFlowState)
	}
	idx := slices.Index(g.LevelFlow, g.CurrentLevel)
	if idx < 0 {
		return fmt.Errorf("%w: level %q not in flow %v", ErrInvalidFlowState, g.CurrentLevel, g.LevelFlow)
	}

	if idx == len(g.LevelFlow)-1 {
		g.GameState = world.GameEndScreen
		if m.level != nil {
			m.level.DisarmTimer()
		}
		m.logger.Info("game over", "levels", len(g.LevelFlow))
		return nil
	}
	g.GoToLevel = g.LevelFlow[idx+1]
	return nil
}

// Restart returns a finished game to its start screen with no results and
// the first level requested.
func (m *Machine) Restart() bool {
	if m.store.Game.GameState != world.GameEndScreen {
		m.logger.Debug("restart ignored", "state", m.store.Game.GameState)
		return false
	}
	m.store.ClearResults()
	m.store.ResetPlayer()
	g := &m.store.Game
	g.GameState = world.GameStartScreen
	g.CurrentLevel = ""
	if len(g.LevelFlow) > 0 {
		g.GoToLevel = g.LevelFlow[0]
	}
	return true
}

// SummaryRow is one line of the end-screen summary.
type SummaryRow struct {
	LevelID string
	Title   string
	Result  *world.LevelResults // nil when the level was never completed
}

// Summary joins the recorded results with each level's title, in flow
// order. Levels outside the flow that have results are appended.
func (m *Machine) Summary() []SummaryRow {
	ids := slices.Clone(m.store.Game.LevelFlow)
	for _, r := range m.store.Results() {
		if !slices.Contains(ids, r.ID) {
			ids = append(ids, r.ID)
		}
	}

	rows := make([]SummaryRow, 0, len(ids))
	for _, id := range ids {
		row := SummaryRow{LevelID: id, Title: id}
		if ls, err := m.store.LevelSettings(id); err == nil && ls.Title != "" {
			row.Title = ls.Title
		}
		if r, ok := m.store.Result(id); ok {
			row.Result = &r
		}
		rows = append(rows, row)
	}
	return rows
}

// TotalScore sums the score of every recorded result.
func (m *Machine) TotalScore() int {
	total := 0
	for _, r := range m.store.Results() {
		total += r.Score
	}
	return total
}
