// Package level runs the state machine of the current level: activation,
// start, the periodic time-left timer, win and fail evaluation, pause
// accounting, retry and continue.
package level

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// Advancer moves the game on to the next level.
type Advancer interface {
	AdvanceLevel() error
}

// Machine drives the store's current level.
type Machine struct {
	store  *world.Store
	clock  core.Clock
	logger *log.Logger

	timerArmed bool
}

// New creates a level machine over store.
func New(store *world.Store, clock core.Clock, logger *log.Logger) *Machine {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{store: store, clock: clock, logger: logger}
}

// State returns the current level state.
func (m *Machine) State() world.LevelState {
	return m.store.Level.LevelState
}

// TimerArmed reports whether the time-left timer is running.
func (m *Machine) TimerArmed() bool {
	return m.timerArmed
}

// Activate makes id the current level and re-initializes its data from
// settings. The object registry is restored from the level's snapshot when
// one exists, otherwise it is filled with declared. Projectiles are cleared
// and a pending GoToLevel is consumed.
func (m *Machine) Activate(id string, declared []world.GameObjectData) error {
	settings, err := m.store.LevelSettings(id)
	if err != nil {
		return err
	}
	m.DisarmTimer()

	st := m.store
	if st.Objects.HasSnapshot(id) {
		st.Objects.ResetForLevel(id)
	} else {
		st.Objects.Clear()
		for _, obj := range declared {
			obj.ParentLevelID = id
			if err := st.Objects.Register(obj); err != nil {
				return err
			}
		}
	}
	st.Projectiles.Clear()

	st.Game.CurrentLevel = id
	if st.Game.GoToLevel == id {
		st.Game.GoToLevel = ""
	}
	st.Level = world.NewLevelData(settings)
	m.syncLivingEnemies()

	m.logger.Debug("level activated", "level", id, "state", st.Level.LevelState, "objects", st.Objects.Len())
	if st.Level.LevelState == world.LevelNormalPlay {
		m.begin()
	}
	return nil
}

// Start moves the level from its start screen into play. It reports
// whether the transition happened.
func (m *Machine) Start() bool {
	if m.store.Level.LevelState != world.LevelStartScreen {
		m.logger.Debug("start ignored", "state", m.store.Level.LevelState)
		return false
	}
	if !m.HasCurrent() {
		m.logger.Debug("start ignored", "reason", "no current level")
		return false
	}
	m.store.Level.LevelState = world.LevelNormalPlay
	m.begin()
	m.logger.Info("level started", "level", m.store.Level.ID)
	return true
}

// HasCurrent reports whether a declared level is current.
func (m *Machine) HasCurrent() bool {
	return m.store.Game.CurrentLevel != "" && m.store.Level.ID == m.store.Game.CurrentLevel
}

func (m *Machine) begin() {
	lvl := &m.store.Level
	lvl.StartTimeMs = core.NowMs(m.clock)
	lvl.PauseOffsetMs = 0
	lvl.TimeLeftSec = world.TimeLimit(lvl.LevelSettings)
	m.syncLivingEnemies()
	m.ArmTimer()
}

// ArmTimer starts the time-left timer. It only runs during play.
func (m *Machine) ArmTimer() {
	if m.store.Level.LevelState == world.LevelNormalPlay {
		m.timerArmed = true
	}
}

// DisarmTimer stops the time-left timer. Safe to call when not running.
func (m *Machine) DisarmTimer() {
	m.timerArmed = false
}

// Tick is the periodic timer callback. It recomputes time left and
// evaluates the level when the timer is armed.
func (m *Machine) Tick() *world.LevelResults {
	if !m.timerArmed {
		return nil
	}
	m.UpdateTimeLeft()
	return m.Evaluate()
}

// UpdateTimeLeft recomputes time left from the wall clock during play.
func (m *Machine) UpdateTimeLeft() {
	lvl := &m.store.Level
	if lvl.LevelState != world.LevelNormalPlay {
		return
	}
	lvl.TimeLeftSec = lvl.ComputeTimeLeft(core.NowMs(m.clock))
}

// Evaluate checks the win criteria, then the fail criteria, and moves the
// level to its win or fail screen. A result is recorded and returned when
// a transition happens.
func (m *Machine) Evaluate() *world.LevelResults {
	lvl := &m.store.Level
	if lvl.LevelState != world.LevelNormalPlay {
		return nil
	}

	if c, ok := m.winMet(); ok {
		lvl.LevelState = world.LevelWinScreen
		res := m.result(true)
		res.WinningCriteria = &c
		return m.finish(res)
	}
	if c, ok := m.failMet(); ok {
		lvl.LevelState = world.LevelFailScreen
		res := m.result(false)
		res.FailingCriteria = &c
		return m.finish(res)
	}
	return nil
}

func (m *Machine) winMet() (world.WinCriteria, bool) {
	lvl := &m.store.Level
	for _, c := range lvl.WinCriteria {
		switch c {
		case world.WinNumEnemies0:
			if lvl.LivingEnemies <= 0 {
				return c, true
			}
		case world.WinCollideWithAnyTarget:
			if len(lvl.TouchedTargets) > 0 {
				return c, true
			}
		case world.WinCollideWithAllTargets:
			if len(lvl.TargetIDs) > 0 && m.allTargetsTouched() {
				return c, true
			}
		case world.WinScoreAtOrAboveTarget:
			if lvl.TargetScore != nil && lvl.Score >= *lvl.TargetScore {
				return c, true
			}
		}
	}
	return 0, false
}

func (m *Machine) allTargetsTouched() bool {
	lvl := &m.store.Level
	for _, id := range lvl.TargetIDs {
		if !lvl.TouchedTargets[id] {
			return false
		}
	}
	return true
}

func (m *Machine) failMet() (world.FailCriteria, bool) {
	lvl := &m.store.Level
	for _, c := range lvl.FailCriteria {
		switch c {
		case world.FailTimeLeft0:
			if lvl.TimeLeftSec <= 0 {
				return c, true
			}
		case world.FailNumLives0:
			if lvl.LivesLeft <= 0 {
				return c, true
			}
		}
	}
	return 0, false
}

func (m *Machine) result(won bool) world.LevelResults {
	lvl := &m.store.Level
	elapsedMs := core.NowMs(m.clock) - lvl.StartTimeMs - lvl.PauseOffsetMs
	return world.LevelResults{
		ID:                lvl.ID,
		Score:             lvl.Score,
		Won:               won,
		TimeRemainingSec:  lvl.TimeLeftSec,
		TimeToCompleteSec: math.Max(0, float64(elapsedMs)/1000),
		EnemiesDestroyed:  lvl.EnemiesDestroyed,
		LivesLeft:         lvl.LivesLeft,
	}
}

func (m *Machine) finish(res world.LevelResults) *world.LevelResults {
	m.DisarmTimer()
	m.store.RecordResult(res)
	m.logger.Info("level finished", "level", res.ID, "won", res.Won, "score", res.Score)
	return &res
}

// Retry restarts a failed level from its initial state: objects from the
// snapshot, no projectiles, the player reset and fresh level data in play.
func (m *Machine) Retry() bool {
	st := m.store
	switch st.Level.LevelState {
	case world.LevelFailScreen, world.LevelOutOfTime:
	default:
		m.logger.Debug("retry ignored", "state", st.Level.LevelState)
		return false
	}

	settings, err := st.LevelSettings(st.Level.ID)
	if err != nil {
		settings = st.Level.LevelSettings
	}
	st.Objects.ResetForLevel(st.Level.ID)
	st.Projectiles.Clear()
	st.ResetPlayer()

	st.Level = world.NewLevelData(settings)
	st.Level.LevelState = world.LevelNormalPlay
	m.begin()
	m.logger.Info("level retried", "level", st.Level.ID)
	return true
}

// Continue leaves a won level by advancing the game.
func (m *Machine) Continue(a Advancer) (bool, error) {
	if m.store.Level.LevelState != world.LevelWinScreen {
		m.logger.Debug("continue ignored", "state", m.store.Level.LevelState)
		return false, nil
	}
	return true, a.AdvanceLevel()
}

// Suspend stops the timer while the game is paused.
func (m *Machine) Suspend() {
	m.DisarmTimer()
}

// Resume discounts pausedMs from the level clock and re-arms the timer
// when the level is in play.
func (m *Machine) Resume(pausedMs int64) {
	lvl := &m.store.Level
	if lvl.LevelState != world.LevelNormalPlay {
		return
	}
	if pausedMs > 0 {
		lvl.PauseOffsetMs += pausedMs
	}
	m.ArmTimer()
}

func (m *Machine) syncLivingEnemies() {
	lvl := &m.store.Level
	if lvl.NumLivingEnemies != nil {
		lvl.LivingEnemies = *lvl.NumLivingEnemies
		return
	}
	lvl.LivingEnemies = m.store.Objects.LivingEnemies()
}
