// Package engine is the facade a host drives: it owns one game's store,
// the simulator and both state machines, mounts each level's declared
// objects when the level becomes current and notifies observers of state
// changes.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/game"
	"github.com/vovakirdan/arcade3d/internal/level"
	"github.com/vovakirdan/arcade3d/internal/sim"
	"github.com/vovakirdan/arcade3d/internal/world"
)

const (
	// DefaultTimeLeftInterval is the cadence of the time-left timer.
	DefaultTimeLeftInterval = 500 * time.Millisecond
	// DefaultShootDelayMs is the player's shoot cooldown when the
	// definition carries no player.
	DefaultShootDelayMs = 100
)

// Definition is a whole game: settings, player and levels with the objects
// each level declares.
type Definition struct {
	ID     string
	Title  string
	Game   world.GameSettings
	Player world.PlayerObjectData
	Levels []LevelDefinition
}

// LevelDefinition is one level and its declared objects.
type LevelDefinition struct {
	Settings world.LevelSettings
	Objects  []world.GameObjectData
}

// Options configure an Engine. Zero values pick defaults.
type Options struct {
	Params             sim.Params
	ProjectileCapacity int
	TimeLeftInterval   time.Duration
	Clock              core.Clock
	Logger             *log.Logger
}

// Engine runs one game.
type Engine struct {
	def      Definition
	store    *world.Store
	sim      *sim.Simulator
	level    *level.Machine
	game     *game.Machine
	logger   *log.Logger
	interval time.Duration

	declared  map[string][]world.GameObjectData
	observers []Observer
}

// New builds an engine for def. Every level named by the flow must be
// defined.
func New(def Definition, opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Params == (sim.Params{}) {
		opts.Params = sim.DefaultParams()
	}
	if opts.TimeLeftInterval <= 0 {
		opts.TimeLeftInterval = DefaultTimeLeftInterval
	}

	if def.Player.ID == "" {
		def.Player = world.NewPlayer(world.Props{Position: mgl64.Vec3{0, -5, 0}}, DefaultShootDelayMs)
	}
	st := world.NewStore(def.Player, opts.ProjectileCapacity)
	e := &Engine{
		def:      def,
		store:    st,
		sim:      sim.New(opts.Params, opts.Clock, opts.Logger),
		logger:   opts.Logger,
		interval: opts.TimeLeftInterval,
		declared: make(map[string][]world.GameObjectData),
	}
	e.level = level.New(st, opts.Clock, opts.Logger)
	e.game = game.New(st, e.level, opts.Clock, opts.Logger)

	levels := def.Levels
	if len(levels) == 0 {
		levels = []LevelDefinition{{Settings: world.LevelSettings{ID: world.DefaultLevelID}}}
	}
	for _, ld := range levels {
		ls := st.AddLevel(ld.Settings)
		objs := make([]world.GameObjectData, 0, len(ld.Objects))
		for _, obj := range ld.Objects {
			if obj.ID == "" {
				return nil, fmt.Errorf("engine: level %q: %w", ls.ID, world.ErrMissingID)
			}
			obj.ParentLevelID = ls.ID
			objs = append(objs, obj.Clone())
		}
		e.declared[ls.ID] = objs
	}

	e.game.Init(def.Game)
	for _, id := range st.Game.LevelFlow {
		if !st.HasLevel(id) {
			return nil, fmt.Errorf("engine: level flow: %w: %q", world.ErrLevelNotFound, id)
		}
	}
	if err := e.sync(); err != nil {
		return nil, err
	}
	return e, nil
}

// Definition returns the definition the engine was built from.
func (e *Engine) Definition() Definition {
	return e.def
}

// Store exposes the state for rendering. Callers must not mutate it.
func (e *Engine) Store() *world.Store {
	return e.store
}

// Params returns the simulation tuning.
func (e *Engine) Params() sim.Params {
	return e.sim.Params()
}

// TimeLeftInterval is how often the host should call TimerTick.
func (e *Engine) TimeLeftInterval() time.Duration {
	return e.interval
}

// Subscribe registers an observer.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) emit(ev Event) {
	for _, o := range e.observers {
		o(ev)
	}
}

// GameState returns the game state.
func (e *Engine) GameState() world.GameState {
	return e.store.Game.GameState
}

// LevelState returns the current level's state.
func (e *Engine) LevelState() world.LevelState {
	return e.level.State()
}

// TimerArmed reports whether the time-left timer is running.
func (e *Engine) TimerArmed() bool {
	return e.level.TimerArmed()
}

// sync activates the level requested through GoToLevel, if any.
func (e *Engine) sync() error {
	id := e.store.Game.GoToLevel
	if id == "" {
		return nil
	}
	if err := e.level.Activate(id, e.declared[id]); err != nil {
		return fmt.Errorf("engine: go to level: %w", err)
	}
	e.emit(Event{Kind: EventLevelActivated, LevelID: id})
	return nil
}

// Step advances one frame. It only simulates while both the game and
// the current level are in play, and a level is current.
func (e *Engine) Step(c core.Controls, delta float64) error {
	if err := e.sync(); err != nil {
		return err
	}
	if e.store.Game.GameState != world.GameNormalPlay || e.level.State() != world.LevelNormalPlay {
		return nil
	}
	if !e.level.HasCurrent() {
		e.logger.Debug("step ignored", "reason", "no current level")
		return nil
	}

	res, err := e.sim.Step(e.store, c, delta)
	if err != nil {
		return err
	}
	if res.Spawned != nil {
		e.emit(Event{Kind: EventProjectileSpawned, LevelID: e.store.Level.ID, Projectile: res.Spawned})
	}
	for i := range res.Destroyed {
		e.emit(Event{Kind: EventObjectDestroyed, LevelID: e.store.Level.ID, Object: &res.Destroyed[i]})
	}
	e.evaluate()
	return nil
}

// TimerTick is the periodic time-left callback.
func (e *Engine) TimerTick() {
	e.report(e.level.Tick())
}

func (e *Engine) evaluate() {
	e.report(e.level.Evaluate())
}

func (e *Engine) report(res *world.LevelResults) {
	if res == nil {
		return
	}
	kind := EventLevelFailed
	if res.Won {
		kind = EventLevelWon
	}
	e.emit(Event{Kind: kind, LevelID: res.ID, Result: res})
}

// Damage applies damage to an object from outside the simulation step.
func (e *Engine) Damage(targetID string, amount int, sourceID string) error {
	if sourceID == "" {
		e.logger.Warn("damage without source", "target", targetID)
	}
	out, err := e.store.Damage(targetID, amount, sourceID)
	if err != nil {
		return err
	}
	if out.Destroyed {
		obj, _ := e.store.Objects.Get(targetID)
		e.emit(Event{Kind: EventObjectDestroyed, LevelID: e.store.Level.ID, Object: &obj})
	}
	e.evaluate()
	return nil
}

// LoseLife takes a life from the current level.
func (e *Engine) LoseLife() {
	e.store.LoseLife()
	e.evaluate()
}

// StartGame leaves the game start screen.
func (e *Engine) StartGame() bool {
	return e.game.Start()
}

// StartLevel leaves the level start screen.
func (e *Engine) StartLevel() bool {
	if e.store.Game.GameState != world.GameNormalPlay {
		return false
	}
	if !e.level.Start() {
		return false
	}
	e.emit(Event{Kind: EventLevelStarted, LevelID: e.store.Level.ID})
	e.evaluate()
	return true
}

// TogglePause pauses or resumes the game.
func (e *Engine) TogglePause() bool {
	switch e.store.Game.GameState {
	case world.GameNormalPlay:
		if e.game.Pause() {
			e.emit(Event{Kind: EventGamePaused, LevelID: e.store.Level.ID})
			return true
		}
	case world.GamePaused:
		if e.game.Resume() {
			e.emit(Event{Kind: EventGameResumed, LevelID: e.store.Level.ID})
			return true
		}
	}
	return false
}

// Retry restarts a failed level.
func (e *Engine) Retry() bool {
	if !e.level.Retry() {
		return false
	}
	e.emit(Event{Kind: EventLevelRetried, LevelID: e.store.Level.ID})
	return true
}

// Continue leaves a won level, activating the next one or ending the game.
func (e *Engine) Continue() error {
	ok, err := e.level.Continue(e.game)
	if err != nil || !ok {
		return err
	}
	if e.store.Game.GameState == world.GameEndScreen {
		e.emit(Event{Kind: EventGameEnded})
		return nil
	}
	return e.sync()
}

// RestartGame returns a finished game to its start screen.
func (e *Engine) RestartGame() error {
	if !e.game.Restart() {
		return nil
	}
	return e.sync()
}

// Confirm performs the action of the screen currently shown: start the
// game, start the level or continue past a win.
func (e *Engine) Confirm() error {
	switch {
	case e.store.Game.GameState == world.GameStartScreen:
		e.StartGame()
	case e.store.Game.GameState != world.GameNormalPlay:
	case e.level.State() == world.LevelStartScreen:
		e.StartLevel()
	case e.level.State() == world.LevelWinScreen:
		return e.Continue()
	}
	return nil
}

// Summary is the end-screen summary.
func (e *Engine) Summary() []game.SummaryRow {
	return e.game.Summary()
}

// TotalScore sums every recorded level score.
func (e *Engine) TotalScore() int {
	return e.game.TotalScore()
}
