package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/sim"
	"github.com/vovakirdan/arcade3d/internal/world"
)

const frame = 1.0 / 60

func twoLevelDefinition() Definition {
	target := func(id string, x float64) world.GameObjectData {
		return world.NewEnemy("", world.Props{ID: id, Position: mgl64.Vec3{x, 5, 0}, ScoreValue: world.IntPtr(3)})
	}
	return Definition{
		ID:    "test",
		Title: "Test",
		Game: world.GameSettings{
			LevelFlowType: world.FlowLinear,
			LevelFlow:     []string{"level1", "level2"},
		},
		Player: world.NewPlayer(world.Props{ID: "hero", Position: mgl64.Vec3{0, -5, 0}}, 100),
		Levels: []LevelDefinition{
			{
				Settings: world.LevelSettings{ID: "level1", Title: "One", TimeLimitSec: world.IntPtr(20)},
				Objects:  []world.GameObjectData{target("e1", 0)},
			},
			{
				Settings: world.LevelSettings{ID: "level2", Title: "Two", TimeLimitSec: world.IntPtr(2)},
				Objects:  []world.GameObjectData{target("e2", 10)},
			},
		},
	}
}

type recorder struct{ kinds []EventKind }

func (r *recorder) observe(ev Event) { r.kinds = append(r.kinds, ev.Kind) }

func (r *recorder) has(k EventKind) bool {
	for _, got := range r.kinds {
		if got == k {
			return true
		}
	}
	return false
}

func newEngine(t *testing.T) (*Engine, *core.ManualClock, *recorder) {
	t.Helper()
	clock := core.NewManualClock(time.UnixMilli(1_000_000))
	e, err := New(twoLevelDefinition(), Options{Clock: clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := &recorder{}
	e.Subscribe(rec.observe)
	return e, clock, rec
}

func TestNewActivatesFirstLevel(t *testing.T) {
	e, _, _ := newEngine(t)
	st := e.Store()
	if st.Game.CurrentLevel != "level1" || st.Game.GoToLevel != "" {
		t.Errorf("current=%q goTo=%q", st.Game.CurrentLevel, st.Game.GoToLevel)
	}
	if st.Objects.Len() != 1 || st.Level.LivingEnemies != 1 {
		t.Errorf("objects=%d living=%d", st.Objects.Len(), st.Level.LivingEnemies)
	}
}

func TestNewRejectsUnknownFlowLevel(t *testing.T) {
	def := twoLevelDefinition()
	def.Game.LevelFlow = []string{"level1", "ghost"}
	if _, err := New(def, Options{}); !errors.Is(err, world.ErrLevelNotFound) {
		t.Errorf("New() = %v, want ErrLevelNotFound", err)
	}
}

func TestStepGatedByState(t *testing.T) {
	e, _, _ := newEngine(t)
	if err := e.Step(core.Controls{Right: true}, frame); err != nil {
		t.Fatal(err)
	}
	if x := e.Store().Player.Position.X(); x != 0 {
		t.Errorf("player moved on start screen: x=%v", x)
	}
	if err := e.Step(core.Controls{}, 0); err != nil {
		t.Errorf("gated step validated delta: %v", err)
	}

	_ = e.Confirm()
	_ = e.Confirm()
	if err := e.Step(core.Controls{}, 0); !errors.Is(err, sim.ErrMissingDelta) {
		t.Errorf("Step(0) in play = %v", err)
	}
}

func TestNoFlowNeverPlays(t *testing.T) {
	def := twoLevelDefinition()
	def.Game.LevelFlowType = world.FlowNone
	e, err := New(def, Options{Clock: core.NewManualClock(time.UnixMilli(1_000_000))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := &recorder{}
	e.Subscribe(rec.observe)

	if got := e.Store().Game.CurrentLevel; got != "" {
		t.Fatalf("CurrentLevel = %q, want none", got)
	}
	_ = e.Confirm()
	_ = e.Confirm()
	if e.GameState() != world.GameNormalPlay {
		t.Fatalf("GameState = %v", e.GameState())
	}
	if e.LevelState() != world.LevelStartScreen || e.TimerArmed() {
		t.Errorf("level state=%v armed=%v, want start screen and disarmed", e.LevelState(), e.TimerArmed())
	}
	if e.StartLevel() {
		t.Error("StartLevel() without a current level should be ignored")
	}

	if err := e.Step(core.Controls{Shoot: true, Right: true}, frame); err != nil {
		t.Fatal(err)
	}
	if n := e.Store().Projectiles.Len(); n != 0 {
		t.Errorf("projectiles = %d, want 0", n)
	}
	if x := e.Store().Player.Position.X(); x != 0 {
		t.Errorf("player moved without a current level: x=%v", x)
	}
	if rec.has(EventLevelStarted) || rec.has(EventProjectileSpawned) {
		t.Errorf("unexpected events %v", rec.kinds)
	}
}

// play fires straight up until the current level is won.
func play(t *testing.T, e *Engine, clock *core.ManualClock) {
	t.Helper()
	for i := 0; i < 300 && e.LevelState() == world.LevelNormalPlay; i++ {
		clock.Advance(17 * time.Millisecond)
		if err := e.Step(core.Controls{Shoot: true}, frame); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFullGame(t *testing.T) {
	e, clock, rec := newEngine(t)
	_ = e.Confirm() // game start
	_ = e.Confirm() // level start
	if e.LevelState() != world.LevelNormalPlay || !e.TimerArmed() {
		t.Fatalf("level not started: %v", e.LevelState())
	}

	play(t, e, clock)
	if e.LevelState() != world.LevelWinScreen {
		t.Fatalf("level1 state = %v, want win", e.LevelState())
	}
	if !rec.has(EventProjectileSpawned) || !rec.has(EventObjectDestroyed) || !rec.has(EventLevelWon) {
		t.Errorf("events = %v", rec.kinds)
	}

	if err := e.Confirm(); err != nil {
		t.Fatal(err)
	}
	st := e.Store()
	if st.Game.CurrentLevel != "level2" || e.LevelState() != world.LevelStartScreen {
		t.Fatalf("current=%q state=%v", st.Game.CurrentLevel, e.LevelState())
	}
	if st.Projectiles.Len() != 0 {
		t.Errorf("projectiles carried over: %d", st.Projectiles.Len())
	}

	// The level2 enemy is off to the side, so the timer runs out.
	_ = e.Confirm()
	clock.Advance(2 * time.Second)
	e.TimerTick()
	if e.LevelState() != world.LevelFailScreen || !rec.has(EventLevelFailed) {
		t.Fatalf("level2 state = %v", e.LevelState())
	}

	if !e.Retry() || e.LevelState() != world.LevelNormalPlay {
		t.Fatal("retry failed")
	}
	if err := e.Damage("e2", 1, "test"); err != nil {
		t.Fatal(err)
	}
	if e.LevelState() != world.LevelWinScreen {
		t.Fatalf("state after kill = %v", e.LevelState())
	}

	if err := e.Confirm(); err != nil {
		t.Fatal(err)
	}
	if e.GameState() != world.GameEndScreen || !rec.has(EventGameEnded) {
		t.Fatalf("game state = %v", e.GameState())
	}
	rows := e.Summary()
	if len(rows) != 2 || rows[0].Title != "One" || !rows[1].Result.Won {
		t.Errorf("summary = %+v", rows)
	}
	if e.TotalScore() != 6 {
		t.Errorf("TotalScore() = %d, want 6", e.TotalScore())
	}

	if err := e.RestartGame(); err != nil {
		t.Fatal(err)
	}
	if e.GameState() != world.GameStartScreen || st.Game.CurrentLevel != "level1" {
		t.Errorf("after restart: state=%v current=%q", e.GameState(), st.Game.CurrentLevel)
	}
	if obj, _ := st.Objects.Get("e1"); obj.Destroyed {
		t.Error("restart did not restore level1 objects")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	e, clock, rec := newEngine(t)
	_ = e.Confirm()
	_ = e.Confirm()

	if !e.TogglePause() || e.GameState() != world.GamePaused {
		t.Fatal("pause failed")
	}
	if err := e.Step(core.Controls{Left: true}, frame); err != nil {
		t.Fatal(err)
	}
	if e.Store().Player.Position.X() != 0 {
		t.Error("player moved while paused")
	}
	clock.Advance(60 * time.Second)
	e.TimerTick()
	if e.LevelState() != world.LevelNormalPlay {
		t.Errorf("paused level changed state: %v", e.LevelState())
	}

	e.TogglePause()
	e.TimerTick()
	if e.LevelState() != world.LevelNormalPlay {
		t.Errorf("paused time counted against the level: %v", e.LevelState())
	}
	if !rec.has(EventGamePaused) || !rec.has(EventGameResumed) {
		t.Errorf("events = %v", rec.kinds)
	}
}
