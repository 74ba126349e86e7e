package game

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/level"
	"github.com/vovakirdan/arcade3d/internal/world"
)

func setup(t *testing.T, flow ...string) (*Machine, *level.Machine, *world.Store, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(time.UnixMilli(5_000_000))
	st := world.NewStore(world.NewPlayer(world.Props{}, 100), 0)
	for _, id := range flow {
		st.AddLevel(world.LevelSettings{ID: id, Title: "Level " + id, TimeLimitSec: world.IntPtr(10)})
	}
	lvl := level.New(st, clock, nil)
	g := New(st, lvl, clock, nil)
	g.Init(world.GameSettings{LevelFlowType: world.FlowLinear, LevelFlow: flow})
	return g, lvl, st, clock
}

func TestInit(t *testing.T) {
	g, _, st, _ := setup(t, "level1", "level2")
	if st.Game.GoToLevel != "level1" || g.State() != world.GameStartScreen {
		t.Errorf("goTo=%q state=%v", st.Game.GoToLevel, g.State())
	}
	if st.Game.TravelDirection != "up" || st.Game.OverlayTextColor != "black" {
		t.Errorf("defaults not merged: %+v", st.Game)
	}

	g.Init(world.GameSettings{LevelFlow: []string{"x"}})
	if st.Game.GoToLevel != "" {
		t.Errorf("non-linear flow requested a level: %q", st.Game.GoToLevel)
	}
	g.Init(world.GameSettings{})
	if st.Game.GoToLevel != world.DefaultLevelID {
		t.Errorf("empty settings: goTo = %q", st.Game.GoToLevel)
	}
}

func TestLevelFlowAdvancement(t *testing.T) {
	g, lvl, st, _ := setup(t, "level1", "level2")
	g.Start()

	if err := lvl.Activate("level1", nil); err != nil {
		t.Fatal(err)
	}
	if err := g.AdvanceLevel(); err != nil {
		t.Fatal(err)
	}
	if st.Game.GoToLevel != "level2" {
		t.Fatalf("GoToLevel = %q, want level2", st.Game.GoToLevel)
	}

	if err := lvl.Activate("level2", nil); err != nil {
		t.Fatal(err)
	}
	if err := g.AdvanceLevel(); err != nil {
		t.Fatal(err)
	}
	if g.State() != world.GameEndScreen {
		t.Errorf("state = %v, want end screen", g.State())
	}
}

func TestAdvanceLevelErrors(t *testing.T) {
	g, _, st, _ := setup(t, "level1")

	if err := g.AdvanceLevel(); !errors.Is(err, ErrInvalidFlowState) {
		t.Errorf("no current level: %v", err)
	}
	st.Game.CurrentLevel = "elsewhere"
	if err := g.AdvanceLevel(); !errors.Is(err, ErrInvalidFlowState) {
		t.Errorf("level outside flow: %v", err)
	}

	st.Game.LevelFlowType = world.FlowNone
	if err := g.AdvanceLevel(); err != nil {
		t.Errorf("non-linear flow should be a no-op: %v", err)
	}
	if st.Game.GoToLevel != "level1" || g.State() == world.GameEndScreen {
		t.Error("non-linear advance changed state")
	}
}

func TestPauseForwardsDuration(t *testing.T) {
	g, lvl, st, clock := setup(t, "level1")
	g.Start()
	if err := lvl.Activate("level1", nil); err != nil {
		t.Fatal(err)
	}
	lvl.Start()

	if !g.Pause() || g.Pause() {
		t.Fatal("Pause() should succeed once")
	}
	if lvl.TimerArmed() {
		t.Error("level timer armed during pause")
	}
	clock.Advance(4 * time.Second)
	if !g.Resume() || g.Resume() {
		t.Fatal("Resume() should succeed once")
	}
	if st.Level.PauseOffsetMs < 4000 {
		t.Errorf("PauseOffsetMs = %d, want >= 4000", st.Level.PauseOffsetMs)
	}
	if !lvl.TimerArmed() {
		t.Error("level timer not re-armed")
	}

	clock.Advance(1 * time.Second)
	lvl.UpdateTimeLeft()
	if st.Level.TimeLeftSec != 9 {
		t.Errorf("TimeLeftSec = %v, want 9", st.Level.TimeLeftSec)
	}
}

func TestTogglePause(t *testing.T) {
	g, _, _, _ := setup(t, "level1")
	if g.TogglePause() {
		t.Error("toggle on start screen should be ignored")
	}
	g.Start()
	g.TogglePause()
	if g.State() != world.GamePaused {
		t.Errorf("state = %v", g.State())
	}
	g.TogglePause()
	if g.State() != world.GameNormalPlay {
		t.Errorf("state = %v", g.State())
	}
}

func TestSummaryAndRestart(t *testing.T) {
	g, _, st, _ := setup(t, "level1", "level2")
	st.RecordResult(world.LevelResults{ID: "level1", Won: true, Score: 4})
	st.RecordResult(world.LevelResults{ID: "level2", Won: true, Score: 6})

	rows := g.Summary()
	if len(rows) != 2 || rows[0].Title != "Level level1" || rows[1].Result.Score != 6 {
		t.Fatalf("Summary() = %+v", rows)
	}
	if g.TotalScore() != 10 {
		t.Errorf("TotalScore() = %d", g.TotalScore())
	}

	if g.Restart() {
		t.Error("Restart() outside end screen should be ignored")
	}
	st.Game.GameState = world.GameEndScreen
	st.Game.CurrentLevel = "level2"
	if !g.Restart() {
		t.Fatal("Restart() from end screen = false")
	}
	if g.State() != world.GameStartScreen || st.Game.GoToLevel != "level1" || len(st.Results()) != 0 {
		t.Errorf("after restart: %+v results=%d", st.Game, len(st.Results()))
	}
}
