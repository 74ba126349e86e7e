package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

func newStore(t *testing.T) *world.Store {
	t.Helper()
	st := world.NewStore(world.NewPlayer(world.Props{Position: mgl64.Vec3{0, -5, 0}}, 100), 0)
	ls := st.AddLevel(world.LevelSettings{ID: "level1"})
	st.Level = world.NewLevelData(ls)
	return st
}

func newSim(clock core.Clock) *Simulator {
	return New(DefaultParams(), clock, nil)
}

func TestStepRejectsBadDelta(t *testing.T) {
	s := newSim(core.NewManualClock(time.UnixMilli(0)))
	st := newStore(t)
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := s.Step(st, core.Controls{}, d); !errors.Is(err, ErrMissingDelta) {
			t.Errorf("Step(delta=%v) = %v, want ErrMissingDelta", d, err)
		}
	}
}

func TestMoveHorizontalOnly(t *testing.T) {
	tests := []struct {
		name  string
		c     core.Controls
		wantX float64
	}{
		{"left", core.Controls{Left: true}, -3.5},
		{"right", core.Controls{Right: true}, 3.5},
		{"left wins over right", core.Controls{Left: true, Right: true}, -3.5},
		{"up ignored", core.Controls{Up: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t)
			if _, err := newSim(core.NewManualClock(time.UnixMilli(0))).Step(st, tt.c, 0.5); err != nil {
				t.Fatal(err)
			}
			if st.Player.Position.X() != tt.wantX || st.Player.Position.Y() != -5 {
				t.Errorf("position = %v, want x=%v y=-5", st.Player.Position, tt.wantX)
			}
		})
	}
}

func TestShootCooldown(t *testing.T) {
	clock := core.NewManualClock(time.UnixMilli(10_000))
	s := newSim(clock)
	st := newStore(t)

	spawned, _ := s.Shoot(st)
	if spawned == nil {
		t.Fatal("first shot did not spawn")
	}
	if spawned.SourceID != st.Player.ID || spawned.Position != st.Player.Position {
		t.Errorf("projectile = %+v", spawned)
	}
	if st.Player.LastShootTimeMs != 10_000 {
		t.Errorf("LastShootTimeMs = %d", st.Player.LastShootTimeMs)
	}

	clock.Advance(50 * time.Millisecond)
	if p, _ := s.Shoot(st); p != nil {
		t.Error("shot during cooldown spawned")
	}
	clock.Advance(50 * time.Millisecond)
	if p, _ := s.Shoot(st); p == nil {
		t.Error("shot after cooldown did not spawn")
	}
	if st.Projectiles.Len() != 2 {
		t.Errorf("Projectiles.Len() = %d, want 2", st.Projectiles.Len())
	}
}

func TestShootUsesTravelDirection(t *testing.T) {
	st := newStore(t)
	st.Game.TravelDirection = "down"
	p, _ := newSim(core.NewManualClock(time.UnixMilli(1000))).Shoot(st)
	if p.Direction != (mgl64.Vec3{0, -1, 0}) {
		t.Errorf("Direction = %v", p.Direction)
	}
}

func TestProjectileCulledOutOfBounds(t *testing.T) {
	st := newStore(t)
	p := world.NewProjectile("player", mgl64.Vec3{0, 19.5, 0}, world.DefaultProjectileTemplate())
	st.Projectiles.Spawn(p)

	res, err := newSim(core.NewManualClock(time.UnixMilli(0))).Step(st, core.Controls{}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Culled != 1 || st.Projectiles.Len() != 0 {
		t.Errorf("Culled = %d, Len = %d", res.Culled, st.Projectiles.Len())
	}
}

func TestProjectileOutOfBoundsNeverHits(t *testing.T) {
	st := newStore(t)
	// An enemy straddling the upper bound: a projectile pushed past the
	// bound must be culled, not resolved against it.
	_ = st.Objects.Register(world.NewEnemy("level1", world.Props{
		ID:       "edge",
		Position: mgl64.Vec3{0, 20.5, 0},
		Size:     mgl64.Vec3{4, 4, 4},
	}))
	st.Projectiles.Spawn(world.NewProjectile("player", mgl64.Vec3{0, 19.9, 0}, world.DefaultProjectileTemplate()))

	res, err := newSim(core.NewManualClock(time.UnixMilli(0))).Step(st, core.Controls{}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Destroyed) != 0 {
		t.Errorf("culled projectile destroyed %v", res.Destroyed)
	}
	if obj, _ := st.Objects.Get("edge"); obj.Destroyed {
		t.Error("edge enemy destroyed by culled projectile")
	}
}

func TestProjectileHitsFirstTargetOnce(t *testing.T) {
	st := newStore(t)
	for _, id := range []string{"a", "b"} {
		_ = st.Objects.Register(world.NewEnemy("level1", world.Props{
			ID:         id,
			Position:   mgl64.Vec3{0, 1, 0},
			ScoreValue: world.IntPtr(10),
		}))
	}
	st.Level.LivingEnemies = st.Objects.LivingEnemies()
	st.Projectiles.Spawn(world.NewProjectile("player", mgl64.Vec3{0, 0, 0}, world.DefaultProjectileTemplate()))

	res, err := newSim(core.NewManualClock(time.UnixMilli(0))).Step(st, core.Controls{}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Destroyed) != 1 || res.Destroyed[0].ID != "a" {
		t.Fatalf("Destroyed = %v, want [a]", res.Destroyed)
	}
	if st.Projectiles.Len() != 0 {
		t.Errorf("projectile kept after hit")
	}
	if st.Level.Score != 10 || st.Level.LivingEnemies != 1 {
		t.Errorf("score=%d living=%d, want 10 and 1", st.Level.Score, st.Level.LivingEnemies)
	}
	if b, _ := st.Objects.Get("b"); b.Destroyed {
		t.Error("second overlapping target destroyed")
	}
}

func TestProjectileMissKeepsFlying(t *testing.T) {
	st := newStore(t)
	st.Projectiles.Spawn(world.NewProjectile("player", mgl64.Vec3{0, 0, 0}, world.DefaultProjectileTemplate()))

	if _, err := newSim(core.NewManualClock(time.UnixMilli(0))).Step(st, core.Controls{}, 0.5); err != nil {
		t.Fatal(err)
	}
	all := st.Projectiles.All()
	if len(all) != 1 || all[0].Position.Y() != 5 {
		t.Errorf("projectiles = %v, want one at y=5", all)
	}
}

func TestTargetContact(t *testing.T) {
	st := newStore(t)
	ls := st.AddLevel(world.LevelSettings{
		ID:          "level1",
		WinCriteria: []world.WinCriteria{world.WinCollideWithAnyTarget},
		TargetIDs:   []string{"goal"},
	})
	st.Level = world.NewLevelData(ls)
	_ = st.Objects.Register(world.NewBox("level1", world.Props{ID: "goal", Position: mgl64.Vec3{3, -5, 0}}))

	s := newSim(core.NewManualClock(time.UnixMilli(0)))
	res, err := s.Step(st, core.Controls{Right: true}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Touched) != 0 {
		t.Fatalf("touched too early: %v", res.Touched)
	}
	res, err = s.Step(st, core.Controls{Right: true}, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Touched) != 1 || !st.Level.TouchedTargets["goal"] {
		t.Errorf("Touched = %v, map = %v", res.Touched, st.Level.TouchedTargets)
	}
	if goal, _ := st.Objects.Get("goal"); goal.Destroyed {
		t.Error("contact damaged the target")
	}
}
