// Package sim advances the world by one frame: player movement and
// shooting, projectile flight, bounds culling and collision resolution.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/collision"
	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// ErrMissingDelta is returned when a frame has no usable time delta.
var ErrMissingDelta = errors.New("sim: delta not found")

// Params tunes the simulation.
type Params struct {
	BoundsMin       mgl64.Vec3
	BoundsMax       mgl64.Vec3
	PlayerScale     float64
	ProjectileScale float64
	ForwardOffset   mgl64.Vec3
	Projectile      world.ProjectileTemplate
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		BoundsMin:       mgl64.Vec3{-40, -20, -40},
		BoundsMax:       mgl64.Vec3{40, 20, 10},
		PlayerScale:     7,
		ProjectileScale: 10,
		Projectile:      world.DefaultProjectileTemplate(),
	}
}

// Result describes what happened during one step.
type Result struct {
	Spawned   *world.ProjectileData
	Evicted   *world.ProjectileData
	Destroyed []world.GameObjectData
	Culled    int
	Touched   []string // target ids the player touched for the first time
}

// Simulator runs steps against a store.
type Simulator struct {
	params Params
	clock  core.Clock
	logger *log.Logger
}

// New creates a simulator. A nil clock reads the system clock and a nil
// logger discards output.
func New(params Params, clock core.Clock, logger *log.Logger) *Simulator {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{params: params, clock: clock, logger: logger}
}

// Params returns the simulator tuning.
func (s *Simulator) Params() Params {
	return s.params
}

// Step applies one frame of delta seconds. Player movement and shooting
// come first, then every projectile is advanced and resolved.
func (s *Simulator) Step(st *world.Store, c core.Controls, delta float64) (Result, error) {
	var res Result
	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return res, fmt.Errorf("%w: %v", ErrMissingDelta, delta)
	}

	switch {
	case c.Left:
		s.Move(st, DirLeft, delta)
	case c.Right:
		s.Move(st, DirRight, delta)
	}
	if c.Shoot {
		res.Spawned, res.Evicted = s.Shoot(st)
	}

	touched, err := s.trackTargets(st)
	if err != nil {
		return res, err
	}
	res.Touched = touched

	destroyed, culled, err := s.advanceProjectiles(st, delta)
	if err != nil {
		return res, err
	}
	res.Destroyed = destroyed
	res.Culled = culled
	return res, nil
}

// Direction is a horizontal move direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// Move translates the player along the horizontal axis only.
func (s *Simulator) Move(st *world.Store, dir Direction, delta float64) {
	step := s.params.PlayerScale * delta
	if dir == DirLeft {
		step = -step
	}
	st.Player.Position[0] += step
}

// Shoot spawns a projectile at the player unless the cooldown is running.
// It returns the spawned projectile and the one evicted to make room.
func (s *Simulator) Shoot(st *world.Store) (spawned, evicted *world.ProjectileData) {
	now := core.NowMs(s.clock)
	if now < st.Player.LastShootTimeMs+st.Player.ShootDelayMs {
		s.logger.Debug("shoot on cooldown", "ready_in_ms", st.Player.LastShootTimeMs+st.Player.ShootDelayMs-now)
		return nil, nil
	}

	tmpl := s.params.Projectile
	if st.Game.TravelDirection != "" {
		tmpl.Direction = world.DirectionVector(st.Game.TravelDirection)
	}
	p := world.NewProjectile(st.Player.ID, st.Player.Position.Add(s.params.ForwardOffset), tmpl)

	if old, ok := st.Projectiles.Spawn(p); ok {
		s.logger.Debug("projectile evicted", "id", old.ID)
		evicted = &old
	}
	st.Player.LastShootTimeMs = now
	return &p, evicted
}

func (s *Simulator) advanceProjectiles(st *world.Store, delta float64) ([]world.GameObjectData, int, error) {
	var destroyed []world.GameObjectData
	culled := 0
	scaled := s.params.ProjectileScale * delta

	err := st.Projectiles.Advance(func(p *world.ProjectileData) (bool, error) {
		dir := p.Direction
		if dir == (mgl64.Vec3{}) {
			dir = mgl64.Vec3{0, 1, 0}
		}
		p.Position = p.Position.Add(dir.Mul(p.Speed * scaled))

		if !s.inBounds(p.Position) {
			culled++
			return false, nil
		}

		targetID, hit, err := st.Objects.FirstHit(p.Body())
		if err != nil {
			return false, fmt.Errorf("projectile %q: %w", p.ID, err)
		}
		if !hit {
			return true, nil
		}

		out, err := st.Damage(targetID, p.Damage, p.ID)
		if err != nil {
			return false, err
		}
		if out.Destroyed {
			obj, _ := st.Objects.Get(targetID)
			destroyed = append(destroyed, obj)
		}
		return false, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return destroyed, culled, nil
}

func (s *Simulator) inBounds(pos mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if pos[i] < s.params.BoundsMin[i] || pos[i] > s.params.BoundsMax[i] {
			return false
		}
	}
	return true
}

// trackTargets records first contacts between the player and the level's
// target objects. Contact never damages either side.
func (s *Simulator) trackTargets(st *world.Store) ([]string, error) {
	if len(st.Level.TargetIDs) == 0 || st.Player.Collider == nil {
		return nil, nil
	}
	if st.Level.TouchedTargets == nil {
		st.Level.TouchedTargets = make(map[string]bool)
	}

	var touched []string
	playerBody := st.Player.Body()
	for _, id := range st.Level.TargetIDs {
		if st.Level.TouchedTargets[id] {
			continue
		}
		obj, ok := st.Objects.Get(id)
		if !ok || obj.Destroyed || obj.Collider == nil {
			continue
		}
		hit, err := collision.Check(playerBody, obj.Body())
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", id, err)
		}
		if hit {
			st.Level.TouchedTargets[id] = true
			touched = append(touched, id)
		}
	}
	return touched, nil
}
