package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/collision"
	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/sim"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// SimParams converts the tuning into simulation parameters.
func (c EngineConfig) SimParams() (sim.Params, error) {
	p := sim.DefaultParams()
	p.BoundsMin = mgl64.Vec3(c.Bounds.Min)
	p.BoundsMax = mgl64.Vec3(c.Bounds.Max)
	for i := 0; i < 3; i++ {
		if p.BoundsMin[i] > p.BoundsMax[i] {
			return sim.Params{}, fmt.Errorf("config: bounds min %v exceeds max %v", p.BoundsMin, p.BoundsMax)
		}
	}
	if c.Player.Scale > 0 {
		p.PlayerScale = c.Player.Scale
	}
	if c.Projectiles.Scale > 0 {
		p.ProjectileScale = c.Projectiles.Scale
	}
	p.ForwardOffset = mgl64.Vec3(c.Projectiles.ForwardOffset)

	tmpl := world.DefaultProjectileTemplate()
	if c.Projectiles.Size != (Vec{}) {
		tmpl.Size = mgl64.Vec3(c.Projectiles.Size)
	}
	if c.Projectiles.Speed > 0 {
		tmpl.Speed = c.Projectiles.Speed
	}
	if c.Projectiles.Damage > 0 {
		tmpl.Damage = c.Projectiles.Damage
	}
	if c.Projectiles.Collider != nil {
		col, err := c.Projectiles.Collider.Build()
		if err != nil {
			return sim.Params{}, fmt.Errorf("config: projectile collider: %w", err)
		}
		tmpl.Collider = col
	}
	p.Projectile = tmpl
	return p, nil
}

// NewPlayer builds the player from the tuning, with overrides applied on top.
func (c EngineConfig) NewPlayer(override *PlayerConfig) (world.PlayerObjectData, error) {
	pc := c.Player
	if override != nil {
		if override.Position != nil {
			pc.Position = override.Position
		}
		if override.Size != nil {
			pc.Size = override.Size
		}
		if override.ShootDelayMs > 0 {
			pc.ShootDelayMs = override.ShootDelayMs
		}
		if override.Collider != nil {
			pc.Collider = override.Collider
		}
		if override.Color != "" {
			pc.Color = override.Color
		}
	}

	props := world.Props{
		ID:       "player",
		Position: vecOr(pc.Position, mgl64.Vec3{0, -5, 0}),
		Size:     vecOr(pc.Size, mgl64.Vec3{1, 1, 1}),
		Color:    pc.Color,
	}
	if pc.Collider != nil {
		col, err := pc.Collider.Build()
		if err != nil {
			return world.PlayerObjectData{}, fmt.Errorf("config: player collider: %w", err)
		}
		props.Collider = col
	}
	return world.NewPlayer(props, pc.ShootDelayMs), nil
}

// Options converts the tuning into engine options.
func (c EngineConfig) Options(clock core.Clock, logger *log.Logger) (engine.Options, error) {
	params, err := c.SimParams()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Params:             params,
		ProjectileCapacity: c.Projectiles.Capacity,
		TimeLeftInterval:   c.Timer.TimeLeftInterval(),
		Clock:              clock,
		Logger:             logger,
	}, nil
}

// shapeOf is used by validate output.
func shapeOf(col *collision.Collider) string {
	if col == nil {
		return "none"
	}
	return col.Shape.String()
}
