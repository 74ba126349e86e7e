// Package config provides YAML-based engine tuning and game definition
// loading for the arcade engine.
package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade3d/internal/collision"
)

// EngineConfig contains the engine tuning shared by every game.
type EngineConfig struct {
	Bounds      BoundsConfig     `yaml:"bounds"`
	Player      PlayerConfig     `yaml:"player"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Timer       TimerConfig      `yaml:"timer"`
	MaxObjects  int              `yaml:"max_objects"` // per level, validate warns above it
}

// BoundsConfig is the playfield box; projectiles leaving it are culled.
type BoundsConfig struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// PlayerConfig defines the default player.
type PlayerConfig struct {
	Position     *Vec            `yaml:"position"`
	Size         *Vec            `yaml:"size"`
	Scale        float64         `yaml:"scale"` // horizontal movement per second
	ShootDelayMs int64           `yaml:"shoot_delay_ms"`
	Collider     *ColliderConfig `yaml:"collider"`
	Color        string          `yaml:"color"`
}

// ProjectileConfig defines what the player fires.
type ProjectileConfig struct {
	Capacity      int             `yaml:"capacity"`
	Scale         float64         `yaml:"scale"` // distance per second at speed 1
	ForwardOffset Vec             `yaml:"forward_offset"`
	Size          Vec             `yaml:"size"`
	Speed         float64         `yaml:"speed"`
	Damage        int             `yaml:"damage"`
	Collider      *ColliderConfig `yaml:"collider"`
}

// TimerConfig controls the level time-left timer.
type TimerConfig struct {
	TimeLeftIntervalMs int `yaml:"time_left_interval_ms"`
}

// TimeLeftInterval returns the timer cadence as a duration.
func (t TimerConfig) TimeLeftInterval() time.Duration {
	return time.Duration(t.TimeLeftIntervalMs) * time.Millisecond
}

// ColliderConfig is the YAML form of a collider.
type ColliderConfig struct {
	Shape        string  `yaml:"shape"`
	Offset       Vec     `yaml:"offset"`
	BoxSize      *Vec    `yaml:"box_size"`
	SphereRadius float64 `yaml:"sphere_radius"`
	Visible      bool    `yaml:"visible"`
}

// Build converts the YAML collider. A shape whose size field is missing is
// an error.
func (c ColliderConfig) Build() (*collision.Collider, error) {
	shape, err := collision.ParseShape(c.Shape)
	if err != nil {
		return nil, err
	}
	out := &collision.Collider{
		Shape:        shape,
		Offset:       mgl64.Vec3(c.Offset),
		SphereRadius: c.SphereRadius,
		Visible:      c.Visible,
	}
	if c.BoxSize != nil {
		size := mgl64.Vec3(*c.BoxSize)
		out.BoxSize = &size
	}
	switch shape {
	case collision.ShapeBox:
		if out.BoxSize == nil {
			return nil, collision.ErrMissingBoxSize
		}
	case collision.ShapeSphere:
		if out.SphereRadius <= 0 {
			return nil, collision.ErrMissingSphereRadius
		}
	}
	return out, nil
}

// Vec is a three component vector written as a YAML sequence.
type Vec mgl64.Vec3

// UnmarshalYAML rejects sequences with fewer than three numbers.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	var raw []float64
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	vec, err := collision.VecFromSlice(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = Vec(vec)
	return nil
}

// MarshalYAML writes the vector as a flow sequence.
func (v Vec) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range v {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(f)})
	}
	return node, nil
}

func vecOr(v *Vec, def mgl64.Vec3) mgl64.Vec3 {
	if v == nil {
		return def
	}
	return mgl64.Vec3(*v)
}
