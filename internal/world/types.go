// Package world holds the authoritative game-state store: the object and
// projectile registries, the player, the game and level settings, the
// current level's runtime data and the recorded level results.
//
// The store is a plain value passed by pointer to whoever mutates it. There
// is no global instance, so several games can run side by side.
package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/collision"
)

// Errors returned by store operations. They indicate integration bugs.
var (
	ErrMissingID          = errors.New("world: object is missing an id")
	ErrMissingParentLevel = errors.New("world: object is missing a parent level id")
	ErrTargetNotFound     = errors.New("world: target not found")
	ErrLevelNotFound      = errors.New("world: level settings not found")
	ErrProjectileNotFound = errors.New("world: projectile not found")
)

// ObjectType tags what kind of entity an object is.
type ObjectType int

const (
	ObjectDefault ObjectType = iota
	ObjectPlayer
	ObjectProjectile
	ObjectBox
	ObjectEnemy
)

// String returns the lower-case kind name used in game definitions.
func (t ObjectType) String() string {
	switch t {
	case ObjectDefault:
		return "object"
	case ObjectPlayer:
		return "player"
	case ObjectProjectile:
		return "projectile"
	case ObjectBox:
		return "box"
	case ObjectEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// GameObjectData is the record of a spawned object.
// The id never changes after creation. Destroyed is terminal: destroyed
// objects stay in the registry but leave the collidable index.
type GameObjectData struct {
	ID            string
	Position      mgl64.Vec3
	Size          mgl64.Vec3
	Rotation      mgl64.Vec3
	Speed         float64
	Health        *int
	ScoreValue    *int
	Collider      *collision.Collider
	Type          ObjectType
	IsEnemy       bool
	Destroyed     bool
	ParentLevelID string

	// Render hints passed through to the canvas.
	Color     string
	ModelPath string
}

// Clone returns a deep copy that shares no memory with o.
func (o GameObjectData) Clone() GameObjectData {
	out := o
	out.Health = cloneInt(o.Health)
	out.ScoreValue = cloneInt(o.ScoreValue)
	out.Collider = o.Collider.Clone()
	return out
}

// Body returns the collision view of the object.
func (o GameObjectData) Body() collision.Body {
	return collision.NewBody(o.Position, o.Collider)
}

// ProjectileData is a live projectile. Projectiles only live in the
// projectile registry and are removed, not flagged, when they die.
type ProjectileData struct {
	GameObjectData
	Damage    int
	SourceID  string
	Direction mgl64.Vec3
}

// Clone returns a deep copy of the projectile.
func (p ProjectileData) Clone() ProjectileData {
	out := p
	out.GameObjectData = p.GameObjectData.Clone()
	return out
}

// PlayerObjectData is the single player. The player is never registered in
// the object registry and is never a damage target.
type PlayerObjectData struct {
	GameObjectData
	LastShootTimeMs int64
	ShootDelayMs    int64
}

// Clone returns a deep copy of the player.
func (p PlayerObjectData) Clone() PlayerObjectData {
	out := p
	out.GameObjectData = p.GameObjectData.Clone()
	return out
}

// IntPtr returns a pointer to v, for the optional integer fields.
func IntPtr(v int) *int {
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
