package world

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade3d/internal/collision"
)

// Props are the spawn parameters of a declarative entity. Zero values pick
// the defaults: size 1x1x1, speed 1, health 1, score value 1 and a box
// collider matching the size.
type Props struct {
	ID         string
	Position   mgl64.Vec3
	Size       mgl64.Vec3
	Rotation   mgl64.Vec3
	Speed      float64
	Health     *int
	ScoreValue *int
	Collider   *collision.Collider
	Color      string
	ModelPath  string
}

// NewGameObject builds a generic object owned by levelID.
func NewGameObject(levelID string, p Props) GameObjectData {
	return newObject(levelID, p, ObjectDefault, "object")
}

// NewBox builds a box-shaped object owned by levelID.
func NewBox(levelID string, p Props) GameObjectData {
	return newObject(levelID, p, ObjectBox, "box")
}

// NewEnemy builds an enemy owned by levelID. Enemies count towards the
// level's living-enemy total.
func NewEnemy(levelID string, p Props) GameObjectData {
	obj := newObject(levelID, p, ObjectEnemy, "enemy")
	obj.IsEnemy = true
	return obj
}

// NewPlayer builds the player. The player belongs to no level.
func NewPlayer(p Props, shootDelayMs int64) PlayerObjectData {
	if p.ID == "" {
		p.ID = "player"
	}
	obj := newObject("", p, ObjectPlayer, "player")
	return PlayerObjectData{
		GameObjectData: obj,
		ShootDelayMs:   shootDelayMs,
	}
}

// ProjectileTemplate describes what a shot looks like when spawned.
type ProjectileTemplate struct {
	Size      mgl64.Vec3
	Speed     float64
	Damage    int
	Collider  *collision.Collider
	Direction mgl64.Vec3
}

// DefaultProjectileTemplate is a thin point-collider bolt travelling up.
func DefaultProjectileTemplate() ProjectileTemplate {
	return ProjectileTemplate{
		Size:      mgl64.Vec3{0.1, 0.5, 0.1},
		Speed:     1,
		Damage:    1,
		Collider:  collision.PointCollider(),
		Direction: mgl64.Vec3{0, 1, 0},
	}
}

// NewProjectile builds a projectile fired by sourceID from position.
func NewProjectile(sourceID string, position mgl64.Vec3, t ProjectileTemplate) ProjectileData {
	speed := t.Speed
	if speed == 0 {
		speed = 1
	}
	collider := t.Collider.Clone()
	if collider == nil {
		collider = collision.PointCollider()
	}
	return ProjectileData{
		GameObjectData: GameObjectData{
			ID:       NewID("projectile"),
			Position: position,
			Size:     t.Size,
			Speed:    speed,
			Collider: collider,
			Type:     ObjectProjectile,
		},
		Damage:    t.Damage,
		SourceID:  sourceID,
		Direction: t.Direction,
	}
}

// NewID returns a unique id with the given prefix.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// DirectionVector maps a travel direction name to a unit vector.
// Unknown names travel up.
func DirectionVector(name string) mgl64.Vec3 {
	switch strings.ToLower(name) {
	case "down":
		return mgl64.Vec3{0, -1, 0}
	case "left":
		return mgl64.Vec3{-1, 0, 0}
	case "right":
		return mgl64.Vec3{1, 0, 0}
	case "forward":
		return mgl64.Vec3{0, 0, -1}
	case "backward":
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{0, 1, 0}
	}
}

func newObject(levelID string, p Props, t ObjectType, prefix string) GameObjectData {
	id := p.ID
	if id == "" {
		id = NewID(prefix)
	}
	size := p.Size
	if size == (mgl64.Vec3{}) {
		size = mgl64.Vec3{1, 1, 1}
	}
	speed := p.Speed
	if speed == 0 {
		speed = 1
	}
	health := cloneInt(p.Health)
	if health == nil {
		health = IntPtr(1)
	}
	score := cloneInt(p.ScoreValue)
	if score == nil {
		score = IntPtr(1)
	}
	collider := p.Collider.Clone()
	if collider == nil {
		collider = collision.BoxCollider(size)
	}
	return GameObjectData{
		ID:            id,
		Position:      p.Position,
		Size:          size,
		Rotation:      p.Rotation,
		Speed:         speed,
		Health:        health,
		ScoreValue:    score,
		Collider:      collider,
		Type:          t,
		ParentLevelID: levelID,
		Color:         p.Color,
		ModelPath:     p.ModelPath,
	}
}
