// Package collision implements the shape-pair collision tests used by the
// simulation step. Everything here is pure: no state, no logging.
package collision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Errors returned for malformed collision inputs. These mark caller bugs,
// not game conditions.
var (
	ErrMissingCollider     = errors.New("collision: object is missing a collider")
	ErrMissingPosition     = errors.New("collision: object is missing a position")
	ErrMissingBoxSize      = errors.New("collision: box collider is missing its size")
	ErrMissingSphereRadius = errors.New("collision: sphere collider is missing its radius")
	ErrInvalidVector       = errors.New("collision: vector needs 3 components")
	ErrUnknownShape        = errors.New("collision: unknown collider shape")
)

// Shape is the collider geometry kind.
type Shape int

const (
	ShapeBox Shape = iota
	ShapePoint
	ShapeCylinder
	ShapeSphere
)

// String returns the lower-case shape name used in game definitions.
func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapePoint:
		return "point"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape converts a shape name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "box":
		return ShapeBox, nil
	case "point":
		return ShapePoint, nil
	case "cylinder":
		return ShapeCylinder, nil
	case "sphere":
		return ShapeSphere, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// Collider describes the collision volume of an object, relative to the
// object's position. Which size field is required depends on Shape:
// BoxSize for boxes, SphereRadius (> 0) for spheres.
type Collider struct {
	Shape        Shape
	Offset       mgl64.Vec3
	BoxSize      *mgl64.Vec3
	SphereRadius float64
	CylinderSize *mgl64.Vec3
	Visible      bool
}

// BoxCollider returns a box collider of the given size centered on the object.
func BoxCollider(size mgl64.Vec3) *Collider {
	return &Collider{Shape: ShapeBox, BoxSize: &size}
}

// SphereCollider returns a sphere collider centered on the object.
func SphereCollider(radius float64) *Collider {
	return &Collider{Shape: ShapeSphere, SphereRadius: radius}
}

// PointCollider returns a point collider at the object's position.
func PointCollider() *Collider {
	return &Collider{Shape: ShapePoint}
}

// Clone returns a deep copy of the collider. The copy shares no memory with c.
func (c *Collider) Clone() *Collider {
	if c == nil {
		return nil
	}
	out := *c
	if c.BoxSize != nil {
		size := *c.BoxSize
		out.BoxSize = &size
	}
	if c.CylinderSize != nil {
		size := *c.CylinderSize
		out.CylinderSize = &size
	}
	return &out
}

// Body is the collision view of an object: where it is and what volume it has.
type Body struct {
	Position *mgl64.Vec3
	Collider *Collider
}

// NewBody builds a Body from a position value and collider.
func NewBody(position mgl64.Vec3, collider *Collider) Body {
	return Body{Position: &position, Collider: collider}
}

// ColliderPosition returns the absolute collider position: object position
// plus collider offset, component-wise.
func ColliderPosition(b Body) (mgl64.Vec3, error) {
	if b.Collider == nil {
		return mgl64.Vec3{}, ErrMissingCollider
	}
	if b.Position == nil {
		return mgl64.Vec3{}, ErrMissingPosition
	}
	return b.Position.Add(b.Collider.Offset), nil
}

// VecFromSlice converts a decoded coordinate list to a vector.
// Lists with fewer than 3 components are rejected; extra components are ignored.
func VecFromSlice(v []float64) (mgl64.Vec3, error) {
	if len(v) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("%w: got %d", ErrInvalidVector, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
