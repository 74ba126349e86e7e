package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// pairFunc tests two bodies whose shapes match the table key, in key order.
type pairFunc func(a, b Body) (bool, error)

type shapePair struct {
	a, b Shape
}

// pairTests holds one entry per unordered shape pair. Lookups that miss in
// the given order are retried with the operands swapped.
var pairTests = map[shapePair]pairFunc{
	{ShapePoint, ShapePoint}:   pointToPoint,
	{ShapePoint, ShapeBox}:     pointToBox,
	{ShapePoint, ShapeSphere}:  pointToSphere,
	{ShapeBox, ShapeBox}:       boxToBox,
	{ShapeBox, ShapeSphere}:    boxToSphere,
	{ShapeSphere, ShapeSphere}: sphereToSphere,
}

// Check reports whether two bodies currently overlap.
// Both bodies need a collider and a position. Shape pairs without a test
// (anything involving a cylinder) never collide.
func Check(a, b Body) (bool, error) {
	if a.Collider == nil || b.Collider == nil {
		return false, ErrMissingCollider
	}
	if a.Position == nil || b.Position == nil {
		return false, ErrMissingPosition
	}

	if test, ok := pairTests[shapePair{a.Collider.Shape, b.Collider.Shape}]; ok {
		return test(a, b)
	}
	if test, ok := pairTests[shapePair{b.Collider.Shape, a.Collider.Shape}]; ok {
		return test(b, a)
	}
	return false, nil
}

// pointToPoint uses exact coordinate equality.
// Points only meet when they are lattice-aligned.
func pointToPoint(a, b Body) (bool, error) {
	pa, err := ColliderPosition(a)
	if err != nil {
		return false, err
	}
	pb, err := ColliderPosition(b)
	if err != nil {
		return false, err
	}
	return pa == pb, nil
}

// pointToBox tests the point against the closed box volume.
func pointToBox(point, box Body) (bool, error) {
	p, err := ColliderPosition(point)
	if err != nil {
		return false, err
	}
	lo, hi, err := boxBounds(box)
	if err != nil {
		return false, err
	}
	for i := 0; i < 3; i++ {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false, nil
		}
	}
	return true, nil
}

// pointToSphere is strict: a point on the surface does not collide.
func pointToSphere(point, sphere Body) (bool, error) {
	p, err := ColliderPosition(point)
	if err != nil {
		return false, err
	}
	center, radius, err := sphereBounds(sphere)
	if err != nil {
		return false, err
	}
	return p.Sub(center).Len() < radius, nil
}

// boxToBox is the strict slab overlap test on every axis.
// Boxes that only share a face do not collide.
func boxToBox(a, b Body) (bool, error) {
	loA, hiA, err := boxBounds(a)
	if err != nil {
		return false, err
	}
	loB, hiB, err := boxBounds(b)
	if err != nil {
		return false, err
	}
	for i := 0; i < 3; i++ {
		if !(loA[i] < hiB[i] && loB[i] < hiA[i]) {
			return false, nil
		}
	}
	return true, nil
}

// boxToSphere holds when, on every axis, the sphere surface crosses one of
// the two box faces or the center lies strictly between them.
func boxToSphere(box, sphere Body) (bool, error) {
	lo, hi, err := boxBounds(box)
	if err != nil {
		return false, err
	}
	center, radius, err := sphereBounds(sphere)
	if err != nil {
		return false, err
	}
	for i := 0; i < 3; i++ {
		crossesLo := math.Abs(center[i]-lo[i]) < radius
		crossesHi := math.Abs(center[i]-hi[i]) < radius
		inside := lo[i] < center[i] && center[i] < hi[i]
		if !(crossesLo || crossesHi || inside) {
			return false, nil
		}
	}
	return true, nil
}

// sphereToSphere is strict: tangent spheres do not collide.
func sphereToSphere(a, b Body) (bool, error) {
	ca, ra, err := sphereBounds(a)
	if err != nil {
		return false, err
	}
	cb, rb, err := sphereBounds(b)
	if err != nil {
		return false, err
	}
	return ca.Sub(cb).Len() < ra+rb, nil
}

// boxBounds returns the min and max corners of a box collider.
func boxBounds(b Body) (lo, hi mgl64.Vec3, err error) {
	center, err := ColliderPosition(b)
	if err != nil {
		return lo, hi, err
	}
	if b.Collider.BoxSize == nil {
		return lo, hi, ErrMissingBoxSize
	}
	half := b.Collider.BoxSize.Mul(0.5)
	return center.Sub(half), center.Add(half), nil
}

// sphereBounds returns the center and radius of a sphere collider.
func sphereBounds(b Body) (mgl64.Vec3, float64, error) {
	center, err := ColliderPosition(b)
	if err != nil {
		return center, 0, err
	}
	if b.Collider.SphereRadius <= 0 {
		return center, 0, ErrMissingSphereRadius
	}
	return center, b.Collider.SphereRadius, nil
}
