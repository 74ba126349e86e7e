package world

import "fmt"

// DefaultProjectileCapacity is the number of live projectiles kept before
// the oldest one is evicted.
const DefaultProjectileCapacity = 100

// ProjectileRegistry holds live projectiles in insertion order, bounded by
// a capacity ceiling.
type ProjectileRegistry struct {
	items    []ProjectileData
	capacity int
}

// NewProjectileRegistry creates a registry with the given capacity.
// A non-positive capacity falls back to DefaultProjectileCapacity.
func NewProjectileRegistry(capacity int) *ProjectileRegistry {
	if capacity <= 0 {
		capacity = DefaultProjectileCapacity
	}
	return &ProjectileRegistry{
		items:    make([]ProjectileData, 0, capacity),
		capacity: capacity,
	}
}

// Capacity returns the ceiling.
func (r *ProjectileRegistry) Capacity() int {
	return r.capacity
}

// Len returns the number of live projectiles.
func (r *ProjectileRegistry) Len() int {
	return len(r.items)
}

// Spawn inserts p, evicting the oldest projectile first when full.
// Returns the evicted projectile, if any.
func (r *ProjectileRegistry) Spawn(p ProjectileData) (ProjectileData, bool) {
	var evicted ProjectileData
	full := len(r.items) >= r.capacity
	if full {
		evicted = r.items[0].Clone()
		r.items = append(r.items[:0], r.items[1:]...)
	}
	r.items = append(r.items, p.Clone())
	return evicted, full
}

// All returns copies of the live projectiles in insertion order.
func (r *ProjectileRegistry) All() []ProjectileData {
	out := make([]ProjectileData, len(r.items))
	for i, p := range r.items {
		out[i] = p.Clone()
	}
	return out
}

// RemoveByIndex deletes the projectile at index. When id is not empty the
// projectile there must carry that id.
func (r *ProjectileRegistry) RemoveByIndex(index int, id string) error {
	if index < 0 || index >= len(r.items) {
		return fmt.Errorf("%w: index %d", ErrProjectileNotFound, index)
	}
	if id != "" && r.items[index].ID != id {
		return fmt.Errorf("%w: index %d holds %q, not %q", ErrProjectileNotFound, index, r.items[index].ID, id)
	}
	r.items = append(r.items[:index], r.items[index+1:]...)
	return nil
}

// RemoveByID deletes the projectile with the given id.
func (r *ProjectileRegistry) RemoveByID(id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			return r.RemoveByIndex(i, id)
		}
	}
	return fmt.Errorf("%w: %q", ErrProjectileNotFound, id)
}

// Clear removes every projectile.
func (r *ProjectileRegistry) Clear() {
	r.items = r.items[:0]
}

// Advance calls step for each projectile in insertion order, on a copy.
// Projectiles for which step returns true are kept with step's changes;
// the rest are removed. On error the registry is left as it was.
func (r *ProjectileRegistry) Advance(step func(p *ProjectileData) (bool, error)) error {
	kept := make([]ProjectileData, 0, len(r.items))
	for _, item := range r.items {
		p := item.Clone()
		keep, err := step(&p)
		if err != nil {
			return err
		}
		if keep {
			kept = append(kept, p)
		}
	}
	r.items = kept
	return nil
}
