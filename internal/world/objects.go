package world

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/arcade3d/internal/collision"
)

// DamageOutcome reports what a damage call did to its target.
type DamageOutcome struct {
	Damaged    bool // Health was reduced but the target survived
	Destroyed  bool // The target was destroyed by this call
	IsEnemy    bool
	ScoreValue int // Score awarded by the destruction, 0 otherwise
}

// snapshot is the frozen initial data of one level's objects.
type snapshot struct {
	order   []string
	objects map[string]GameObjectData
}

// ObjectRegistry owns every spawned object, keyed by id, in insertion order.
//
// It maintains the collidable index: the ids of objects that have a
// collider and are not destroyed, in insertion order. It also keeps a deep
// copy of each object as first registered, per level, for restarts.
type ObjectRegistry struct {
	order     []string
	objects   map[string]*GameObjectData
	colliding []string
	initData  map[string]*snapshot
}

// NewObjectRegistry creates an empty registry.
func NewObjectRegistry() *ObjectRegistry {
	return &ObjectRegistry{
		objects:  make(map[string]*GameObjectData),
		initData: make(map[string]*snapshot),
	}
}

// Register inserts obj. Re-registering an id overwrites the live record but
// never the snapshot, which is written the first time an id is seen for a level.
func (r *ObjectRegistry) Register(obj GameObjectData) error {
	if obj.ID == "" {
		return ErrMissingID
	}
	if obj.ParentLevelID == "" {
		return fmt.Errorf("%w: %q", ErrMissingParentLevel, obj.ID)
	}

	stored := obj.Clone()
	if _, exists := r.objects[obj.ID]; exists {
		r.objects[obj.ID] = &stored
		r.rebuildColliding()
	} else {
		r.order = append(r.order, obj.ID)
		r.objects[obj.ID] = &stored
		if isCollidable(&stored) {
			r.colliding = append(r.colliding, obj.ID)
		}
	}

	snap, ok := r.initData[obj.ParentLevelID]
	if !ok {
		snap = &snapshot{objects: make(map[string]GameObjectData)}
		r.initData[obj.ParentLevelID] = snap
	}
	if _, seen := snap.objects[obj.ID]; !seen {
		snap.order = append(snap.order, obj.ID)
		snap.objects[obj.ID] = obj.Clone()
	}
	return nil
}

// Remove deletes an object from the live registry. Snapshots are kept.
func (r *ObjectRegistry) Remove(id string) {
	if _, ok := r.objects[id]; !ok {
		return
	}
	delete(r.objects, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	r.colliding = slices.DeleteFunc(r.colliding, func(s string) bool { return s == id })
}

// Update replaces the stored record for obj.ID. The snapshot is untouched.
func (r *ObjectRegistry) Update(obj GameObjectData) error {
	if obj.ID == "" {
		return ErrMissingID
	}
	if _, ok := r.objects[obj.ID]; !ok {
		return fmt.Errorf("%w: %q", ErrTargetNotFound, obj.ID)
	}
	stored := obj.Clone()
	r.objects[obj.ID] = &stored
	r.rebuildColliding()
	return nil
}

// Get returns a copy of the object with the given id.
func (r *ObjectRegistry) Get(id string) (GameObjectData, bool) {
	obj, ok := r.objects[id]
	if !ok {
		return GameObjectData{}, false
	}
	return obj.Clone(), true
}

// Len returns the number of live records, destroyed ones included.
func (r *ObjectRegistry) Len() int {
	return len(r.order)
}

// All returns copies of every live record in insertion order.
func (r *ObjectRegistry) All() []GameObjectData {
	out := make([]GameObjectData, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.objects[id].Clone())
	}
	return out
}

// CollidingIDs returns the collidable index in insertion order.
func (r *ObjectRegistry) CollidingIDs() []string {
	return slices.Clone(r.colliding)
}

// FirstHit tests b against the collidable index in insertion order and
// returns the id of the first object it overlaps.
func (r *ObjectRegistry) FirstHit(b collision.Body) (string, bool, error) {
	for _, id := range r.colliding {
		hit, err := collision.Check(b, r.objects[id].Body())
		if err != nil {
			return "", false, fmt.Errorf("testing %q: %w", id, err)
		}
		if hit {
			return id, true, nil
		}
	}
	return "", false, nil
}

// Damage applies amount to the target. Already destroyed targets are left
// unchanged. A target whose health does not exceed amount is destroyed and
// leaves the collidable index.
func (r *ObjectRegistry) Damage(targetID string, amount int) (DamageOutcome, error) {
	target, ok := r.objects[targetID]
	if !ok {
		return DamageOutcome{}, fmt.Errorf("%w: %q", ErrTargetNotFound, targetID)
	}
	if target.Destroyed {
		return DamageOutcome{}, nil
	}

	if target.Health != nil && *target.Health > amount {
		*target.Health -= amount
		return DamageOutcome{Damaged: true, IsEnemy: target.IsEnemy}, nil
	}

	target.Destroyed = true
	r.colliding = slices.DeleteFunc(r.colliding, func(s string) bool { return s == targetID })

	out := DamageOutcome{Destroyed: true, IsEnemy: target.IsEnemy}
	if target.ScoreValue != nil {
		out.ScoreValue = *target.ScoreValue
	}
	return out, nil
}

// LivingEnemies counts non-destroyed enemies in the live registry.
func (r *ObjectRegistry) LivingEnemies() int {
	n := 0
	for _, id := range r.order {
		obj := r.objects[id]
		if obj.IsEnemy && !obj.Destroyed {
			n++
		}
	}
	return n
}

// HasSnapshot reports whether any object was ever registered for levelID.
func (r *ObjectRegistry) HasSnapshot(levelID string) bool {
	_, ok := r.initData[levelID]
	return ok
}

// Snapshot returns copies of the initial data of levelID's objects.
func (r *ObjectRegistry) Snapshot(levelID string) []GameObjectData {
	snap, ok := r.initData[levelID]
	if !ok {
		return nil
	}
	out := make([]GameObjectData, 0, len(snap.order))
	for _, id := range snap.order {
		out = append(out, snap.objects[id].Clone())
	}
	return out
}

// ResetForLevel replaces the live registry with a deep copy of levelID's
// snapshot and rebuilds the collidable index from the copies.
// A level without a snapshot resets to an empty registry.
func (r *ObjectRegistry) ResetForLevel(levelID string) {
	r.order = nil
	r.objects = make(map[string]*GameObjectData)

	if snap, ok := r.initData[levelID]; ok {
		for _, id := range snap.order {
			obj := snap.objects[id].Clone()
			r.order = append(r.order, id)
			r.objects[id] = &obj
		}
	}
	r.rebuildColliding()
}

// Clear empties the live registry. Snapshots are kept.
func (r *ObjectRegistry) Clear() {
	r.order = nil
	r.objects = make(map[string]*GameObjectData)
	r.colliding = nil
}

func (r *ObjectRegistry) rebuildColliding() {
	r.colliding = r.colliding[:0]
	for _, id := range r.order {
		if isCollidable(r.objects[id]) {
			r.colliding = append(r.colliding, id)
		}
	}
}

func isCollidable(obj *GameObjectData) bool {
	return obj.Collider != nil && !obj.Destroyed
}
