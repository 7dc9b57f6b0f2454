package ecs

import (
	"fmt"
	"slices"
)

// World is the central entity registry and component store.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// DestroyEntity marks the entity dead and removes all its components.
// Destroying an entity that is not alive reports ErrNoEntity; callers log it
// and carry on.
func (w *World) DestroyEntity(id EntityID) error {
	if !w.alive[id] {
		return fmt.Errorf("destroy %d: %w", id, ErrNoEntity)
	}
	w.alive[id] = false
	for _, store := range w.components {
		delete(store, id)
	}
	return nil
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Add attaches a component to an entity, replacing any previous value of the
// same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity. It reports ErrNoEntity when
// the entity does not carry a component of that type.
func (w *World) Remove(id EntityID, t ComponentType) error {
	store := w.components[t]
	if store == nil {
		return fmt.Errorf("remove component %d from %d: %w", t, id, ErrNoEntity)
	}
	if _, ok := store[id]; !ok {
		return fmt.Errorf("remove component %d from %d: %w", t, id, ErrNoEntity)
	}
	delete(store, id)
	return nil
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns all alive entities that have every listed component type,
// in ascending ID order so callers iterate deterministically.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

// Get is the typed form of World.Get: it looks up the component whose
// Type() matches T and reports whether it was present.
func Get[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	c := w.Get(id, zero.Type())
	if c == nil {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}
