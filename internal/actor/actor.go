// Package actor provides Ref, a non-owning handle to an entity that is
// resolved through the world on every call.
package actor

import (
	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

// Ref names an entity in a world. The zero Ref refers to nothing.
type Ref struct {
	World *ecs.World
	id    ecs.EntityID
}

// New returns a handle to id in w.
func New(w *ecs.World, id ecs.EntityID) Ref {
	return Ref{World: w, id: id}
}

func (r Ref) ID() ecs.EntityID { return r.id }

// Alive reports whether the entity still exists.
func (r Ref) Alive() bool {
	return r.World != nil && r.id != ecs.NilEntity && r.World.Alive(r.id)
}

func (r Ref) Has(t ecs.ComponentType) bool {
	return r.World != nil && r.World.Has(r.id, t)
}

func (r Ref) Get(t ecs.ComponentType) ecs.Component {
	if r.World == nil {
		return nil
	}
	return r.World.Get(r.id, t)
}

// XY returns the entity's cell. Virtual actors report (-1, -1).
func (r Ref) XY() (int, int) {
	if r.World == nil {
		return -1, -1
	}
	if pos, ok := ecs.Get[component.Position](r.World, r.id); ok {
		return pos.X, pos.Y
	}
	return -1, -1
}

// LevelID returns the level the entity is on, from its position or its
// virtual placement.
func (r Ref) LevelID() (int, bool) {
	if r.World == nil {
		return 0, false
	}
	if pos, ok := ecs.Get[component.Position](r.World, r.id); ok {
		return pos.Level, true
	}
	if v, ok := ecs.Get[component.Virtual](r.World, r.id); ok {
		return v.Level, true
	}
	return 0, false
}

func (r Ref) IsPlayer() bool { return r.Has(component.CTagPlayer) }

// TypeName is the generic type ("goblin", "human") enemy types match. The
// player always reports "player".
func (r Ref) TypeName() string {
	if r.IsPlayer() {
		return "player"
	}
	if r.World == nil {
		return ""
	}
	n, _ := ecs.Get[component.Name](r.World, r.id)
	return n.Kind
}

func (r Ref) GroupID() string {
	if r.World == nil {
		return ""
	}
	g, _ := ecs.Get[component.Group](r.World, r.id)
	return g.ID
}

// Name returns the display name, falling back to the type name.
func (r Ref) Name() string {
	if r.World == nil {
		return ""
	}
	n, _ := ecs.Get[component.Name](r.World, r.id)
	if n.Name != "" {
		return n.Name
	}
	if t := r.TypeName(); t != "" {
		return t
	}
	return "something"
}

// OnLevel returns handles for every positioned entity on level, in ID order.
func OnLevel(w *ecs.World, level int) []Ref {
	var out []Ref
	for _, id := range w.Query(component.CPosition) {
		pos, _ := ecs.Get[component.Position](w, id)
		if pos.Level == level {
			out = append(out, New(w, id))
		}
	}
	return out
}
