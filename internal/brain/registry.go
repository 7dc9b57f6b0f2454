package brain

import (
	"fmt"
	"maps"
	"slices"

	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/preset"
)

// OrderKind is what an order asks of its recipient.
type OrderKind uint8

const (
	OrderAttack OrderKind = iota
	OrderFollow
	OrderWait
)

func (k OrderKind) String() string {
	switch k {
	case OrderFollow:
		return "follow"
	case OrderWait:
		return "wait"
	}
	return "attack"
}

// Order is an instruction from one actor to another.
type Order struct {
	Kind   OrderKind    `json:"kind"`
	Target ecs.EntityID `json:"target,omitempty"`
	Issuer ecs.EntityID `json:"issuer"`
}

func (b *Brain) Order() (Order, bool) {
	if b.order == nil {
		return Order{}, false
	}
	return *b.order, true
}

func (b *Brain) SetOrder(o Order) { b.order = &o }

func (b *Brain) ClearOrder() { b.order = nil }

// Registry holds the brain of every scheduled entity of one world.
type Registry struct {
	env    *Env
	brains map[ecs.EntityID]*Brain
}

// NewRegistry attaches an empty registry to env.
func NewRegistry(env *Env) *Registry {
	r := &Registry{env: env, brains: make(map[ecs.EntityID]*Brain)}
	env.Brains = r
	return r
}

// Create builds the brain named by the entity's AI component.
func (r *Registry) Create(id ecs.EntityID) (*Brain, error) {
	ai, ok := ecs.Get[component.AI](r.env.World, id)
	if !ok {
		return nil, fmt.Errorf("entity %d has no AI component", id)
	}
	return r.CreateType(id, ai.Brain)
}

// CreateType builds a brain of preset typ for id and registers it. The
// memory of sentient brains is seeded from the AI component.
func (r *Registry) CreateType(id ecs.EntityID, typ string) (*Brain, error) {
	cfg, err := r.env.Presets.Brain(typ)
	if err != nil {
		return nil, err
	}
	b := New(r.env, typ, cfg.Kind, id)
	if err := attachPolicy(b, cfg); err != nil {
		return nil, fmt.Errorf("%s brain: %w", typ, err)
	}
	if b.mem != nil {
		seed(b)
	}
	r.brains[id] = b
	return b, nil
}

func attachPolicy(b *Brain, cfg preset.Brain) error {
	switch cfg.Kind {
	case preset.KindInert:
		b.SetPolicy(Inert{})
	case preset.KindFlame:
		b.SetPolicy(Flame{})
	case preset.KindCloud:
		b.SetPolicy(Cloud{})
	case preset.KindWeather:
		b.SetPolicy(&Weather{})
	case preset.KindSpawner:
		s, err := NewSpawner(b.env, cfg.Spawn)
		if err != nil {
			return err
		}
		b.SetPolicy(s)
	case preset.KindGoal:
		g, err := NewGoalDriven(b, cfg)
		if err != nil {
			return err
		}
		b.SetPolicy(g)
	case preset.KindPlayer:
		b.SetPolicy(NewPlayer(b))
	}
	return nil
}

func seed(b *Brain) {
	ai, _ := ecs.Get[component.AI](b.env.World, b.Owner)
	for _, t := range ai.Hostile {
		b.mem.AddEnemyType(t)
	}
	for _, g := range ai.EnemyGroups {
		b.mem.AddEnemyGroup(g)
	}
	if g := b.Actor().GroupID(); g != "" {
		b.mem.AddFriendGroup(g)
	}
}

// Add registers a brain built elsewhere.
func (r *Registry) Add(b *Brain) { r.brains[b.Owner] = b }

func (r *Registry) Get(id ecs.EntityID) (*Brain, bool) {
	b, ok := r.brains[id]
	return b, ok
}

// IDs returns the registered entities in ID order.
func (r *Registry) IDs() []ecs.EntityID { return slices.Sorted(maps.Keys(r.brains)) }

func (r *Registry) Len() int { return len(r.brains) }

// Player returns the first brain with the player policy.
func (r *Registry) Player() (*Brain, bool) {
	for _, id := range r.IDs() {
		if b := r.brains[id]; b.Kind == preset.KindPlayer {
			return b, true
		}
	}
	return nil, false
}

// Prune drops the brains of destroyed entities and returns their IDs.
func (r *Registry) Prune() []ecs.EntityID {
	var gone []ecs.EntityID
	for _, id := range r.IDs() {
		if !r.env.World.Alive(id) {
			delete(r.brains, id)
			gone = append(gone, id)
		}
	}
	return gone
}

// Issue hands an order to a sentient brain. Reports whether it was taken.
func (r *Registry) Issue(to ecs.EntityID, o Order) bool {
	b, ok := r.brains[to]
	if !ok || b.mem == nil || b.Kind == preset.KindPlayer {
		return false
	}
	if o.Kind == OrderAttack && o.Target == to {
		return false
	}
	b.SetOrder(o)
	return true
}

// Attacked tells the victim's brain who attacked it.
func (r *Registry) Attacked(victim ecs.EntityID, attacker actor.Ref) {
	b, ok := r.brains[victim]
	if !ok || b.mem == nil || !r.env.World.Alive(victim) {
		return
	}
	b.mem.AddEnemy(attacker)
}
