package component

import "roguemind/internal/ecs"

const CDamaging ecs.ComponentType = 18

// Damaging is carried by hazards (flames, clouds) that hurt whoever shares
// their cell.
type Damaging struct {
	Amount int
	Kind   string
}

func (Damaging) Type() ecs.ComponentType { return CDamaging }

const CDamage ecs.ComponentType = 19

// DamageEntry is one pending hit, applied by the damage system.
type DamageEntry struct {
	Amount int
	Kind   string
	Source ecs.EntityID
}

// Damage queues hits until the damage system resolves them.
type Damage struct {
	Pending []DamageEntry
}

func (Damage) Type() ecs.ComponentType { return CDamage }
