package component

import "roguemind/internal/ecs"

// Item is a plain value struct stored inside Inventory and wrapped by floor
// item entities.
type Item struct {
	Name         string
	Glyph        string
	IsConsumable bool
	Heal         int
	Value        int
	Effect       *ActiveEffect // applied to the user when consumed
}

// IsEmpty returns true when this Item is the zero value.
func (i Item) IsEmpty() bool { return i.Name == "" }

// CItem is the ECS component type for floor-item entities.
// The wrapped Item is copied into Inventory on pickup; the entity is then destroyed.
const CItem ecs.ComponentType = 13

// CItemComp wraps Item so it can be stored as an ECS component on floor entities.
type CItemComp struct{ Item }

func (CItemComp) Type() ecs.ComponentType { return CItem }
