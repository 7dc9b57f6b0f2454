package component

import "roguemind/internal/ecs"

const CName ecs.ComponentType = 14

// Name carries the display name and the generic type name ("goblin",
// "human") that enemy-type memory matches against.
type Name struct {
	Name string
	Kind string
}

func (Name) Type() ecs.ComponentType { return CName }

const CGroup ecs.ComponentType = 15

// Group is faction membership, e.g. an army.
type Group struct {
	ID string
}

func (Group) Type() ecs.ComponentType { return CGroup }
