package component

import "roguemind/internal/ecs"

const CTelepathy ecs.ComponentType = 21

// Telepathy lets an actor see whatever its linked targets see.
type Telepathy struct {
	Targets []ecs.EntityID
}

func (Telepathy) Type() ecs.ComponentType { return CTelepathy }

const CAbilities ecs.ComponentType = 23

type Abilities struct {
	Names []string
}

func (Abilities) Type() ecs.ComponentType { return CAbilities }
