package component

import "roguemind/internal/ecs"

const CAI ecs.ComponentType = 5

// AI names the brain preset an entity is created with. The brain itself
// lives in the brain registry, keyed by entity ID. Hostile and EnemyGroups
// seed the brain's memory.
type AI struct {
	Brain       string
	SightRange  int
	Hostile     []string
	EnemyGroups []string
}

func (AI) Type() ecs.ComponentType { return CAI }
