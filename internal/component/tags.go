package component

import "roguemind/internal/ecs"

const (
	CTagPlayer   ecs.ComponentType = 8
	CTagBlocking ecs.ComponentType = 9
	CTagItem     ecs.ComponentType = 10
	CTagEthereal ecs.ComponentType = 16
	CTagFlying   ecs.ComponentType = 17
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }

// TagItem marks a pickup item on the map.
type TagItem struct{}

func (TagItem) Type() ecs.ComponentType { return CTagItem }

// TagEthereal marks actors that share cells without being attacked by bumping
// (flames, clouds, ghosts).
type TagEthereal struct{}

func (TagEthereal) Type() ecs.ComponentType { return CTagEthereal }

// TagFlying lets an actor cross air-passable cells such as chasms.
type TagFlying struct{}

func (TagFlying) Type() ecs.ComponentType { return CTagFlying }
