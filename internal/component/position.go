package component

import "roguemind/internal/ecs"

const CPosition ecs.ComponentType = 1

// Position places an entity on a cell of one level.
type Position struct {
	X, Y  int
	Level int
}

func (Position) Type() ecs.ComponentType { return CPosition }

const CVirtual ecs.ComponentType = 24

// Virtual marks an actor that takes turns on a level without occupying a
// cell (spawners).
type Virtual struct {
	Level int
}

func (Virtual) Type() ecs.ComponentType { return CVirtual }
