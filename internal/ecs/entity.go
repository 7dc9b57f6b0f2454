package ecs

import "errors"

// EntityID uniquely identifies an entity in the world.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
type Component interface {
	Type() ComponentType
}

// ErrNoEntity is returned when an operation targets an entity the world
// does not know about (never created, or already destroyed).
var ErrNoEntity = errors.New("ecs: no such entity")
