// Package memory is an actor's persistent knowledge of friends, enemies and
// where it last saw other actors.
package memory

import (
	"maps"
	"slices"

	"roguemind/internal/ecs"
)

// Actor is what Memory needs to classify another entity.
type Actor interface {
	ID() ecs.EntityID
	TypeName() string
	GroupID() string
	IsPlayer() bool
}

// Location is a remembered cell on a level.
type Location struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Level int `json:"level"`
}

type idSet map[ecs.EntityID]struct{}

func (s idSet) sorted() []ecs.EntityID {
	return slices.Sorted(maps.Keys(s))
}

// Memory is owned by exactly one brain. Queries never mutate it.
type Memory struct {
	enemies        idSet
	friends        idSet
	enemyGroups    map[string]struct{}
	friendGroups   map[string]struct{}
	enemyTypes     map[string]struct{}
	seen           map[ecs.EntityID]Location
	usedStairs     map[ecs.EntityID]Location
	closedDoor     map[ecs.EntityID]Location
	communications idSet
	lastAttacked   ecs.EntityID
}

// New returns an empty Memory.
func New() *Memory {
	return &Memory{
		enemies:        make(idSet),
		friends:        make(idSet),
		enemyGroups:    make(map[string]struct{}),
		friendGroups:   make(map[string]struct{}),
		enemyTypes:     make(map[string]struct{}),
		seen:           make(map[ecs.EntityID]Location),
		usedStairs:     make(map[ecs.EntityID]Location),
		closedDoor:     make(map[ecs.EntityID]Location),
		communications: make(idSet),
	}
}

// AddEnemy records a personal enemy. Any friendship with it ends, and a
// new enemy invalidates past communications.
func (m *Memory) AddEnemy(a Actor) {
	id := a.ID()
	delete(m.friends, id)
	if _, ok := m.enemies[id]; ok {
		return
	}
	m.enemies[id] = struct{}{}
	clear(m.communications)
}

// AddFriend records a personal friend, dropping any personal enmity.
func (m *Memory) AddFriend(a Actor) {
	id := a.ID()
	delete(m.enemies, id)
	m.friends[id] = struct{}{}
}

func (m *Memory) RemoveEnemy(a Actor) { delete(m.enemies, a.ID()) }

func (m *Memory) RemoveFriend(a Actor) { delete(m.friends, a.ID()) }

func (m *Memory) AddEnemyType(t string)    { m.enemyTypes[t] = struct{}{} }
func (m *Memory) RemoveEnemyType(t string) { delete(m.enemyTypes, t) }

// HasEnemyType reports whether the generic type t is hostile.
func (m *Memory) HasEnemyType(t string) bool {
	_, ok := m.enemyTypes[t]
	return ok
}

func (m *Memory) AddEnemyGroup(g string)     { m.enemyGroups[g] = struct{}{} }
func (m *Memory) RemoveEnemyGroup(g string)  { delete(m.enemyGroups, g) }
func (m *Memory) AddFriendGroup(g string)    { m.friendGroups[g] = struct{}{} }
func (m *Memory) RemoveFriendGroup(g string) { delete(m.friendGroups, g) }

// IsEnemy checks, in order: personal enemies, enemy groups, friendship
// (personal or group, which ends the check), enemy types, and the player
// type.
func (m *Memory) IsEnemy(a Actor) bool {
	if _, ok := m.enemies[a.ID()]; ok {
		return true
	}
	group := a.GroupID()
	if group != "" {
		if _, ok := m.enemyGroups[group]; ok {
			return true
		}
	}
	if m.isFriendOnly(a) {
		return false
	}
	if _, ok := m.enemyTypes[a.TypeName()]; ok {
		return true
	}
	if a.IsPlayer() {
		_, ok := m.enemyTypes["player"]
		return ok
	}
	return false
}

// IsFriend is true for personal or group friends that are not enemies.
func (m *Memory) IsFriend(a Actor) bool {
	return !m.IsEnemy(a) && m.isFriendOnly(a)
}

func (m *Memory) isFriendOnly(a Actor) bool {
	if _, ok := m.friends[a.ID()]; ok {
		return true
	}
	if g := a.GroupID(); g != "" {
		_, ok := m.friendGroups[g]
		return ok
	}
	return false
}

// Enemies returns the personal enemies in ID order.
func (m *Memory) Enemies() []ecs.EntityID { return m.enemies.sorted() }

// Friends returns the personal friends in ID order.
func (m *Memory) Friends() []ecs.EntityID { return m.friends.sorted() }

// EnemyTypes returns the hostile type names, sorted.
func (m *Memory) EnemyTypes() []string { return slices.Sorted(maps.Keys(m.enemyTypes)) }

func (m *Memory) SetLastAttacked(id ecs.EntityID) { m.lastAttacked = id }

func (m *Memory) WasLastAttacked(id ecs.EntityID) bool {
	return id != ecs.NilEntity && m.lastAttacked == id
}

// LastAttackedID returns the most recent attack target, if any.
func (m *Memory) LastAttackedID() (ecs.EntityID, bool) {
	return m.lastAttacked, m.lastAttacked != ecs.NilEntity
}

// AddSeen remembers where id was last observed.
func (m *Memory) AddSeen(id ecs.EntityID, loc Location) { m.seen[id] = loc }

// AddEnemySeenCell remembers the cell an enemy was spotted on.
func (m *Memory) AddEnemySeenCell(a Actor, x, y, level int) {
	m.seen[a.ID()] = Location{X: x, Y: y, Level: level}
}

func (m *Memory) HasSeen(id ecs.EntityID) bool {
	_, ok := m.seen[id]
	return ok
}

func (m *Memory) LastSeen(id ecs.EntityID) (Location, bool) {
	loc, ok := m.seen[id]
	return loc, ok
}

func (m *Memory) RemoveSeen(id ecs.EntityID) { delete(m.seen, id) }

// SeenIDs lists every remembered actor, sorted.
func (m *Memory) SeenIDs() []ecs.EntityID { return slices.Sorted(maps.Keys(m.seen)) }

func (m *Memory) AddUsedStairs(id ecs.EntityID, loc Location) { m.usedStairs[id] = loc }

func (m *Memory) UsedStairs(id ecs.EntityID) (Location, bool) {
	loc, ok := m.usedStairs[id]
	return loc, ok
}

func (m *Memory) AddClosedDoor(id ecs.EntityID, loc Location) { m.closedDoor[id] = loc }

func (m *Memory) HasCommunicatedWith(id ecs.EntityID) bool {
	_, ok := m.communications[id]
	return ok
}

func (m *Memory) AddCommunicationWith(id ecs.EntityID) { m.communications[id] = struct{}{} }

// CopyMemoryFrom replaces this memory's enemies, friends and enemy types with
// copies of src's. The two memories share nothing afterwards.
func (m *Memory) CopyMemoryFrom(src *Memory) {
	m.enemies = maps.Clone(src.enemies)
	m.friends = maps.Clone(src.friends)
	m.enemyTypes = maps.Clone(src.enemyTypes)
}
