package memory

import (
	"encoding/json"
	"maps"
	"slices"

	"roguemind/internal/ecs"
)

type memoryJSON struct {
	EnemyTypes     []string                  `json:"enemyTypes"`
	Enemies        []ecs.EntityID            `json:"enemies"`
	Friends        []ecs.EntityID            `json:"friends"`
	EnemyGroups    []string                  `json:"enemyGroups,omitempty"`
	FriendGroups   []string                  `json:"friendGroups,omitempty"`
	LastAttackedID *ecs.EntityID             `json:"lastAttackedID,omitempty"`
	Seen           map[ecs.EntityID]Location `json:"seen"`
}

// MarshalJSON writes the enemy types, personal enemies and friends, groups,
// the last attack target when set, and the seen map.
func (m *Memory) MarshalJSON() ([]byte, error) {
	out := memoryJSON{
		EnemyTypes:   m.EnemyTypes(),
		Enemies:      m.Enemies(),
		Friends:      m.Friends(),
		EnemyGroups:  slices.Sorted(maps.Keys(m.enemyGroups)),
		FriendGroups: slices.Sorted(maps.Keys(m.friendGroups)),
		Seen:         m.seen,
	}
	if id, ok := m.LastAttackedID(); ok {
		out.LastAttackedID = &id
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a memory written by MarshalJSON.
func (m *Memory) UnmarshalJSON(data []byte) error {
	var in memoryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = *New()
	for _, t := range in.EnemyTypes {
		m.enemyTypes[t] = struct{}{}
	}
	for _, id := range in.Enemies {
		m.enemies[id] = struct{}{}
	}
	for _, id := range in.Friends {
		if _, enemy := m.enemies[id]; !enemy {
			m.friends[id] = struct{}{}
		}
	}
	for _, g := range in.EnemyGroups {
		m.enemyGroups[g] = struct{}{}
	}
	for _, g := range in.FriendGroups {
		m.friendGroups[g] = struct{}{}
	}
	if in.LastAttackedID != nil {
		m.lastAttacked = *in.LastAttackedID
	}
	maps.Copy(m.seen, in.Seen)
	return nil
}
