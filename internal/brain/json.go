package brain

import (
	"encoding/json"
	"fmt"

	"roguemind/internal/marks"
	"roguemind/internal/memory"
)

// state is the serialized form of a brain.
type state struct {
	Type   string         `json:"type"`
	Memory *memory.Memory `json:"memory,omitempty"`
	Marks  *marks.List    `json:"marks,omitempty"`
	Order  *Order         `json:"order,omitempty"`
	Budget *int           `json:"budget,omitempty"`
}

// MarshalJSON writes the type tag, the memory of sentient brains, the
// player's marks and the spawner budget.
func (b *Brain) MarshalJSON() ([]byte, error) {
	s := state{Type: b.Type, Memory: b.mem, Order: b.order}
	if p, ok := b.PlayerPolicy(); ok {
		s.Marks = p.marks
	}
	if budget, ok := b.SpawnBudget(); ok {
		s.Budget = &budget
	}
	return json.Marshal(s)
}

// Restore loads what MarshalJSON wrote into a brain of the same type.
func (b *Brain) Restore(data []byte) error {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("restore brain: %w", err)
	}
	if s.Type != b.Type {
		return fmt.Errorf("restore brain: snapshot is %q, brain is %q", s.Type, b.Type)
	}
	if s.Memory != nil && b.mem != nil {
		b.mem = s.Memory
	}
	if p, ok := b.PlayerPolicy(); ok && s.Marks != nil {
		p.marks = s.Marks
	}
	if sp, ok := b.policy.(*Spawner); ok && s.Budget != nil {
		sp.Budget = *s.Budget
	}
	b.order = s.Order
	return nil
}
