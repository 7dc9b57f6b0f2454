// Package marks stores the player's travel bookmarks per level.
package marks

import (
	"encoding/json"
	"fmt"
)

// Mark is one bookmarked cell.
type Mark struct {
	X   int    `json:"x"`
	Y   int    `json:"y"`
	Tag string `json:"tag,omitempty"`
}

func (m Mark) String() string {
	if m.Tag != "" {
		return fmt.Sprintf("%s (%d,%d)", m.Tag, m.X, m.Y)
	}
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}

// List maps level IDs to their marks in insertion order.
type List struct {
	byLevel map[int][]Mark
}

func New() *List {
	return &List{byLevel: make(map[int][]Mark)}
}

// AddMark records (x, y) on level. A mark already on that cell wins and
// false is returned.
func (l *List) AddMark(level, x, y int, tag string) bool {
	for _, m := range l.byLevel[level] {
		if m.X == x && m.Y == y {
			return false
		}
	}
	l.byLevel[level] = append(l.byLevel[level], Mark{X: x, Y: y, Tag: tag})
	return true
}

// Marks returns the marks of level.
func (l *List) Marks(level int) []Mark { return l.byLevel[level] }

// DeleteMark removes the mark on exactly (level, x, y).
func (l *List) DeleteMark(level, x, y int) bool {
	list := l.byLevel[level]
	for i, m := range list {
		if m.X == x && m.Y == y {
			l.byLevel[level] = append(list[:i:i], list[i+1:]...)
			if len(l.byLevel[level]) == 0 {
				delete(l.byLevel, level)
			}
			return true
		}
	}
	return false
}

func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.byLevel)
}

func (l *List) UnmarshalJSON(data []byte) error {
	byLevel := make(map[int][]Mark)
	if err := json.Unmarshal(data, &byLevel); err != nil {
		return err
	}
	l.byLevel = byLevel
	return nil
}

// Mode is what choosing a mark in the menu does.
type Mode uint8

const (
	ModeTravel Mode = iota
	ModeDelete
)

// Menu lists one level's marks for travel or deletion.
type Menu struct {
	Level int
	Mode  Mode
	Marks []Mark
}

// Menu builds a travel menu from the current level's marks only.
func (l *List) Menu(level int) *Menu {
	return &Menu{Level: level, Mode: ModeTravel, Marks: append([]Mark(nil), l.byLevel[level]...)}
}

// Toggle switches between travel and delete.
func (m *Menu) Toggle() {
	if m.Mode == ModeTravel {
		m.Mode = ModeDelete
	} else {
		m.Mode = ModeTravel
	}
}

func (m *Menu) Title() string {
	if m.Mode == ModeDelete {
		return "Delete which mark? (- to travel)"
	}
	return "Travel to which mark? (- to delete)"
}

// Pick returns the mark under a menu letter ('a' is the first).
func (m *Menu) Pick(r rune) (Mark, bool) {
	i := int(r - 'a')
	if i < 0 || i >= len(m.Marks) {
		return Mark{}, false
	}
	return m.Marks[i], true
}
