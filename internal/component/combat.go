package component

import "roguemind/internal/ecs"

const CCombat ecs.ComponentType = 4

// Stance is the fight mode toggled by the player.
type Stance uint8

const (
	StanceNormal Stance = iota
	StanceAggressive
	StanceDefensive
)

func (s Stance) String() string {
	switch s {
	case StanceAggressive:
		return "aggressive"
	case StanceDefensive:
		return "defensive"
	}
	return "normal"
}

type Combat struct {
	Attack  int
	Defense int
	Range   int // melee reach in cells; zero is treated as 1
	Shield  int // defense granted by a shield, judged separately on each attack
	Stance  Stance
}

// Reach returns the melee attack range, never less than one cell.
func (c Combat) Reach() int {
	if c.Range < 1 {
		return 1
	}
	return c.Range
}

func (Combat) Type() ecs.ComponentType { return CCombat }

const CRangedWeapon ecs.ComponentType = 22

// RangedWeapon is the missile weapon the player fires at the current target.
type RangedWeapon struct {
	Name   string
	Range  int
	Damage int
}

func (RangedWeapon) Type() ecs.ComponentType { return CRangedWeapon }
