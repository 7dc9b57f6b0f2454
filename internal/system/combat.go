package system

import (
	"math/rand"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

// AttackResult holds the outcome of one attack.
type AttackResult struct {
	Hit     bool
	Blocked bool // would have hit without the defender's shield
	Damage  int
	Killed  bool
}

const stanceShift = 2

// stanceMods returns the attack and defense shifts of a fight stance.
func stanceMods(s component.Stance) (atk, def int) {
	switch s {
	case component.StanceAggressive:
		return stanceShift, -stanceShift
	case component.StanceDefensive:
		return -stanceShift, stanceShift
	}
	return 0, 0
}

// HitChance maps attack against defense to a probability in [0.05, 0.95].
func HitChance(atk, def int) float64 {
	p := 0.75 + 0.05*float64(atk-def)
	return min(max(p, 0.05), 0.95)
}

// Attack resolves one melee attack from attacker against defender.
// Damage formula on a hit: max(1, atk-def) + rand.Intn(3).
// If defender HP drops to ≤ 0, it is destroyed and Killed=true.
func Attack(w *ecs.World, rng *rand.Rand, attackerID, defenderID ecs.EntityID) AttackResult {
	cbt, ok := ecs.Get[component.Combat](w, attackerID)
	if !ok {
		return AttackResult{}
	}
	atkShift, _ := stanceMods(cbt.Stance)
	atk := cbt.Attack + atkShift + GetAttackBonus(w, attackerID)
	return resolve(w, rng, defenderID, atk)
}

// Fire resolves a shot with the attacker's ranged weapon.
func Fire(w *ecs.World, rng *rand.Rand, attackerID, defenderID ecs.EntityID) AttackResult {
	weapon, ok := ecs.Get[component.RangedWeapon](w, attackerID)
	if !ok {
		return AttackResult{}
	}
	return resolve(w, rng, defenderID, weapon.Damage+GetAttackBonus(w, attackerID))
}

// resolve rolls once. The shield verdict reuses that roll: the attack is
// blocked when the same roll beats the bare defense but not the shielded one.
func resolve(w *ecs.World, rng *rand.Rand, defenderID ecs.EntityID, atk int) AttackResult {
	dc, ok := ecs.Get[component.Combat](w, defenderID)
	if !ok {
		return AttackResult{}
	}
	hp, ok := ecs.Get[component.Health](w, defenderID)
	if !ok {
		return AttackResult{}
	}
	_, defShift := stanceMods(dc.Stance)
	def := dc.Defense + defShift + GetDefenseBonus(w, defenderID)

	roll := rng.Float64()
	bare := roll < HitChance(atk, def)
	shielded := roll < HitChance(atk, def+dc.Shield)

	result := AttackResult{Hit: shielded, Blocked: bare && !shielded}
	if !result.Hit {
		return result
	}

	dmg := max(1, atk-def) + rng.Intn(3)
	hp.Current -= dmg
	w.Add(defenderID, hp)
	result.Damage = dmg
	if hp.Current <= 0 {
		result.Killed = true
		_ = w.DestroyEntity(defenderID)
	}
	return result
}
