package system

import (
	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

// TickEffects queues damage-over-time hits, decrements every active effect
// by one turn and drops expired ones.
func TickEffects(w *ecs.World) {
	for _, id := range w.Query(component.CEffects) {
		eff, _ := ecs.Get[component.Effects](w, id)
		if dot := GetPoisonDamage(w, id); dot > 0 {
			QueueDamage(w, id, component.DamageEntry{Amount: dot, Kind: "poison"})
		}
		if burn := sumEffects(w, id, component.EffectBurning); burn > 0 {
			QueueDamage(w, id, component.DamageEntry{Amount: burn, Kind: "fire"})
		}
		active := eff.Active[:0]
		for _, e := range eff.Active {
			e.TurnsRemaining--
			if e.TurnsRemaining > 0 {
				active = append(active, e)
			}
		}
		eff.Active = active
		w.Add(id, eff)
	}
}

// ApplyEffect adds an effect to an entity. An existing effect of the same
// kind is replaced only by a longer one.
func ApplyEffect(w *ecs.World, id ecs.EntityID, eff component.ActiveEffect) {
	effs, _ := ecs.Get[component.Effects](w, id)
	for i, e := range effs.Active {
		if e.Kind == eff.Kind {
			if eff.TurnsRemaining > e.TurnsRemaining {
				effs.Active[i] = eff
			}
			w.Add(id, effs)
			return
		}
	}
	effs.Active = append(effs.Active, eff)
	w.Add(id, effs)
}

// HasEffect reports whether an entity currently has an effect of the given kind.
func HasEffect(w *ecs.World, id ecs.EntityID, kind component.EffectKind) bool {
	effs, _ := ecs.Get[component.Effects](w, id)
	for _, e := range effs.Active {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func sumEffects(w *ecs.World, id ecs.EntityID, kind component.EffectKind) int {
	effs, _ := ecs.Get[component.Effects](w, id)
	total := 0
	for _, e := range effs.Active {
		if e.Kind == kind {
			total += e.Magnitude
		}
	}
	return total
}

// GetAttackBonus returns the net attack modifier from active effects
// (EffectAttackBoost adds, EffectWeaken subtracts).
func GetAttackBonus(w *ecs.World, id ecs.EntityID) int {
	return sumEffects(w, id, component.EffectAttackBoost) - sumEffects(w, id, component.EffectWeaken)
}

// GetDefenseBonus returns the net defense modifier from active effects.
func GetDefenseBonus(w *ecs.World, id ecs.EntityID) int {
	return sumEffects(w, id, component.EffectDefenseBoost)
}

// GetPoisonDamage returns the total poison damage per turn.
func GetPoisonDamage(w *ecs.World, id ecs.EntityID) int {
	return sumEffects(w, id, component.EffectPoison)
}
