package system

import (
	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

// Death records an entity destroyed by queued damage and the source of the
// killing hit.
type Death struct {
	ID     ecs.EntityID
	Source ecs.EntityID
}

// QueueDamage appends a pending hit to id.
func QueueDamage(w *ecs.World, id ecs.EntityID, entry component.DamageEntry) {
	dmg, _ := ecs.Get[component.Damage](w, id)
	dmg.Pending = append(dmg.Pending, entry)
	w.Add(id, dmg)
}

// ProcessDamage applies every pending hit to Health and clears the queue.
// Entities without Health shrug damage off. Dead entities are destroyed and
// reported.
func ProcessDamage(w *ecs.World) []Death {
	var deaths []Death
	for _, id := range w.Query(component.CDamage) {
		dmg, _ := ecs.Get[component.Damage](w, id)
		_ = w.Remove(id, component.CDamage)
		hp, ok := ecs.Get[component.Health](w, id)
		if !ok {
			continue
		}
		var last ecs.EntityID
		for _, e := range dmg.Pending {
			hp.Current -= e.Amount
			last = e.Source
			if hp.Current <= 0 {
				break
			}
		}
		w.Add(id, hp)
		if hp.Current <= 0 {
			_ = w.DestroyEntity(id)
			deaths = append(deaths, Death{ID: id, Source: last})
		}
	}
	return deaths
}
