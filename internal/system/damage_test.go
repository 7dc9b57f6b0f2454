package system

import (
	"testing"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

func TestProcessDamageAppliesAndClears(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	w.Add(id, component.Health{Current: 10, Max: 10})
	QueueDamage(w, id, component.DamageEntry{Amount: 3, Kind: "fire"})
	QueueDamage(w, id, component.DamageEntry{Amount: 2, Kind: "fire"})

	if deaths := ProcessDamage(w); len(deaths) != 0 {
		t.Fatalf("unexpected deaths: %v", deaths)
	}
	hp, _ := ecs.Get[component.Health](w, id)
	if hp.Current != 5 {
		t.Errorf("HP = %d; want 5", hp.Current)
	}
	if w.Has(id, component.CDamage) {
		t.Error("damage queue should be cleared")
	}
}

func TestProcessDamageReportsKiller(t *testing.T) {
	w := ecs.NewWorld()
	flame := w.CreateEntity()
	victim := w.CreateEntity()
	w.Add(victim, component.Health{Current: 2, Max: 2})
	QueueDamage(w, victim, component.DamageEntry{Amount: 5, Kind: "fire", Source: flame})

	deaths := ProcessDamage(w)
	if len(deaths) != 1 || deaths[0].ID != victim || deaths[0].Source != flame {
		t.Fatalf("deaths = %v; want victim killed by flame", deaths)
	}
	if w.Alive(victim) {
		t.Error("victim should be destroyed")
	}
}

func TestProcessDamageWithoutHealth(t *testing.T) {
	w := ecs.NewWorld()
	rock := w.CreateEntity()
	QueueDamage(w, rock, component.DamageEntry{Amount: 100})
	if deaths := ProcessDamage(w); len(deaths) != 0 {
		t.Fatalf("entity without health cannot die, got %v", deaths)
	}
	if !w.Alive(rock) || w.Has(rock, component.CDamage) {
		t.Error("rock should survive with an empty queue")
	}
}
