package system

import (
	"testing"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

func newEffectsWorld(effects ...component.ActiveEffect) (*ecs.World, ecs.EntityID) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	w.Add(id, component.Effects{Active: effects})
	return w, id
}

func poison(mag, turns int) component.ActiveEffect {
	return component.ActiveEffect{Kind: component.EffectPoison, Magnitude: mag, TurnsRemaining: turns}
}

func TestTickEffectsCountsDown(t *testing.T) {
	w, id := newEffectsWorld(
		poison(1, 1),
		component.ActiveEffect{Kind: component.EffectWeaken, Magnitude: 2, TurnsRemaining: 3},
	)
	TickEffects(w)

	effs, _ := ecs.Get[component.Effects](w, id)
	if len(effs.Active) != 1 {
		t.Fatalf("active = %+v; want only the weaken left", effs.Active)
	}
	if got := effs.Active[0]; got.Kind != component.EffectWeaken || got.TurnsRemaining != 2 {
		t.Errorf("survivor = %+v; want weaken with 2 turns", got)
	}
}

func TestTickEffectsQueuesDamageOverTime(t *testing.T) {
	w, id := newEffectsWorld(
		poison(2, 3),
		component.ActiveEffect{Kind: component.EffectBurning, Magnitude: 4, TurnsRemaining: 1},
	)
	TickEffects(w)

	dmg, _ := ecs.Get[component.Damage](w, id)
	want := []component.DamageEntry{{Amount: 2, Kind: "poison"}, {Amount: 4, Kind: "fire"}}
	if len(dmg.Pending) != len(want) {
		t.Fatalf("pending = %+v; want %+v", dmg.Pending, want)
	}
	for i := range want {
		if dmg.Pending[i] != want[i] {
			t.Errorf("pending[%d] = %+v; want %+v", i, dmg.Pending[i], want[i])
		}
	}
}

func TestApplyEffect(t *testing.T) {
	cases := []struct {
		name      string
		existing  []component.ActiveEffect
		apply     component.ActiveEffect
		wantCount int
		wantTurns int
	}{
		{"creates component", nil, poison(1, 4), 1, 4},
		{"longer replaces", []component.ActiveEffect{poison(1, 2)}, poison(3, 5), 1, 5},
		{"shorter is ignored", []component.ActiveEffect{poison(1, 6)}, poison(3, 2), 1, 6},
		{"other kinds stack", []component.ActiveEffect{
			{Kind: component.EffectWeaken, Magnitude: 1, TurnsRemaining: 9},
		}, poison(1, 4), 2, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			id := w.CreateEntity()
			if tc.existing != nil {
				w.Add(id, component.Effects{Active: tc.existing})
			}
			ApplyEffect(w, id, tc.apply)

			effs, _ := ecs.Get[component.Effects](w, id)
			if len(effs.Active) != tc.wantCount {
				t.Fatalf("active = %+v; want %d effects", effs.Active, tc.wantCount)
			}
			for _, e := range effs.Active {
				if e.Kind == component.EffectPoison && e.TurnsRemaining != tc.wantTurns {
					t.Errorf("poison turns = %d; want %d", e.TurnsRemaining, tc.wantTurns)
				}
			}
		})
	}
}

func TestEffectBonuses(t *testing.T) {
	w, id := newEffectsWorld(
		component.ActiveEffect{Kind: component.EffectAttackBoost, Magnitude: 5, TurnsRemaining: 3},
		component.ActiveEffect{Kind: component.EffectWeaken, Magnitude: 2, TurnsRemaining: 3},
		component.ActiveEffect{Kind: component.EffectDefenseBoost, Magnitude: 3, TurnsRemaining: 3},
		poison(4, 3),
	)
	if got := GetAttackBonus(w, id); got != 3 {
		t.Errorf("GetAttackBonus = %d; want 3", got)
	}
	if got := GetDefenseBonus(w, id); got != 3 {
		t.Errorf("GetDefenseBonus = %d; want 3", got)
	}
	if got := GetPoisonDamage(w, id); got != 4 {
		t.Errorf("GetPoisonDamage = %d; want 4", got)
	}
	if !HasEffect(w, id, component.EffectWeaken) || HasEffect(w, id, component.EffectInvisible) {
		t.Error("HasEffect reports the wrong set")
	}

	bare := w.CreateEntity()
	if GetAttackBonus(w, bare)+GetDefenseBonus(w, bare)+GetPoisonDamage(w, bare) != 0 {
		t.Error("entity without effects should have no bonuses")
	}
}
