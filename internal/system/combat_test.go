package system

import (
	"math/rand"
	"testing"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
)

func makeCombatants(atkVal, defVal, defHP int) (*ecs.World, ecs.EntityID, ecs.EntityID) {
	w := ecs.NewWorld()
	attacker := w.CreateEntity()
	w.Add(attacker, component.Combat{Attack: atkVal, Defense: 0})

	defender := w.CreateEntity()
	w.Add(defender, component.Combat{Attack: 0, Defense: defVal})
	w.Add(defender, component.Health{Current: defHP, Max: defHP})
	return w, attacker, defender
}

func TestAttackDamageRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	hits := 0
	for i := 0; i < 50; i++ {
		w, attacker, defender := makeCombatants(5, 2, 1000)
		res := Attack(w, rng, attacker, defender)
		hp, _ := ecs.Get[component.Health](w, defender)
		if !res.Hit {
			if hp.Current != 1000 || res.Damage != 0 {
				t.Errorf("iteration %d: a miss must not deal damage", i)
			}
			continue
		}
		hits++
		// Damage = max(1, 5-2) + rand.Intn(3) → [3,5]
		if res.Damage < 3 || res.Damage > 5 {
			t.Errorf("iteration %d: damage %d out of expected range [3,5]", i, res.Damage)
		}
		if hp.Current != 1000-res.Damage {
			t.Errorf("HP not reduced correctly: after=%d damage=%d", hp.Current, res.Damage)
		}
	}
	if hits == 0 {
		t.Error("expected at least one hit in 50 attacks at 90% hit chance")
	}
}

func TestAttackKillsDefender(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 100 {
		w, attacker, defender := makeCombatants(10, 0, 1)
		res := Attack(w, rng, attacker, defender)
		if !res.Hit {
			continue
		}
		if !res.Killed {
			t.Fatal("expected Killed=true when defender HP reaches 0")
		}
		if w.Alive(defender) {
			t.Fatal("expected defender to be destroyed after kill")
		}
		return
	}
	t.Fatal("no hit landed in 100 attacks")
}

func TestAttackMissingComponents(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	w := ecs.NewWorld()
	attacker := w.CreateEntity()
	defender := w.CreateEntity()
	w.Add(defender, component.Combat{Attack: 3, Defense: 1})
	w.Add(defender, component.Health{Current: 10, Max: 10})

	res := Attack(w, rng, attacker, defender)
	if res != (AttackResult{}) {
		t.Errorf("expected zero-value result for missing attacker component; got %+v", res)
	}
	hp, _ := ecs.Get[component.Health](w, defender)
	if hp.Current != 10 {
		t.Errorf("defender HP should be unchanged; got %d", hp.Current)
	}
}

func TestAttackMinDamageIsOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		w, attacker, defender := makeCombatants(2, 10, 1000)
		res := Attack(w, rng, attacker, defender)
		if res.Hit && (res.Damage < 1 || res.Damage > 3) {
			t.Errorf("iteration %d: damage %d out of range [1,3] when atk<def", i, res.Damage)
		}
	}
}

// The shield verdict must be judged on the roll the attack already made.
func TestShieldUsesSameRoll(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		w, attacker, defender := makeCombatants(4, 2, 1000)
		w.Add(defender, component.Combat{Defense: 2, Shield: 6})

		roll := rand.New(rand.NewSource(seed)).Float64()
		res := Attack(w, rand.New(rand.NewSource(seed)), attacker, defender)

		wantHit := roll < HitChance(4, 8)
		wantBlocked := roll < HitChance(4, 2) && !wantHit
		if res.Hit != wantHit || res.Blocked != wantBlocked {
			t.Fatalf("seed %d roll %.3f: got hit=%v blocked=%v, want hit=%v blocked=%v",
				seed, roll, res.Hit, res.Blocked, wantHit, wantBlocked)
		}
	}
}

func TestNoShieldNeverBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 100 {
		w, attacker, defender := makeCombatants(1, 10, 1000)
		if Attack(w, rng, attacker, defender).Blocked {
			t.Fatal("an attack cannot be blocked without a shield")
		}
	}
}

func TestStanceShiftsHitChance(t *testing.T) {
	tests := []struct {
		name   string
		stance component.Stance
		atk    int
		def    int
	}{
		{"normal", component.StanceNormal, 0, 0},
		{"aggressive", component.StanceAggressive, stanceShift, -stanceShift},
		{"defensive", component.StanceDefensive, -stanceShift, stanceShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atk, def := stanceMods(tt.stance)
			if atk != tt.atk || def != tt.def {
				t.Errorf("stanceMods(%v) = %d,%d; want %d,%d", tt.stance, atk, def, tt.atk, tt.def)
			}
		})
	}
}

func TestHitChanceClamped(t *testing.T) {
	if got := HitChance(100, 0); got != 0.95 {
		t.Errorf("HitChance upper clamp = %v, want 0.95", got)
	}
	if got := HitChance(0, 100); got != 0.05 {
		t.Errorf("HitChance lower clamp = %v, want 0.05", got)
	}
}

func TestFireUsesRangedWeapon(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	w, attacker, defender := makeCombatants(0, 0, 1000)
	if res := Fire(w, rng, attacker, defender); res != (AttackResult{}) {
		t.Fatalf("Fire without a weapon should do nothing, got %+v", res)
	}
	w.Add(attacker, component.RangedWeapon{Name: "bow", Range: 6, Damage: 4})
	for range 50 {
		res := Fire(w, rng, attacker, defender)
		if res.Hit && (res.Damage < 4 || res.Damage > 6) {
			t.Fatalf("bow damage %d out of range [4,6]", res.Damage)
		}
	}
}
