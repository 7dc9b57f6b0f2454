package factory

import (
	"errors"
	"testing"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/filter"
	"roguemind/internal/preset"
)

func newFactory(t *testing.T) *Factory {
	t.Helper()
	presets, err := preset.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	return New(ecs.NewWorld(), presets)
}

func TestCreatePlayerComponents(t *testing.T) {
	f := newFactory(t)
	id, err := f.Create("player", 1, 5, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w := f.World

	if !w.Alive(id) {
		t.Fatal("player entity must be alive")
	}
	pos, ok := ecs.Get[component.Position](w, id)
	if !ok || pos.X != 5 || pos.Y != 3 || pos.Level != 1 {
		t.Errorf("position = %+v; want (5,3) on level 1", pos)
	}
	hp, ok := ecs.Get[component.Health](w, id)
	if !ok || hp.Current != 30 || hp.Max != 30 {
		t.Errorf("HP = %+v; want 30/30", hp)
	}
	if !w.Has(id, component.CTagPlayer) {
		t.Error("player must have CTagPlayer")
	}
	if !w.Has(id, component.CTagBlocking) {
		t.Error("player must have CTagBlocking")
	}
	weapon, ok := ecs.Get[component.RangedWeapon](w, id)
	if !ok || weapon.Range != 6 {
		t.Errorf("ranged weapon = %+v; want range 6", weapon)
	}
	inv, _ := ecs.Get[component.Inventory](w, id)
	if len(inv.Items) != 2 {
		t.Errorf("inventory has %d items; want 2", len(inv.Items))
	}
}

func TestCreateHazardIsEthereal(t *testing.T) {
	f := newFactory(t)
	id, err := f.Create("flame", 0, 2, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.World.Has(id, component.CTagBlocking) {
		t.Error("flames must not block")
	}
	if !f.World.Has(id, component.CTagEthereal) {
		t.Error("flames must be ethereal")
	}
	dmg, ok := ecs.Get[component.Damaging](f.World, id)
	if !ok || dmg.Amount != 3 || dmg.Kind != "fire" {
		t.Errorf("damaging = %+v; want 3 fire", dmg)
	}
}

func TestCreateVirtual(t *testing.T) {
	f := newFactory(t)
	id, err := f.Create("spawner", 4, 9, 9)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.World.Has(id, component.CPosition) {
		t.Error("virtual actors have no position")
	}
	v, ok := ecs.Get[component.Virtual](f.World, id)
	if !ok || v.Level != 4 {
		t.Errorf("virtual = %+v; want level 4", v)
	}
}

func TestCreateSeedsHostility(t *testing.T) {
	f := newFactory(t)
	id, err := f.Create("captain", 0, 1, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ai, _ := ecs.Get[component.AI](f.World, id)
	if ai.Brain != "commander" || len(ai.Hostile) == 0 || len(ai.EnemyGroups) == 0 {
		t.Errorf("AI = %+v; want commander with hostile types and groups", ai)
	}
	g, _ := ecs.Get[component.Group](f.World, id)
	if g.ID != "legion" {
		t.Errorf("group = %q; want legion", g.ID)
	}
}

func TestCreateUnknownShape(t *testing.T) {
	f := newFactory(t)
	if _, err := f.Create("dragon", 0, 0, 0); !errors.Is(err, preset.ErrUnknownPreset) {
		t.Fatalf("err = %v; want ErrUnknownPreset", err)
	}
}

func TestShapesFiltered(t *testing.T) {
	f := newFactory(t)
	spawnable := f.Shapes(filter.Set{{Prop: "spawnable", Op: filter.Eq, Value: true}})
	want := map[string]bool{"bat": true, "goblin": true, "rat": true, "thief": true}
	if len(spawnable) != len(want) {
		t.Fatalf("spawnable shapes = %v", spawnable)
	}
	for _, s := range spawnable {
		if !want[s] {
			t.Errorf("unexpected spawnable shape %q", s)
		}
	}
	if got := f.Shapes(filter.Set{{Prop: "hp", Op: filter.Gt, Value: 1000}}); len(got) != 0 {
		t.Errorf("no shape has more than 1000 HP, got %v", got)
	}
	for _, s := range f.Shapes(nil) {
		if s == "spawner" || s == "storm" {
			t.Errorf("virtual shape %q must not be offered", s)
		}
	}
}

func TestNewItemAndInscription(t *testing.T) {
	w := ecs.NewWorld()
	it := NewItem(w, component.Item{Name: "apple", Glyph: "🍎", Heal: 2, IsConsumable: true}, 0, 3, 3)
	c, ok := ecs.Get[component.CItemComp](w, it)
	if !ok || c.Name != "apple" {
		t.Errorf("item = %+v; want apple", c)
	}
	ins := NewInscription(w, "beware", 0, 4, 4)
	text, ok := ecs.Get[component.Inscription](w, ins)
	if !ok || text.Text != "beware" {
		t.Errorf("inscription = %+v", text)
	}
}
