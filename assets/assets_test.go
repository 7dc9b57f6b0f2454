package assets

import "testing"

func TestLoreClampsDepth(t *testing.T) {
	if got := Lore(-1); got != LevelLore[0] {
		t.Errorf("Lore(-1) = %q, want first entry", got)
	}
	if got := Lore(99); got != LevelLore[len(LevelLore)-1] {
		t.Errorf("Lore(99) = %q, want last entry", got)
	}
}

func TestWritingsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range Writings {
		if seen[w] {
			t.Errorf("duplicate writing %q", w)
		}
		seen[w] = true
	}
}

func TestFloorItemsHaveGlyphs(t *testing.T) {
	for _, it := range append(FloorItems, FieldItems...) {
		if it.Glyph == "" || it.Name == "" {
			t.Errorf("item %+v missing name or glyph", it)
		}
		if it.IsConsumable && it.Heal <= 0 && it.Effect == nil {
			t.Errorf("consumable %q heals nothing", it.Name)
		}
	}
}
