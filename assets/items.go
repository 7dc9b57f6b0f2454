// Package assets holds the fixed item and writing tables the sandbox
// scatters through its levels.
package assets

import "roguemind/internal/component"

// Item glyphs.
const (
	GlyphPotion = "🧪"
	GlyphBread  = "🍞"
	GlyphApple  = "🍎"
	GlyphCoin   = "🪙"
	GlyphElixir = "⚗️"
	GlyphSalve  = "🫙"
)

// FloorItems are the loose pickups placed in rooms.
var FloorItems = []component.Item{
	{Name: "healing potion", Glyph: GlyphPotion, IsConsumable: true, Heal: 10},
	{Name: "bread", Glyph: GlyphBread, IsConsumable: true, Heal: 3},
	{Name: "apple", Glyph: GlyphApple, IsConsumable: true, Heal: 2},
	{Name: "gold coin", Glyph: GlyphCoin, Value: 5},
	{Name: "elixir of fury", Glyph: GlyphElixir, IsConsumable: true,
		Effect: &component.ActiveEffect{Kind: component.EffectAttackBoost, Magnitude: 2, TurnsRemaining: 10}},
	{Name: "stone salve", Glyph: GlyphSalve, IsConsumable: true, Heal: 1,
		Effect: &component.ActiveEffect{Kind: component.EffectDefenseBoost, Magnitude: 2, TurnsRemaining: 10}},
}

// FieldItems is the smaller pool found on the open field.
var FieldItems = []component.Item{
	{Name: "apple", Glyph: GlyphApple, IsConsumable: true, Heal: 2},
	{Name: "gold coin", Glyph: GlyphCoin, Value: 5},
}
