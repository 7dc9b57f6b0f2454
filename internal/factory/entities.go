// Package factory builds entities from preset shapes.
package factory

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/filter"
	"roguemind/internal/preset"
)

// Factory creates actors in one world.
type Factory struct {
	World   *ecs.World
	Presets *preset.Set
}

func New(w *ecs.World, presets *preset.Set) *Factory {
	return &Factory{World: w, Presets: presets}
}

// ShapeProps exposes a shape to creation constraints.
func ShapeProps(key string, sh preset.Shape) filter.Props {
	return func(name string) (any, bool) {
		switch name {
		case "shape":
			return key, true
		case "name":
			return sh.Name, true
		case "type":
			return sh.Type, true
		case "brain":
			return sh.Brain, true
		case "hp":
			return sh.HP, true
		case "attack":
			return sh.Attack, true
		case "defense":
			return sh.Defense, true
		case "flying":
			return sh.Flying, true
		case "spawnable":
			return sh.Spawnable, true
		}
		return nil, false
	}
}

// ShapeProperties lists the names ShapeProps resolves.
var ShapeProperties = []string{"shape", "name", "type", "brain", "hp", "attack", "defense", "flying", "spawnable"}

// Shapes returns the shape keys satisfying cons, sorted.
func (f *Factory) Shapes(cons filter.Set) []string {
	var out []string
	for _, key := range f.Presets.ShapeNames() {
		sh := f.Presets.Shapes[key]
		if sh.Virtual {
			continue
		}
		if cons.Match(ShapeProps(key, sh)) {
			out = append(out, key)
		}
	}
	return out
}

// Create builds the named shape on (x, y) of level. Virtual shapes ignore
// the coordinates.
func (f *Factory) Create(shape string, level, x, y int) (ecs.EntityID, error) {
	sh, err := f.Presets.Shape(shape)
	if err != nil {
		return ecs.NilEntity, err
	}
	b, err := f.Presets.Brain(sh.Brain)
	if err != nil {
		return ecs.NilEntity, fmt.Errorf("create %s: %w", shape, err)
	}
	w := f.World
	id := w.CreateEntity()
	if sh.Virtual {
		w.Add(id, component.Virtual{Level: level})
	} else {
		w.Add(id, component.Position{X: x, Y: y, Level: level})
	}
	w.Add(id, component.Name{Name: sh.Name, Kind: sh.Type})
	w.Add(id, component.Renderable{
		Glyph:       sh.Glyph,
		FGColor:     color(sh.Color),
		BGColor:     tcell.ColorDefault,
		RenderOrder: renderOrder(sh, b.Kind),
	})
	w.Add(id, component.AI{Brain: sh.Brain, SightRange: sh.Sight, Hostile: sh.Hostile, EnemyGroups: sh.EnemyGroups})
	if sh.HP > 0 {
		w.Add(id, component.Health{Current: sh.HP, Max: sh.HP})
		w.Add(id, component.Combat{Attack: sh.Attack, Defense: sh.Defense, Range: sh.Range, Shield: sh.Shield})
		w.Add(id, component.Effects{})
	}
	if sh.Group != "" {
		w.Add(id, component.Group{ID: sh.Group})
	}
	if !sh.Virtual && !sh.Ethereal {
		w.Add(id, component.TagBlocking{})
	}
	if sh.Ethereal {
		w.Add(id, component.TagEthereal{})
	}
	if sh.Flying {
		w.Add(id, component.TagFlying{})
	}
	if b.Kind == preset.KindPlayer {
		w.Add(id, component.TagPlayer{})
	}
	if sh.Damaging != nil {
		w.Add(id, component.Damaging{Amount: sh.Damaging.Amount, Kind: sh.Damaging.Kind})
	}
	if len(sh.Abilities) > 0 {
		w.Add(id, component.Abilities{Names: append([]string(nil), sh.Abilities...)})
	}
	if sh.Ranged != nil {
		w.Add(id, component.RangedWeapon{Name: sh.Ranged.Name, Range: sh.Ranged.Range, Damage: sh.Ranged.Damage})
	}
	if sh.HP > 0 {
		inv := component.Inventory{Capacity: 10}
		for _, it := range sh.Items {
			inv.Items = append(inv.Items, item(it))
		}
		w.Add(id, inv)
	}
	return id, nil
}

func item(it preset.Item) component.Item {
	return component.Item{Name: it.Name, Glyph: it.Glyph, IsConsumable: it.Heal > 0, Heal: it.Heal, Value: it.Value}
}

func renderOrder(sh preset.Shape, kind preset.Kind) int {
	switch {
	case kind == preset.KindPlayer:
		return 10
	case sh.Ethereal:
		return 3
	}
	return 5
}

func color(name string) tcell.Color {
	if name == "" {
		return tcell.ColorWhite
	}
	return tcell.GetColor(name)
}

// NewItem drops an item entity on the floor.
func NewItem(w *ecs.World, it component.Item, level, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y, Level: level})
	w.Add(id, component.Renderable{
		Glyph:       it.Glyph,
		FGColor:     tcell.ColorGreen,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 2,
	})
	w.Add(id, component.Name{Name: it.Name, Kind: "item"})
	w.Add(id, component.CItemComp{Item: it})
	w.Add(id, component.TagItem{})
	return id
}

// NewInscription etches text onto a floor cell.
func NewInscription(w *ecs.World, text string, level, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y, Level: level})
	w.Add(id, component.Renderable{
		Glyph:       "📜",
		FGColor:     tcell.ColorWhite,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 1,
	})
	w.Add(id, component.Name{Name: "inscription", Kind: "inscription"})
	w.Add(id, component.Inscription{Text: text})
	return id
}
