package brain

import (
	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
	"roguemind/internal/memory"
	"roguemind/internal/system"
)

// move resolves a step towards (dx, dy): leave the map, walk, open a door,
// attack an occupant, or fly.
func (p *Player) move(b *Brain, dx, dy int) Decision {
	gmap := b.Level()
	x, y := b.XY()
	if gmap == nil || x < 0 {
		return none
	}
	nx, ny := x+dx, y+dy
	if !gmap.InBounds(nx, ny) {
		return p.leave(b, nx, ny)
	}
	w := b.env.World
	blocker, blocked := system.BlockerAt(w, gmap.ID, nx, ny, b.Owner)
	tile := gmap.At(nx, ny)
	switch {
	case tile.Walkable && !blocked:
		return p.step(b, dx, dy)
	case tile.IsClosedDoor():
		return act(func() {
			if system.ToggleDoor(w, gmap, nx, ny) {
				b.env.Msgs.Add("You open the door.")
			}
		})
	case blocked:
		return p.bump(b, actor.New(w, blocker))
	case w.Has(b.Owner, component.CTagFlying) && tile.AirPassable:
		return p.step(b, dx, dy)
	}
	p.stop()
	if tile.Kind == gamemap.TileChasm {
		b.env.Msgs.Add("You would fall into the chasm.")
	} else {
		b.env.Msgs.Add("There is a %s in the way.", tile.Kind)
	}
	return none
}

func (p *Player) step(b *Brain, dx, dy int) Decision {
	return act(func() {
		if res, _ := system.TryMove(b.env.World, b.Level(), b.Owner, dx, dy); res != system.MoveOK {
			p.stop()
		}
	})
}

// bump attacks an enemy outright and asks before attacking anyone else.
func (p *Player) bump(b *Brain, target actor.Ref) Decision {
	p.stop()
	if b.mem.IsEnemy(target) {
		return p.attack(b, target)
	}
	p.ask(b, "Really attack the "+target.Name()+"?", func() { p.strike(b, target) })
	return none
}

// leave crosses a map edge into the level linked to that side, after
// confirmation.
func (p *Player) leave(b *Brain, nx, ny int) Decision {
	p.stop()
	gmap := b.Level()
	side, _ := gmap.SideOf(nx, ny)
	lvl, ok := gmap.Passage(side)
	dest := b.env.Levels[lvl]
	if !ok || dest == nil {
		b.env.Msgs.Add("There is no way out in that direction.")
		return none
	}
	ex, ey := nx, ny
	switch side {
	case gamemap.SideNorth:
		ey = dest.Height - 1
	case gamemap.SideSouth:
		ey = 0
	case gamemap.SideWest:
		ex = dest.Width - 1
	case gamemap.SideEast:
		ex = 0
	}
	ex = min(max(ex, 0), dest.Width-1)
	ey = min(max(ey, 0), dest.Height-1)
	p.ask(b, "Leave for "+dest.Name+"?", func() { p.enter(b, lvl, ex, ey) })
	return none
}

// enter moves the owner to the free cell of level nearest to (x, y).
func (p *Player) enter(b *Brain, level, x, y int) bool {
	dest := b.env.Levels[level]
	if dest == nil {
		return false
	}
	w := b.env.World
	for r := 0; r < max(dest.Width, dest.Height); r++ {
		for cy := y - r; cy <= y+r; cy++ {
			for cx := x - r; cx <= x+r; cx++ {
				if gamemap.Chebyshev(x, y, cx, cy) != r || !system.CanEnter(w, dest, b.Owner, cx, cy) {
					continue
				}
				p.targeting.CancelTargeting()
				system.Place(w, b.Owner, level, cx, cy)
				b.ClearCache()
				b.env.Msgs.Add("You arrive at %s.", dest.Name)
				return true
			}
		}
	}
	b.env.Log.Warn().Int("level", level).Int("x", x).Int("y", y).Msg("no free cell to arrive on")
	return false
}

// context handles the keys that act on the owner's own cell.
func (p *Player) context(b *Brain, r rune) Decision {
	switch r {
	case ',':
		return p.pickup(b)
	case '>', '<':
		return p.stairs(b, r)
	case 'c':
		return p.door(b)
	case 'r':
		// Reading costs no turn.
		p.read(b)
	case '.', 's':
		return p.rest(b)
	}
	return none
}

func (p *Player) rest(b *Brain) Decision {
	return act(func() { b.env.Msgs.Add("You wait.") })
}

func (p *Player) pickup(b *Brain) Decision {
	w := b.env.World
	here, ok := b.here()
	if !ok {
		return none
	}
	var item ecs.EntityID
	for _, id := range w.Query(component.CTagItem, component.CPosition) {
		pos, _ := ecs.Get[component.Position](w, id)
		if pos.Level == here.Level && pos.X == here.X && pos.Y == here.Y {
			item = id
			break
		}
	}
	if item == ecs.NilEntity {
		b.env.Msgs.Add("There is nothing here to pick up.")
		return none
	}
	if inv, _ := ecs.Get[component.Inventory](w, b.Owner); inv.Full() {
		b.env.Msgs.Add("Your pack is full.")
		return none
	}
	return act(func() {
		c, ok := ecs.Get[component.CItemComp](w, item)
		if !ok {
			return
		}
		if err := w.DestroyEntity(item); err != nil {
			b.env.Log.Warn().Err(err).
				Int("x", here.X).Int("y", here.Y).
				Str("actor", b.Actor().Name()).
				Msg("item vanished before pickup")
			return
		}
		inv, _ := ecs.Get[component.Inventory](w, b.Owner)
		inv.Items = append(inv.Items, c.Item)
		w.Add(b.Owner, inv)
		b.env.Msgs.Add("You pick up the %s.", c.Name)
	})
}

func (p *Player) stairs(b *Brain, r rune) Decision {
	gmap := b.Level()
	here, ok := b.here()
	if gmap == nil || !ok {
		return none
	}
	want, dir := gamemap.TileStairsDown, "down"
	if r == '<' {
		want, dir = gamemap.TileStairsUp, "up"
	}
	if gmap.At(here.X, here.Y).Kind != want {
		b.env.Msgs.Add("There are no stairs %s here.", dir)
		return none
	}
	link, ok := gmap.Link(here.X, here.Y)
	if !ok {
		b.env.Msgs.Add("The stairs lead nowhere.")
		return none
	}
	return act(func() {
		b.mem.AddUsedStairs(b.Owner, here)
		p.enter(b, link.Level, link.X, link.Y)
	})
}

// door toggles the first door next to the owner.
func (p *Player) door(b *Brain) Decision {
	gmap := b.Level()
	x, y := b.XY()
	if gmap == nil || x < 0 {
		return none
	}
	for _, d := range neighbours {
		nx, ny := x+d[0], y+d[1]
		if !gmap.InBounds(nx, ny) || gmap.At(nx, ny).Kind != gamemap.TileDoor {
			continue
		}
		return act(func() {
			if !system.ToggleDoor(b.env.World, gmap, nx, ny) {
				b.env.Msgs.Add("Something is in the way.")
				return
			}
			if gmap.At(nx, ny).Open {
				b.env.Msgs.Add("You open the door.")
				return
			}
			b.mem.AddClosedDoor(b.Owner, memory.Location{X: nx, Y: ny, Level: gmap.ID})
			b.env.Msgs.Add("You close the door.")
		})
	}
	b.env.Msgs.Add("There is no door here.")
	return none
}

func (p *Player) read(b *Brain) {
	w := b.env.World
	here, ok := b.here()
	if !ok {
		return
	}
	for _, id := range w.Query(component.CInscription, component.CPosition) {
		pos, _ := ecs.Get[component.Position](w, id)
		if pos.Level == here.Level && pos.X == here.X && pos.Y == here.Y {
			ins, _ := ecs.Get[component.Inscription](w, id)
			b.env.Msgs.Add("It reads: %q", ins.Text)
			return
		}
	}
	b.env.Msgs.Add("There is nothing to read here.")
}
