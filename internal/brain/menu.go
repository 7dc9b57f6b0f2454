package brain

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
	"roguemind/internal/input"
	"roguemind/internal/marks"
	"roguemind/internal/perception"
	"roguemind/internal/system"
)

// Option is one lettered menu entry.
type Option struct {
	Label  string
	Choose func() Decision
}

// Menu is a pending selection. A menu either lists options, lists marks,
// or waits for a direction.
type Menu struct {
	Title     string
	Options   []Option
	marks     *marks.Menu
	direction func(dx, dy int) Decision
}

// Lines renders the entries as "a) label".
func (m *Menu) Lines() []string {
	var labels []string
	if m.marks != nil {
		for _, mk := range m.marks.Marks {
			labels = append(labels, mk.String())
		}
	} else {
		for _, o := range m.Options {
			labels = append(labels, o.Label)
		}
	}
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = fmt.Sprintf("%c) %s", 'a'+i, l)
	}
	return out
}

// choose consumes a key for the open menu. Escape or an unknown key
// closes it.
func (p *Player) choose(b *Brain, ev *tcell.EventKey) Decision {
	m := p.menu
	if input.IsEscape(ev) {
		p.menu = nil
		b.env.Msgs.Add("Never mind.")
		return none
	}
	r := input.Rune(ev)
	switch {
	case m.marks != nil:
		if r == '-' {
			m.marks.Toggle()
			m.Title = m.marks.Title()
			return none
		}
		p.menu = nil
		mk, ok := m.marks.Pick(r)
		if !ok {
			b.env.Msgs.Add("Never mind.")
			return none
		}
		if m.marks.Mode == marks.ModeDelete {
			p.marks.DeleteMark(m.marks.Level, mk.X, mk.Y)
			b.env.Msgs.Add("Mark %s deleted.", mk)
			return none
		}
		return p.travelTo(b, mk.X, mk.Y)
	case m.direction != nil:
		p.menu = nil
		dx, dy, ok := input.Direction(ev)
		if !ok {
			b.env.Msgs.Add("Never mind.")
			return none
		}
		return m.direction(dx, dy)
	}
	p.menu = nil
	i := int(r - 'a')
	if r == 0 || i < 0 || i >= len(m.Options) {
		b.env.Msgs.Add("Never mind.")
		return none
	}
	return m.Options[i].Choose()
}

func (p *Player) open(title string, opts []Option) {
	if len(opts) > 26 {
		opts = opts[:26]
	}
	p.menu = &Menu{Title: title, Options: opts}
}

func (p *Player) itemMenu(b *Brain) {
	w := b.env.World
	inv, _ := ecs.Get[component.Inventory](w, b.Owner)
	if len(inv.Items) == 0 {
		b.env.Msgs.Add("You are not carrying anything.")
		return
	}
	opts := make([]Option, len(inv.Items))
	for i, it := range inv.Items {
		opts[i] = Option{Label: it.Glyph + " " + it.Name, Choose: func() Decision {
			if !it.IsConsumable {
				b.env.Msgs.Add("You cannot use the %s.", it.Name)
				return none
			}
			return act(func() { consume(b, i) })
		}}
	}
	p.open("Use which item?", opts)
}

func consume(b *Brain, i int) {
	w := b.env.World
	inv, _ := ecs.Get[component.Inventory](w, b.Owner)
	it, ok := inv.Take(i)
	if !ok {
		return
	}
	w.Add(b.Owner, inv)
	heal(b, it.Heal)
	if it.Effect != nil {
		system.ApplyEffect(w, b.Owner, *it.Effect)
	}
	b.env.Msgs.Add("You use the %s.", it.Name)
}

func heal(b *Brain, n int) {
	hp, ok := ecs.Get[component.Health](b.env.World, b.Owner)
	if !ok {
		return
	}
	hp.Current = min(hp.Max, hp.Current+n)
	b.env.World.Add(b.Owner, hp)
}

// listeners are the visible sentient actors the owner is not hostile to.
func (p *Player) listeners(b *Brain) []*Brain {
	reg := b.env.Brains
	if reg == nil {
		return nil
	}
	var out []*Brain
	for _, a := range perception.ActorsOf(b.SeenCells()) {
		if a.ID() == b.Owner || b.mem.IsEnemy(a) {
			continue
		}
		if other, ok := reg.Get(a.ID()); ok && other.mem != nil {
			out = append(out, other)
		}
	}
	return out
}

func (p *Player) chatMenu(b *Brain) {
	var opts []Option
	for _, other := range p.listeners(b) {
		name := other.Actor().Name()
		opts = append(opts, Option{Label: "Talk to the " + name, Choose: func() Decision {
			return act(func() {
				if other.mem.IsEnemy(b.Actor()) {
					b.env.Msgs.Add("The %s ignores you.", name)
					return
				}
				share(other, b)
				b.env.Msgs.Add("The %s tells you what it knows.", name)
			})
		}})
	}
	if len(opts) == 0 {
		b.env.Msgs.Add("There is nobody here to talk to.")
		return
	}
	p.open("Talk to whom?", opts)
}

func (p *Player) orderMenu(b *Brain) {
	var opts []Option
	for _, other := range p.listeners(b) {
		if !other.mem.IsFriend(b.Actor()) {
			continue
		}
		name := other.Actor().Name()
		opts = append(opts, Option{Label: "the " + name, Choose: func() Decision {
			p.orderKinds(b, other)
			return none
		}})
	}
	if len(opts) == 0 {
		b.env.Msgs.Add("Nobody here takes your orders.")
		return
	}
	p.open("Give an order to whom?", opts)
}

func (p *Player) orderKinds(b *Brain, to *Brain) {
	name := to.Actor().Name()
	issue := func(o Order, what string) func() Decision {
		return func() Decision {
			if !b.env.Brains.Issue(to.Owner, o) {
				b.env.Msgs.Add("The %s does not listen.", name)
				return none
			}
			b.env.Msgs.Add("The %s will %s.", name, what)
			return none
		}
	}
	opts := []Option{
		{Label: "Follow me", Choose: issue(Order{Kind: OrderFollow, Target: b.Owner, Issuer: b.Owner}, "follow you")},
		{Label: "Wait here", Choose: issue(Order{Kind: OrderWait, Issuer: b.Owner}, "wait")},
	}
	if cell, ok := p.targeting.Target(); ok {
		if enemy, ok := b.enemyIn(cell); ok {
			opts = append([]Option{{
				Label:  "Attack the " + enemy.Name(),
				Choose: issue(Order{Kind: OrderAttack, Target: enemy.ID(), Issuer: b.Owner}, "attack the "+enemy.Name()),
			}}, opts...)
		}
	}
	p.open("What should the "+name+" do?", opts)
}

// giveMenu offers the pack to the first adjacent actor that is not an
// enemy. Gifts make friends.
func (p *Player) giveMenu(b *Brain) {
	w := b.env.World
	x, y := b.XY()
	var to actor.Ref
	found := false
	for _, a := range perception.ActorsOf(b.SeenCells()) {
		ax, ay := a.XY()
		if a.ID() == b.Owner || gamemap.Chebyshev(x, y, ax, ay) != 1 || b.mem.IsEnemy(a) || !a.Has(component.CInventory) {
			continue
		}
		to, found = a, true
		break
	}
	if !found {
		b.env.Msgs.Add("There is nobody here to give to.")
		return
	}
	inv, _ := ecs.Get[component.Inventory](w, b.Owner)
	if len(inv.Items) == 0 {
		b.env.Msgs.Add("You have nothing to give.")
		return
	}
	opts := make([]Option, len(inv.Items))
	for i, it := range inv.Items {
		opts[i] = Option{Label: it.Glyph + " " + it.Name, Choose: func() Decision {
			return act(func() { give(b, to, i) })
		}}
	}
	p.open("Give what to the "+to.Name()+"?", opts)
}

func give(b *Brain, to actor.Ref, i int) {
	w := b.env.World
	inv, _ := ecs.Get[component.Inventory](w, b.Owner)
	it, ok := inv.Take(i)
	if !ok {
		return
	}
	theirs, _ := ecs.Get[component.Inventory](w, to.ID())
	if theirs.Full() {
		b.env.Msgs.Add("The %s cannot carry any more.", to.Name())
		return
	}
	w.Add(b.Owner, inv)
	theirs.Items = append(theirs.Items, it)
	w.Add(to.ID(), theirs)
	if other, ok := b.env.Brains.Get(to.ID()); ok && other.mem != nil && !other.mem.IsEnemy(b.Actor()) {
		other.mem.AddFriend(b.Actor())
	}
	b.env.Msgs.Add("You give the %s to the %s.", it.Name, to.Name())
}

func (p *Player) abilityMenu(b *Brain) {
	ab, _ := ecs.Get[component.Abilities](b.env.World, b.Owner)
	if len(ab.Names) == 0 {
		b.env.Msgs.Add("You have no abilities.")
		return
	}
	opts := make([]Option, len(ab.Names))
	for i, name := range ab.Names {
		opts[i] = Option{Label: name, Choose: func() Decision { return useAbility(b, name) }}
	}
	p.open("Use which ability?", opts)
}

const healAmount = 5

func useAbility(b *Brain, name string) Decision {
	switch name {
	case "heal":
		return act(func() {
			heal(b, healAmount)
			b.env.Msgs.Add("You feel better.")
		})
	case "blink":
		return act(func() { blink(b) })
	}
	b.env.Msgs.Add("Nothing happens.")
	return none
}

// blink teleports the owner to a random visible cell at least two steps
// away.
func blink(b *Brain) {
	gmap := b.Level()
	x, y := b.XY()
	var cells []gamemap.Point
	for _, c := range b.SeenCells() {
		if gamemap.Chebyshev(x, y, c.X, c.Y) >= 2 && system.CanEnter(b.env.World, gmap, b.Owner, c.X, c.Y) {
			cells = append(cells, gamemap.Point{X: c.X, Y: c.Y})
		}
	}
	if len(cells) == 0 {
		b.env.Msgs.Add("You flicker, but stay put.")
		return
	}
	dest := cells[b.env.Rand.Intn(len(cells))]
	system.Place(b.env.World, b.Owner, gmap.ID, dest.X, dest.Y)
	b.ClearCache()
	b.env.Msgs.Add("You blink.")
}

// jumpMenu waits for a direction and leaps two cells, clearing whatever lies
// between when it can be flown over.
func (p *Player) jumpMenu(b *Brain) {
	p.menu = &Menu{Title: "Jump in which direction?", direction: func(dx, dy int) Decision {
		gmap := b.Level()
		x, y := b.XY()
		mx, my := x+dx, y+dy
		tx, ty := x+2*dx, y+2*dy
		if gmap == nil || !gmap.IsAirPassable(mx, my) || !system.CanEnter(b.env.World, gmap, b.Owner, tx, ty) {
			b.env.Msgs.Add("You cannot jump there.")
			return none
		}
		return act(func() {
			system.Place(b.env.World, b.Owner, gmap.ID, tx, ty)
			b.env.Msgs.Add("You jump.")
		})
	}}
}
