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
	"roguemind/internal/system"
	"roguemind/internal/targeting"
)

// Player turns one input event per call into an action. It never plans on
// its own.
type Player struct {
	targeting *targeting.FSM
	marks     *marks.List
	confirm   *confirmation
	menu      *Menu
	bindings  map[rune]func() Decision

	runMode bool
	run     *gamemap.Point
	travel  []gamemap.Point
}

type confirmation struct {
	prompt string
	onYes  func()
}

// NewPlayer builds the player policy for b.
func NewPlayer(b *Brain) *Player {
	return &Player{
		targeting: targeting.New(b, b.env.Rand, b.env.Msgs),
		marks:     marks.New(),
		bindings:  make(map[rune]func() Decision),
	}
}

// PlayerPolicy returns the player policy of b, if it has one.
func (b *Brain) PlayerPolicy() (*Player, bool) {
	p, ok := b.policy.(*Player)
	return p, ok
}

func (p *Player) Targeting() *targeting.FSM { return p.targeting }

func (p *Player) Marks() *marks.List { return p.marks }

// Prompt is the pending yes/no question, or "".
func (p *Player) Prompt() string {
	if p.confirm == nil {
		return ""
	}
	return p.confirm.prompt
}

// Menu is the open selection menu, or nil.
func (p *Player) Menu() *Menu { return p.menu }

func (p *Player) RunMode() bool { return p.runMode }

// Busy reports whether a run or a mark travel is under way.
func (p *Player) Busy() bool { return p.run != nil || len(p.travel) > 0 }

// BindKey routes r to fn ahead of the built-in commands.
func (p *Player) BindKey(r rune, fn func() Decision) { p.bindings[r] = fn }

// Decide dispatches one input. Earlier stages pre-empt later ones.
func (p *Player) Decide(b *Brain, in Input) (Decision, error) {
	b.ClearCache()
	p.targeting.Refresh()
	if in.Cmd != nil {
		p.stop()
		return p.command(b, *in.Cmd), nil
	}
	ev := in.Key
	if ev == nil {
		return p.resume(b), nil
	}
	p.stop()
	if p.confirm != nil {
		return p.answer(b, ev), nil
	}
	if p.menu != nil {
		return p.choose(b, ev), nil
	}
	if p.targeting.HandleKey(ev) {
		return none, nil
	}
	r := input.Rune(ev)
	switch r {
	case 'M':
		p.addMark(b)
		return none, nil
	case '\'':
		p.openMarks(b)
		return none, nil
	}
	if fn, ok := p.bindings[r]; ok && r != 0 {
		return fn(), nil
	}
	switch r {
	case 'R':
		p.runMode = !p.runMode
		b.env.Msgs.Add("Run mode %s.", onOff(p.runMode))
		return none, nil
	case 'F':
		p.cycleStance(b)
		return none, nil
	case 'o':
		p.orderMenu(b)
		return none, nil
	case ';':
		x, y := b.XY()
		b.env.Msgs.Add("%s", p.targeting.Describe(x, y))
		return none, nil
	case 'J':
		p.jumpMenu(b)
		return none, nil
	case 'a':
		p.abilityMenu(b)
		return none, nil
	case 'g':
		p.giveMenu(b)
		return none, nil
	case 'f':
		return p.fire(b), nil
	case 'i':
		p.itemMenu(b)
		return none, nil
	case 'C':
		p.chatMenu(b)
		return none, nil
	}
	if dx, dy, ok := input.Direction(ev); ok {
		if p.runMode {
			p.run = &gamemap.Point{X: dx, Y: dy}
		}
		return p.move(b, dx, dy), nil
	}
	return p.context(b, r), nil
}

func (p *Player) command(b *Brain, c Command) Decision {
	switch c.Kind {
	case CmdMove:
		return p.move(b, c.DX, c.DY)
	case CmdAttack:
		target := actor.New(b.env.World, c.Target)
		if !target.Alive() {
			b.env.Msgs.Add("There is nothing to attack.")
			return none
		}
		if tx, ty := target.XY(); !b.CanMeleeAttack(tx, ty) {
			b.env.Msgs.Add("The %s is out of reach.", target.Name())
			return none
		}
		return p.attack(b, target)
	case CmdRest:
		return p.rest(b)
	case CmdPickup:
		return p.pickup(b)
	case CmdTravel:
		return p.travelTo(b, c.X, c.Y)
	}
	return none
}

func (p *Player) ask(b *Brain, prompt string, onYes func()) {
	p.confirm = &confirmation{prompt: prompt, onYes: onYes}
	b.env.Msgs.Add("%s (y/n)", prompt)
}

// answer consumes the pending confirmation. Anything but y discards it.
func (p *Player) answer(b *Brain, ev *tcell.EventKey) Decision {
	c := p.confirm
	p.confirm = nil
	if r := input.Rune(ev); r == 'y' || r == 'Y' {
		return act(c.onYes)
	}
	b.env.Msgs.Add("Never mind.")
	return none
}

func (p *Player) stop() {
	p.run = nil
	p.travel = nil
}

// resume continues a run or mark travel while no enemy is in sight.
func (p *Player) resume(b *Brain) Decision {
	if !p.Busy() {
		return none
	}
	if _, ok := b.FindEnemyCell(); ok {
		p.stop()
		b.env.Msgs.Add("You stop: an enemy is in sight.")
		return none
	}
	if p.run != nil {
		x, y := b.XY()
		if !system.CanEnter(b.env.World, b.Level(), b.Owner, x+p.run.X, y+p.run.Y) {
			p.stop()
			return none
		}
		return p.step(b, p.run.X, p.run.Y)
	}
	return p.nextHop(b)
}

func (p *Player) nextHop(b *Brain) Decision {
	next := p.travel[0]
	p.travel = p.travel[1:]
	x, y := b.XY()
	if gamemap.Chebyshev(x, y, next.X, next.Y) != 1 || !system.CanEnter(b.env.World, b.Level(), b.Owner, next.X, next.Y) {
		p.stop()
		b.env.Msgs.Add("Your way is blocked.")
		return none
	}
	return p.step(b, next.X-x, next.Y-y)
}

// travelTo walks towards (x, y) one hop per turn.
func (p *Player) travelTo(b *Brain, x, y int) Decision {
	gmap := b.Level()
	sx, sy := b.XY()
	if gmap == nil || b.env.Pather == nil {
		return none
	}
	if sx == x && sy == y {
		b.env.Msgs.Add("You are already there.")
		return none
	}
	path := b.env.Pather.Path(gmap, sx, sy, x, y, func(px, py int) bool {
		return system.CanEnter(b.env.World, gmap, b.Owner, px, py)
	})
	if len(path) == 0 {
		b.env.Msgs.Add("You cannot find a way there.")
		return none
	}
	p.travel = path
	return p.nextHop(b)
}

func (p *Player) addMark(b *Brain) {
	lvl, ok := b.Actor().LevelID()
	x, y := b.XY()
	if !ok || x < 0 {
		return
	}
	tag := ""
	if gmap := b.Level(); gmap != nil {
		if k := gmap.At(x, y).Kind; k != gamemap.TileFloor {
			tag = k.String()
		}
	}
	if !p.marks.AddMark(lvl, x, y, tag) {
		b.env.Msgs.Add("This spot is already marked.")
		return
	}
	b.env.Msgs.Add("Marked %s.", marks.Mark{X: x, Y: y, Tag: tag})
}

func (p *Player) openMarks(b *Brain) {
	lvl, ok := b.Actor().LevelID()
	if !ok {
		return
	}
	mm := p.marks.Menu(lvl)
	if len(mm.Marks) == 0 {
		b.env.Msgs.Add("There are no marks on this level.")
		return
	}
	p.menu = &Menu{Title: mm.Title(), marks: mm}
}

func (p *Player) cycleStance(b *Brain) {
	cbt, ok := ecs.Get[component.Combat](b.env.World, b.Owner)
	if !ok {
		return
	}
	cbt.Stance = (cbt.Stance + 1) % 3
	b.env.World.Add(b.Owner, cbt)
	b.env.Msgs.Add("Stance: %s.", cbt.Stance)
}

// fire shoots the ranged weapon at the current target.
func (p *Player) fire(b *Brain) Decision {
	env := b.env
	weapon, ok := ecs.Get[component.RangedWeapon](env.World, b.Owner)
	if !ok {
		env.Msgs.Add("You have nothing to fire.")
		return none
	}
	if p.targeting.State() != targeting.Targeting {
		env.Msgs.Add("You have no target. Press t to pick one.")
		return none
	}
	if !p.targeting.InRange(weapon.Range) {
		env.Msgs.Add("Your target is out of range.")
		return none
	}
	cell, _ := p.targeting.Target()
	target, ok := b.enemyIn(cell)
	if !ok {
		p.targeting.CancelTargeting()
		env.Msgs.Add("Your target is no longer there.")
		return none
	}
	p.targeting.Complete()
	return act(func() {
		name := target.Name()
		b.mem.SetLastAttacked(target.ID())
		res := system.Fire(env.World, env.Rand.Rand(), b.Owner, target.ID())
		if env.Brains != nil {
			env.Brains.Attacked(target.ID(), b.Actor())
		}
		env.Msgs.Add("%s", describeHit(weapon.Name, name, res))
	})
}

func (p *Player) attack(b *Brain, target actor.Ref) Decision {
	return act(func() { p.strike(b, target) })
}

func (p *Player) strike(b *Brain, target actor.Ref) {
	name := target.Name()
	res := b.AttackActor(target)
	b.env.Msgs.Add("%s", describeHit("", name, res))
}

func describeHit(weapon, name string, res system.AttackResult) string {
	subject := "You"
	if weapon != "" {
		subject = "Your " + weapon
	}
	switch {
	case res.Killed:
		return fmt.Sprintf("%s the %s!", subjectVerb(subject, "kill"), name)
	case res.Blocked:
		return fmt.Sprintf("The %s blocks with a shield.", name)
	case res.Hit:
		return fmt.Sprintf("%s the %s for %d.", subjectVerb(subject, "hit"), name, res.Damage)
	}
	return fmt.Sprintf("%s the %s.", subjectVerb(subject, "miss"), name)
}

// subjectVerb conjugates verb for "You" or a weapon.
func subjectVerb(subject, verb string) string {
	if subject == "You" {
		return subject + " " + verb
	}
	if verb == "miss" {
		return subject + " misses"
	}
	return subject + " " + verb + "s"
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
