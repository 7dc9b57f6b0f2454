package brain

import (
	"slices"

	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
	"roguemind/internal/memory"
	"roguemind/internal/perception"
	"roguemind/internal/system"
)

// Desirability scores shared by the evaluators. Bias presets scale them.
const (
	scoreOrders      = 0.95
	scoreMelee       = 1.0
	scoreCommand     = 0.9
	scoreFlee        = 0.9
	scoreSteal       = 0.85
	scoreApproach    = 0.8
	scoreCast        = 0.7
	scoreStalk       = 0.5
	scoreHunt        = 0.4
	scoreCommunicate = 0.3
	scoreExplore     = 0.1

	fleeFraction = 0.3
)

// spot looks for an enemy and, when one is visible, remembers where.
func spot(b *Brain) (perception.Cell, actor.Ref, bool) {
	cell, ok := b.FindEnemyCell()
	if !ok {
		return perception.Cell{}, actor.Ref{}, false
	}
	enemy, ok := b.enemyIn(cell)
	if !ok {
		return perception.Cell{}, actor.Ref{}, false
	}
	if lvl, ok := enemy.LevelID(); ok {
		b.mem.AddEnemySeenCell(enemy, cell.X, cell.Y, lvl)
	}
	return cell, enemy, true
}

// attackEval closes in on a visible enemy and strikes it, or walks to
// where one was last seen.
type attackEval struct {
	b      *Brain
	cell   perception.Cell
	enemy  actor.Ref
	melee  bool
	hunt   memory.Location
	huntID ecs.EntityID
}

func (e *attackEval) Name() string { return "attack" }

func (e *attackEval) Desirability() float64 {
	e.huntID = ecs.NilEntity
	cell, enemy, ok := spot(e.b)
	if ok {
		e.cell, e.enemy = cell, enemy
		e.melee = e.b.CanMeleeAttack(cell.X, cell.Y)
		if e.melee {
			return scoreMelee
		}
		return scoreApproach
	}
	e.enemy = actor.Ref{}
	here, ok := e.b.here()
	if !ok {
		return 0
	}
	for _, id := range e.b.mem.SeenIDs() {
		loc, _ := e.b.mem.LastSeen(id)
		if loc.Level != here.Level || loc == here || !e.b.mem.IsEnemy(actor.New(e.b.env.World, id)) {
			continue
		}
		e.hunt, e.huntID = loc, id
		return scoreHunt
	}
	return 0
}

func (e *attackEval) Act() {
	switch {
	case e.enemy.ID() != ecs.NilEntity && e.melee:
		e.b.AttackActor(e.enemy)
	case e.enemy.ID() != ecs.NilEntity:
		e.b.TryToMoveTowardsCell(e.cell.X, e.cell.Y)
	case e.huntID != ecs.NilEntity:
		if !e.b.TryToMoveTowardsCell(e.hunt.X, e.hunt.Y) {
			e.b.mem.RemoveSeen(e.huntID)
			return
		}
		if x, y := e.b.XY(); x == e.hunt.X && y == e.hunt.Y {
			e.b.mem.RemoveSeen(e.huntID)
		}
	}
}

// exploreEval wanders when nothing better is on offer.
type exploreEval struct{ b *Brain }

func (e *exploreEval) Name() string { return "explore" }

func (e *exploreEval) Desirability() float64 {
	if x, _ := e.b.XY(); x < 0 {
		return 0
	}
	return scoreExplore
}

func (e *exploreEval) Act() { wander(e.b) }

// fleeEval runs from a visible enemy when badly hurt.
type fleeEval struct {
	b    *Brain
	from perception.Cell
}

func (e *fleeEval) Name() string { return "flee" }

func (e *fleeEval) Desirability() float64 {
	hp, ok := ecs.Get[component.Health](e.b.env.World, e.b.Owner)
	if !ok || hp.Max <= 0 || float64(hp.Current) >= fleeFraction*float64(hp.Max) {
		return 0
	}
	cell, ok := e.b.FindEnemyCell()
	if !ok {
		return 0
	}
	e.from = cell
	return scoreFlee
}

func (e *fleeEval) Act() {
	gmap := e.b.Level()
	x, y := e.b.XY()
	if gmap == nil {
		return
	}
	best, bestDist := gamemap.Point{}, gamemap.Chebyshev(x, y, e.from.X, e.from.Y)
	moved := false
	for _, d := range neighbours {
		nx, ny := x+d[0], y+d[1]
		if !system.CanEnter(e.b.env.World, gmap, e.b.Owner, nx, ny) {
			continue
		}
		if dist := gamemap.Chebyshev(nx, ny, e.from.X, e.from.Y); dist > bestDist {
			best, bestDist, moved = gamemap.Point{X: d[0], Y: d[1]}, dist, true
		}
	}
	if moved {
		system.TryMove(e.b.env.World, gmap, e.b.Owner, best.X, best.Y)
	}
}

// castSpellEval hurls firebolts at visible enemies. Each cast succeeds with
// a fixed probability.
type castSpellEval struct {
	b           *Brain
	probability float64
	enemy       actor.Ref
}

func (e *castSpellEval) Name() string { return "castspell" }

func (e *castSpellEval) Desirability() float64 {
	ab, ok := ecs.Get[component.Abilities](e.b.env.World, e.b.Owner)
	if !ok || !slices.Contains(ab.Names, "firebolt") {
		return 0
	}
	_, enemy, ok := spot(e.b)
	if !ok {
		return 0
	}
	e.enemy = enemy
	return scoreCast
}

func (e *castSpellEval) Act() {
	env := e.b.env
	if !env.Rand.Chance(e.probability) {
		env.Log.Debug().Uint64("caster", uint64(e.b.Owner)).Msg("spell fizzled")
		return
	}
	e.b.mem.SetLastAttacked(e.enemy.ID())
	system.QueueDamage(env.World, e.enemy.ID(), component.DamageEntry{
		Amount: 2 + env.Rand.Intn(3),
		Kind:   "fire",
		Source: e.b.Owner,
	})
	if env.Brains != nil {
		env.Brains.Attacked(e.enemy.ID(), e.b.Actor())
	}
	if e.enemy.IsPlayer() {
		env.Msgs.Add("The %s hurls a firebolt at you!", e.b.Actor().Name())
	}
}

// thiefEval steals from an adjacent enemy's pack, or sneaks up on one
// carrying something.
type thiefEval struct {
	b     *Brain
	cell  perception.Cell
	mark  actor.Ref
	close bool
}

func (e *thiefEval) Name() string { return "thief" }

func (e *thiefEval) Desirability() float64 {
	cell, enemy, ok := spot(e.b)
	if !ok {
		return 0
	}
	inv, ok := ecs.Get[component.Inventory](e.b.env.World, enemy.ID())
	if !ok || len(inv.Items) == 0 {
		return 0
	}
	x, y := e.b.XY()
	e.cell, e.mark = cell, enemy
	e.close = gamemap.Chebyshev(x, y, cell.X, cell.Y) == 1
	if e.close {
		return scoreSteal
	}
	return scoreStalk
}

func (e *thiefEval) Act() {
	if !e.close {
		e.b.TryToMoveTowardsCell(e.cell.X, e.cell.Y)
		return
	}
	w := e.b.env.World
	inv, _ := ecs.Get[component.Inventory](w, e.mark.ID())
	item, ok := inv.Take(e.b.env.Rand.Intn(len(inv.Items)))
	if !ok {
		return
	}
	w.Add(e.mark.ID(), inv)
	own, _ := ecs.Get[component.Inventory](w, e.b.Owner)
	own.Items = append(own.Items, item)
	w.Add(e.b.Owner, own)
	if e.mark.IsPlayer() {
		e.b.env.Msgs.Add("The %s steals your %s!", e.b.Actor().Name(), item.Name)
	}
	if e.b.env.Brains != nil {
		e.b.env.Brains.Attacked(e.mark.ID(), e.b.Actor())
	}
}

// communicateEval shares what the owner knows about enemies with a friend
// it has not yet spoken to.
type communicateEval struct {
	b      *Brain
	friend *Brain
}

func (e *communicateEval) Name() string { return "communicate" }

func (e *communicateEval) Desirability() float64 {
	e.friend = nil
	if e.b.env.Brains == nil {
		return 0
	}
	for _, c := range perception.FindFriendCells(e.b.mem, e.b.SeenCells(), e.b.Owner) {
		for _, a := range c.Actors {
			other, ok := e.b.env.Brains.Get(a.ID())
			if !ok || other == e.b || other.mem == nil || !e.b.mem.IsFriend(a) || e.b.mem.HasCommunicatedWith(a.ID()) {
				continue
			}
			e.friend = other
			return scoreCommunicate
		}
	}
	return 0
}

func (e *communicateEval) Act() {
	if e.friend != nil {
		share(e.b, e.friend)
	}
}

// share copies the enemies and sightings of from into to.
func share(from, to *Brain) {
	w := from.env.World
	for _, id := range from.mem.Enemies() {
		if id == to.Owner || !w.Alive(id) {
			continue
		}
		to.mem.AddEnemy(actor.New(w, id))
	}
	for _, id := range from.mem.SeenIDs() {
		if loc, ok := from.mem.LastSeen(id); ok && !to.mem.HasSeen(id) {
			to.mem.AddSeen(id, loc)
		}
	}
	from.mem.AddCommunicationWith(to.Owner)
	to.mem.AddCommunicationWith(from.Owner)
}

// ordersEval carries out an order from a commander or the player.
type ordersEval struct{ b *Brain }

func (e *ordersEval) Name() string { return "orders" }

func (e *ordersEval) Desirability() float64 {
	o, ok := e.b.Order()
	if !ok {
		return 0
	}
	if o.Kind != OrderWait && !e.b.env.World.Alive(o.Target) {
		e.b.ClearOrder()
		return 0
	}
	return scoreOrders
}

func (e *ordersEval) Act() {
	o, _ := e.b.Order()
	w := e.b.env.World
	target := actor.New(w, o.Target)
	tx, ty := target.XY()
	switch o.Kind {
	case OrderAttack:
		e.b.mem.AddEnemy(target)
		if e.b.CanMeleeAttack(tx, ty) {
			e.b.AttackActor(target)
			return
		}
		e.b.TryToMoveTowardsCell(tx, ty)
	case OrderFollow:
		x, y := e.b.XY()
		if gamemap.Chebyshev(x, y, tx, ty) > 1 {
			e.b.TryToMoveTowardsCell(tx, ty)
		}
	case OrderWait:
	}
}

// commandEval sends idle group members after a visible enemy.
type commandEval struct {
	b     *Brain
	enemy actor.Ref
	crew  []*Brain
}

func (e *commandEval) Name() string { return "command" }

func (e *commandEval) Desirability() float64 {
	e.crew = e.crew[:0]
	reg := e.b.env.Brains
	group := e.b.Actor().GroupID()
	if reg == nil || group == "" {
		return 0
	}
	_, enemy, ok := spot(e.b)
	if !ok {
		return 0
	}
	for _, a := range perception.ActorsOf(e.b.SeenCells()) {
		if a.ID() == e.b.Owner || a.GroupID() != group {
			continue
		}
		other, ok := reg.Get(a.ID())
		if !ok || other.mem == nil {
			continue
		}
		if _, busy := other.Order(); busy {
			continue
		}
		e.crew = append(e.crew, other)
	}
	if len(e.crew) == 0 {
		return 0
	}
	e.enemy = enemy
	return scoreCommand
}

func (e *commandEval) Act() {
	for _, member := range e.crew {
		e.b.env.Brains.Issue(member.Owner, Order{Kind: OrderAttack, Target: e.enemy.ID(), Issuer: e.b.Owner})
	}
}
