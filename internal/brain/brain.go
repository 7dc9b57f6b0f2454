// Package brain decides what every scheduled actor does on its turn.
//
// A Brain is one record per entity: a type tag, the owning entity, an
// optional Memory and a Policy chosen from the brain preset. Policies range
// from inert to the player's input dispatcher.
package brain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/config"
	"roguemind/internal/ecs"
	"roguemind/internal/filter"
	"roguemind/internal/gamemap"
	"roguemind/internal/memory"
	"roguemind/internal/message"
	"roguemind/internal/perception"
	"roguemind/internal/preset"
	"roguemind/internal/rng"
	"roguemind/internal/system"
)

var (
	// ErrNoPolicy is returned when a brain is asked to decide without a
	// policy attached.
	ErrNoPolicy = errors.New("brain: no decision policy")
	// ErrUnsupportedConstraint rejects spawner constraints on criteria the
	// spawner cannot evaluate.
	ErrUnsupportedConstraint = errors.New("brain: unsupported constraint")
	// ErrUnknownEvaluator is returned for a goal preset naming an evaluator
	// that does not exist.
	ErrUnknownEvaluator = errors.New("brain: unknown evaluator")
)

// Kind says what the caller should do with a Decision.
type Kind uint8

const (
	// NoAction means nothing happened and no energy is spent.
	NoAction Kind = iota
	// Act carries a callback that performs the action.
	Act
	// Applied means the action already took place during Decide.
	Applied
)

func (k Kind) String() string {
	switch k {
	case Act:
		return "act"
	case Applied:
		return "applied"
	}
	return "none"
}

// Decision is the result of one Decide call.
type Decision struct {
	Kind Kind
	Do   func()
}

var none = Decision{Kind: NoAction}

func act(fn func()) Decision { return Decision{Kind: Act, Do: fn} }

// Perform runs the callback of an Act decision.
func (d Decision) Perform() {
	if d.Kind == Act && d.Do != nil {
		d.Do()
	}
}

// CommandKind selects a structured player command.
type CommandKind uint8

const (
	CmdMove CommandKind = iota
	CmdAttack
	CmdRest
	CmdPickup
	CmdTravel
)

// Command bypasses key handling. DX/DY serve CmdMove, Target serves
// CmdAttack and X/Y serve CmdTravel.
type Command struct {
	Kind   CommandKind
	DX, DY int
	Target ecs.EntityID
	X, Y   int
}

// Input is the external event handed to one Decide call. Only the player
// policy reads it.
type Input struct {
	Cmd *Command
	Key *tcell.EventKey
}

// FOV computes the cells visible from a point.
type FOV interface {
	Visible(m *gamemap.GameMap, x, y, radius int) []gamemap.Point
}

// Pather finds a route, closest step first and excluding the start. An
// empty result means no route.
type Pather interface {
	Path(m *gamemap.GameMap, x0, y0, x1, y1 int, passable func(x, y int) bool) []gamemap.Point
}

// Factory builds actors for spawners.
type Factory interface {
	Shapes(cons filter.Set) []string
	Create(shape string, level, x, y int) (ecs.EntityID, error)
}

// Env is everything a brain reaches outside its own record. One Env is
// shared by every brain of a world.
type Env struct {
	World   *ecs.World
	Levels  map[int]*gamemap.GameMap
	FOV     FOV
	Pather  Pather
	Rand    *rng.Source
	Msgs    message.Sink
	Log     zerolog.Logger
	Tuning  config.Tuning
	Factory Factory
	Presets *preset.Set
	Brains  *Registry
}

// Policy is the per-variant decision rule.
type Policy interface {
	Decide(b *Brain, in Input) (Decision, error)
}

// Brain is the decision record of one entity.
type Brain struct {
	Type  string
	Kind  preset.Kind
	Owner ecs.EntityID

	env    *Env
	mem    *memory.Memory
	seen   []perception.Cell
	cached bool
	pick   *enemyPick
	policy Policy
	order  *Order
}

// New returns a brain without a policy. Sentient kinds get a fresh memory.
func New(env *Env, typ string, kind preset.Kind, owner ecs.EntityID) *Brain {
	b := &Brain{Type: typ, Kind: kind, Owner: owner, env: env}
	if kind.Sentient() {
		b.mem = memory.New()
	}
	return b
}

// SetPolicy swaps the decision rule.
func (b *Brain) SetPolicy(p Policy) { b.policy = p }

func (b *Brain) Policy() Policy { return b.policy }

// Decide picks this turn's action.
func (b *Brain) Decide(in Input) (Decision, error) {
	if b.policy == nil {
		return none, fmt.Errorf("%s brain of entity %d: %w", b.Type, b.Owner, ErrNoPolicy)
	}
	return b.policy.Decide(b, in)
}

func (b *Brain) Env() *Env { return b.env }

// Actor is the owner as an entity handle.
func (b *Brain) Actor() actor.Ref { return actor.New(b.env.World, b.Owner) }

func (b *Brain) ID() ecs.EntityID { return b.Owner }

func (b *Brain) XY() (int, int) { return b.Actor().XY() }

// Level returns the map the owner is on, or nil.
func (b *Brain) Level() *gamemap.GameMap {
	id, ok := b.Actor().LevelID()
	if !ok {
		return nil
	}
	return b.env.Levels[id]
}

// Memory is nil for non-sentient brains.
func (b *Brain) Memory() *memory.Memory { return b.mem }

func (b *Brain) sightRange() int {
	if ai, ok := ecs.Get[component.AI](b.env.World, b.Owner); ok && ai.SightRange > 0 {
		return ai.SightRange
	}
	return b.env.Tuning.FOVRadius
}

// SeenCells returns the cells visible to the owner this turn, including
// those seen through telepathic links. The result is cached until
// ClearCache.
func (b *Brain) SeenCells() []perception.Cell {
	if b.cached {
		return b.seen
	}
	b.seen = b.computeSeen()
	b.cached = true
	return b.seen
}

// ClearCache drops the visible-cells cache and the enemy picked from it.
func (b *Brain) ClearCache() {
	b.seen = nil
	b.cached = false
	b.pick = nil
}

func (b *Brain) computeSeen() []perception.Cell {
	w := b.env.World
	pos, ok := ecs.Get[component.Position](w, b.Owner)
	if !ok {
		return nil
	}
	gmap := b.env.Levels[pos.Level]
	if gmap == nil || b.env.FOV == nil {
		return nil
	}
	points := b.env.FOV.Visible(gmap, pos.X, pos.Y, b.sightRange())
	if tp, ok := ecs.Get[component.Telepathy](w, b.Owner); ok {
		points = b.addLinked(points, tp, gmap)
	}
	return perception.CellsAt(w, pos.Level, points)
}

func (b *Brain) addLinked(points []gamemap.Point, tp component.Telepathy, gmap *gamemap.GameMap) []gamemap.Point {
	set := make(map[gamemap.Point]struct{}, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	for _, target := range tp.Targets {
		other, ok := ecs.Get[component.Position](b.env.World, target)
		if !ok || other.Level != gmap.ID {
			continue
		}
		radius := b.env.Tuning.FOVRadius
		if ai, ok := ecs.Get[component.AI](b.env.World, target); ok && ai.SightRange > 0 {
			radius = ai.SightRange
		}
		for _, p := range b.env.FOV.Visible(gmap, other.X, other.Y, radius) {
			set[p] = struct{}{}
		}
	}
	out := make([]gamemap.Point, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, c gamemap.Point) int {
		if a.Y != c.Y {
			return a.Y - c.Y
		}
		return a.X - c.X
	})
	return out
}

type enemyPick struct {
	cell perception.Cell
	ok   bool
}

// FindEnemyCell picks one visible cell holding an enemy. The pick is kept
// with the visible cells, so every caller in a turn sees the same enemy.
func (b *Brain) FindEnemyCell() (perception.Cell, bool) {
	if b.mem == nil {
		return perception.Cell{}, false
	}
	if b.pick == nil {
		cell, ok := perception.FindEnemyCell(b.mem, b.SeenCells(), b.Owner, b.env.Rand)
		b.pick = &enemyPick{cell: cell, ok: ok}
	}
	return b.pick.cell, b.pick.ok
}

// FindEnemyCellFast scans the box around the owner first and only falls
// back to the whole view when the box holds an enemy.
func (b *Brain) FindEnemyCellFast() (perception.Cell, bool) {
	if b.mem == nil {
		return perception.Cell{}, false
	}
	x, y := b.XY()
	box := perception.CellsAround(b.SeenCells(), x, y, b.env.Tuning.EnemyBox)
	if len(perception.FindEnemyCells(b.mem, box, b.Owner)) == 0 {
		return perception.Cell{}, false
	}
	return b.FindEnemyCell()
}

func (b *Brain) FindFriendCell() (perception.Cell, bool) {
	if b.mem == nil {
		return perception.Cell{}, false
	}
	return perception.FindFriendCell(b.mem, b.SeenCells(), b.Owner, b.env.Rand)
}

// CanSeeActor reports whether a stands on a cell the owner sees.
func (b *Brain) CanSeeActor(a actor.Ref) bool {
	lvl, ok := a.LevelID()
	if !ok || b.Level() == nil || lvl != b.Level().ID {
		return false
	}
	x, y := a.XY()
	return perception.Contains(b.SeenCells(), x, y)
}

// CanMeleeAttack reports whether (x, y) is within melee reach.
func (b *Brain) CanMeleeAttack(x, y int) bool {
	cbt, ok := ecs.Get[component.Combat](b.env.World, b.Owner)
	if !ok {
		return false
	}
	sx, sy := b.XY()
	if sx < 0 {
		return false
	}
	d := gamemap.Chebyshev(sx, sy, x, y)
	return d >= 1 && d <= cbt.Reach()
}

// TryToMoveTowardsCell takes one step towards (x, y): straight if that cell
// is free, otherwise the first hop of a path. Reports whether it moved.
func (b *Brain) TryToMoveTowardsCell(x, y int) bool {
	gmap := b.Level()
	sx, sy := b.XY()
	if gmap == nil || sx < 0 || (sx == x && sy == y) {
		return false
	}
	w := b.env.World
	dx, dy := sign(x-sx), sign(y-sy)
	if system.CanEnter(w, gmap, b.Owner, sx+dx, sy+dy) {
		res, _ := system.TryMove(w, gmap, b.Owner, dx, dy)
		return res == system.MoveOK
	}
	if b.env.Pather == nil {
		return false
	}
	path := b.env.Pather.Path(gmap, sx, sy, x, y, func(px, py int) bool {
		return system.CanEnter(w, gmap, b.Owner, px, py)
	})
	if len(path) == 0 {
		return false
	}
	res, _ := system.TryMove(w, gmap, b.Owner, path[0].X-sx, path[0].Y-sy)
	return res == system.MoveOK
}

// enemyIn returns the enemy to strike on c, preferring the last one
// attacked.
func (b *Brain) enemyIn(c perception.Cell) (actor.Ref, bool) {
	var found actor.Ref
	ok := false
	for _, a := range c.Actors {
		if a.ID() == b.Owner || b.mem == nil || !b.mem.IsEnemy(a) {
			continue
		}
		if b.mem.WasLastAttacked(a.ID()) {
			return a, true
		}
		if !ok {
			found, ok = a, true
		}
	}
	return found, ok
}

// AttackActor strikes target in melee. The owner remembers the attack and
// the victim's brain learns who hit it.
func (b *Brain) AttackActor(target actor.Ref) system.AttackResult {
	if b.mem != nil {
		b.mem.SetLastAttacked(target.ID())
	}
	name := target.Name()
	res := system.Attack(b.env.World, b.env.Rand.Rand(), b.Owner, target.ID())
	if b.env.Brains != nil {
		b.env.Brains.Attacked(target.ID(), b.Actor())
	}
	if target.IsPlayer() && !b.Actor().IsPlayer() {
		switch {
		case res.Blocked:
			b.env.Msgs.Add("Your shield stops the %s.", b.Actor().Name())
		case res.Hit:
			b.env.Msgs.Add("The %s hits you for %d.", b.Actor().Name(), res.Damage)
		default:
			b.env.Msgs.Add("The %s misses you.", b.Actor().Name())
		}
	}
	b.env.Log.Debug().
		Uint64("attacker", uint64(b.Owner)).
		Str("target", name).
		Bool("hit", res.Hit).
		Int("damage", res.Damage).
		Msg("melee attack")
	return res
}

func (b *Brain) here() (memory.Location, bool) {
	pos, ok := ecs.Get[component.Position](b.env.World, b.Owner)
	if !ok {
		return memory.Location{}, false
	}
	return memory.Location{X: pos.X, Y: pos.Y, Level: pos.Level}, true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
