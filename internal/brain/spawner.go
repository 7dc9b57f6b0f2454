package brain

import (
	"fmt"
	"math"

	"roguemind/internal/actor"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/filter"
	"roguemind/internal/gamemap"
	"roguemind/internal/preset"
	"roguemind/internal/rng"
	"roguemind/internal/system"
)

// placementProps are the cell properties a spawner placement constraint
// may name.
var placementProps = []string{"tile", "x", "y", "playerDistance"}

// Spawner populates its level with actors from a finite budget.
type Spawner struct {
	Chance    float64
	Budget    int
	Placement filter.Set
	Creation  filter.Set
}

// NewSpawner validates the constraints of cfg. Zero chance or budget take
// the configured defaults.
func NewSpawner(env *Env, cfg *preset.Spawn) (*Spawner, error) {
	s := &Spawner{Chance: env.Tuning.SpawnChance, Budget: env.Tuning.SpawnBudget}
	if cfg == nil {
		return s, nil
	}
	if cfg.Chance > 0 {
		s.Chance = cfg.Chance
	}
	if cfg.Budget > 0 {
		s.Budget = cfg.Budget
	}
	for _, c := range cfg.Placement {
		if c.Prop == "danger" {
			return nil, fmt.Errorf("placement on %q: %w", c.Prop, ErrUnsupportedConstraint)
		}
	}
	if err := cfg.Placement.Validate(placementProps...); err != nil {
		return nil, fmt.Errorf("placement: %w", err)
	}
	s.Placement = cfg.Placement
	s.Creation = cfg.Creation
	return s, nil
}

func (s *Spawner) Decide(b *Brain, _ Input) (Decision, error) {
	env := b.env
	if s.Budget <= 0 || env.Factory == nil || !env.Rand.Chance(s.Chance) {
		return none, nil
	}
	gmap := b.Level()
	if gmap == nil {
		return none, nil
	}
	cells := system.FreeCells(env.World, gmap)
	if len(s.Placement) > 0 {
		cells = s.place(env.World, gmap, cells)
	}
	cell, ok := rng.Pick(env.Rand, cells)
	if !ok {
		env.Log.Debug().Uint64("spawner", uint64(b.Owner)).Int("level", gmap.ID).Msg("no cell satisfies placement")
		return none, nil
	}
	shape, ok := rng.Pick(env.Rand, env.Factory.Shapes(s.Creation))
	if !ok {
		env.Log.Debug().Uint64("spawner", uint64(b.Owner)).Msg("no shape satisfies creation")
		return none, nil
	}
	level := gmap.ID
	return act(func() {
		id, err := env.Factory.Create(shape, level, cell.X, cell.Y)
		if err != nil {
			env.Log.Error().Err(err).Str("shape", shape).Msg("spawn failed")
			return
		}
		if env.Brains != nil {
			if _, err := env.Brains.Create(id); err != nil {
				env.Log.Error().Err(err).Str("shape", shape).Msg("spawned actor has no brain")
				_ = env.World.DestroyEntity(id)
				return
			}
		}
		s.Budget--
		env.Log.Debug().Str("shape", shape).Int("x", cell.X).Int("y", cell.Y).Int("budget", s.Budget).Msg("spawned")
	}), nil
}

func (s *Spawner) place(w *ecs.World, gmap *gamemap.GameMap, cells []gamemap.Point) []gamemap.Point {
	players := playersOn(w, gmap.ID)
	var out []gamemap.Point
	for _, c := range cells {
		if s.Placement.Match(cellProps(gmap, c, players)) {
			out = append(out, c)
		}
	}
	return out
}

func playersOn(w *ecs.World, level int) []gamemap.Point {
	var out []gamemap.Point
	for _, r := range actor.OnLevel(w, level) {
		if r.Has(component.CTagPlayer) {
			x, y := r.XY()
			out = append(out, gamemap.Point{X: x, Y: y})
		}
	}
	return out
}

func cellProps(gmap *gamemap.GameMap, c gamemap.Point, players []gamemap.Point) filter.Props {
	return func(name string) (any, bool) {
		switch name {
		case "tile":
			return gmap.At(c.X, c.Y).Kind.String(), true
		case "x":
			return c.X, true
		case "y":
			return c.Y, true
		case "playerDistance":
			d := math.MaxInt32
			for _, p := range players {
				d = min(d, gamemap.Chebyshev(c.X, c.Y, p.X, p.Y))
			}
			return d, true
		}
		return nil, false
	}
}

// SpawnBudget returns the remaining budget of a spawner brain.
func (b *Brain) SpawnBudget() (int, bool) {
	s, ok := b.policy.(*Spawner)
	if !ok {
		return 0, false
	}
	return s.Budget, true
}
