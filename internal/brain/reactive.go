package brain

import (
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/system"
)

// Inert never acts.
type Inert struct{}

func (Inert) Decide(*Brain, Input) (Decision, error) { return none, nil }

// Flame damages everything sharing its cell.
type Flame struct{}

func (Flame) Decide(b *Brain, _ Input) (Decision, error) {
	if len(victims(b)) == 0 {
		return none, nil
	}
	return act(func() { burn(b) }), nil
}

// victims lists the other actors on the owner's cell that can take damage.
func victims(b *Brain) []ecs.EntityID {
	w := b.env.World
	pos, ok := ecs.Get[component.Position](w, b.Owner)
	if !ok {
		return nil
	}
	var out []ecs.EntityID
	for _, id := range system.ActorsAt(w, pos.Level, pos.X, pos.Y) {
		if id != b.Owner && w.Has(id, component.CHealth) {
			out = append(out, id)
		}
	}
	return out
}

func burn(b *Brain) {
	dmg, ok := ecs.Get[component.Damaging](b.env.World, b.Owner)
	if !ok || dmg.Amount <= 0 {
		return
	}
	for _, id := range victims(b) {
		system.QueueDamage(b.env.World, id, component.DamageEntry{
			Amount: dmg.Amount,
			Kind:   dmg.Kind,
			Source: b.Owner,
		})
	}
}

// Cloud drifts at random, then burns like a flame.
type Cloud struct{}

func (Cloud) Decide(b *Brain, _ Input) (Decision, error) {
	drift := b.env.Rand.Chance(b.env.Tuning.CloudMoveChance)
	if !drift && len(victims(b)) == 0 {
		return none, nil
	}
	return act(func() {
		if drift {
			wander(b)
		}
		burn(b)
	}), nil
}

var neighbours = [8][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// wander steps in one random direction the owner can enter. Reports
// whether it moved.
func wander(b *Brain) bool {
	gmap := b.Level()
	x, y := b.XY()
	if gmap == nil || x < 0 {
		return false
	}
	var dirs [][2]int
	for _, d := range neighbours {
		if canStep(b, x+d[0], y+d[1]) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return false
	}
	d := dirs[b.env.Rand.Intn(len(dirs))]
	res, _ := system.TryMove(b.env.World, gmap, b.Owner, d[0], d[1])
	return res == system.MoveOK
}

// canStep accepts any walkable cell for ethereal owners and falls back to
// the movement rules otherwise.
func canStep(b *Brain, x, y int) bool {
	gmap := b.Level()
	if b.env.World.Has(b.Owner, component.CTagEthereal) {
		return gmap.IsWalkable(x, y)
	}
	return system.CanEnter(b.env.World, gmap, b.Owner, x, y)
}

// Weather stamps the level's weather onto its owner every period turns.
type Weather struct {
	counter int
}

func (p *Weather) Decide(b *Brain, _ Input) (Decision, error) {
	p.counter++
	if p.counter < b.env.Tuning.WeatherPeriod {
		return none, nil
	}
	p.counter = 0
	gmap := b.Level()
	if gmap == nil || !gmap.Weather.Active {
		return none, nil
	}
	effect := component.WeatherEffect{Kind: gmap.Weather.Kind, Temperature: gmap.Weather.Temperature}
	return act(func() { b.env.World.Add(b.Owner, effect) }), nil
}
