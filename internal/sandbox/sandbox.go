// Package sandbox runs the brains on generated levels: it builds the
// dungeon and its cast, schedules every brain after each player action and
// draws the result.
package sandbox

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"roguemind/assets"
	"roguemind/internal/brain"
	"roguemind/internal/component"
	"roguemind/internal/config"
	"roguemind/internal/ecs"
	"roguemind/internal/factory"
	"roguemind/internal/filter"
	"roguemind/internal/gamemap"
	"roguemind/internal/generate"
	"roguemind/internal/message"
	"roguemind/internal/preset"
	"roguemind/internal/render"
	"roguemind/internal/rng"
	"roguemind/internal/snapshot"
	"roguemind/internal/system"
)

// State tracks the main state machine.
type State uint8

const (
	StatePlaying State = iota
	StateDead
	StateQuit
)

// Options configure one sandbox.
type Options struct {
	Tuning        config.Tuning
	Presets       *preset.Set
	Log           zerolog.Logger
	Depth         int
	Width, Height int
	Weather       gamemap.Weather
	Store         *snapshot.Store // optional
	Slot          string
	Seed          string // overrides Tuning.Seed when set
}

func (o *Options) fill() {
	if o.Depth <= 0 {
		o.Depth = 3
	}
	if o.Width <= 0 {
		o.Width = 60
	}
	if o.Height <= 0 {
		o.Height = 30
	}
	if o.Weather == (gamemap.Weather{}) {
		o.Weather = gamemap.Weather{Active: true, Kind: "rain", Temperature: 6}
	}
	if o.Slot == "" {
		o.Slot = "quicksave"
	}
	if o.Seed == "" {
		o.Seed = o.Tuning.Seed
	}
}

// Sandbox is the top-level orchestrator.
type Sandbox struct {
	screen   tcell.Screen
	renderer *render.Renderer
	world    *ecs.World
	dungeon  *generate.Dungeon
	env      *brain.Env
	reg      *brain.Registry
	factory  *factory.Factory
	msgs     *message.Log
	log      zerolog.Logger
	store    *snapshot.Store
	slot     string
	playerID ecs.EntityID
	state    State
	stopped  map[ecs.EntityID]bool
	runLog   RunLog
}

// New builds the dungeon, its cast and their brains. screen may be nil for
// headless use; Run and Draw need one.
func New(screen tcell.Screen, opts Options) (*Sandbox, error) {
	opts.fill()
	if opts.Presets == nil {
		return nil, fmt.Errorf("sandbox: no presets")
	}
	levelRand := rng.New(opts.Seed, "levels").Rand()
	dungeon := generate.NewDungeon(generate.DungeonConfig{
		Depth:   opts.Depth,
		Width:   opts.Width,
		Height:  opts.Height,
		Weather: opts.Weather,
		Rand:    levelRand,
	})

	w := ecs.NewWorld()
	msgs := &message.Log{}
	fac := factory.New(w, opts.Presets)
	env := &brain.Env{
		World:   w,
		Levels:  dungeon.Levels,
		FOV:     system.ShadowcastFOV{},
		Pather:  system.AStar{},
		Rand:    rng.New(opts.Seed, "brains"),
		Msgs:    msgs,
		Log:     opts.Log,
		Tuning:  opts.Tuning,
		Factory: fac,
		Presets: opts.Presets,
	}
	s := &Sandbox{
		screen:  screen,
		world:   w,
		dungeon: dungeon,
		env:     env,
		reg:     brain.NewRegistry(env),
		factory: fac,
		msgs:    msgs,
		log:     opts.Log,
		store:   opts.Store,
		slot:    opts.Slot,
		stopped: make(map[ecs.EntityID]bool),
		runLog:  RunLog{Seed: opts.Seed, Started: time.Now()},
	}
	if screen != nil {
		s.renderer = render.NewRenderer(screen)
	}

	if err := s.populate(levelRand); err != nil {
		return nil, err
	}
	if err := s.createBrains(); err != nil {
		return nil, err
	}
	s.bindKeys()
	s.updateFOV()

	start := dungeon.Levels[dungeon.Start.Level]
	s.msgs.Add("You enter %s.", start.Name)
	if dungeon.Start.Level != dungeon.Field {
		s.msgs.Add("%s", assets.Lore(dungeon.Start.Level))
	}
	s.msgs.Add("Move with hjklyubn. t targets, f fires, x looks, M marks. Q quits.")
	s.log.Info().
		Str("seed", opts.Seed).
		Int("levels", len(dungeon.Levels)).
		Int("brains", s.reg.Len()).
		Msg("sandbox ready")
	return s, nil
}

// populate places the player, each level's cast, a spawner per dungeon
// level and a storm over the field.
func (s *Sandbox) populate(r *rand.Rand) error {
	d := s.dungeon
	id, err := s.factory.Create("player", d.Start.Level, d.Start.X, d.Start.Y)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	s.playerID = id

	monsters := s.factory.Shapes(filter.Set{{Prop: "spawnable", Op: filter.Eq, Value: true}})
	locals := s.factory.Shapes(filter.Set{{Prop: "brain", Op: filter.In, Value: []any{"human", "commander"}}})

	for lvl := 0; lvl <= d.DeepestDungeon; lvl++ {
		actors := monsters
		if lvl > 0 {
			actors = append(append([]string(nil), monsters...), "wizard")
		}
		cast := &generate.Cast{
			Actors:           actors,
			Extra:            lvl + 1,
			Hazards:          []string{"flame", "cloud"},
			HazardCount:      1 + lvl%2,
			Items:            assets.FloorItems,
			ItemCount:        3,
			Inscriptions:     assets.Writings,
			InscriptionCount: 2,
			Rand:             r,
		}
		if err := s.spawn(d.Levels[lvl], cast); err != nil {
			return err
		}
		if _, err := s.factory.Create("spawner", lvl, 0, 0); err != nil {
			return fmt.Errorf("create spawner: %w", err)
		}
	}

	field := d.Levels[d.Field]
	if err := s.spawn(field, &generate.Cast{
		Actors:    locals,
		Extra:     2,
		Items:     assets.FieldItems,
		ItemCount: 2,
		Rand:      r,
	}); err != nil {
		return err
	}
	if _, err := s.factory.Create("storm", d.Field, 0, 0); err != nil {
		return fmt.Errorf("create storm: %w", err)
	}
	return nil
}

func (s *Sandbox) spawn(gmap *gamemap.GameMap, cast *generate.Cast) error {
	res := generate.Populate(gmap, cast)
	occupied := func(x, y int) bool {
		pos, _ := ecs.Get[component.Position](s.world, s.playerID)
		return pos.Level == gmap.ID && pos.X == x && pos.Y == y
	}
	for _, sp := range append(res.Actors, res.Hazards...) {
		if occupied(sp.X, sp.Y) {
			continue
		}
		if _, err := s.factory.Create(sp.Shape, gmap.ID, sp.X, sp.Y); err != nil {
			return fmt.Errorf("populate %s: %w", gmap.Name, err)
		}
	}
	for _, it := range res.Items {
		factory.NewItem(s.world, it.Item, gmap.ID, it.X, it.Y)
	}
	for _, in := range res.Inscriptions {
		factory.NewInscription(s.world, in.Text, gmap.ID, in.X, in.Y)
	}
	return nil
}

// createBrains gives every entity with an AI component its brain.
func (s *Sandbox) createBrains() error {
	for _, id := range s.world.Query(component.CAI) {
		b, err := s.reg.Create(id)
		if err != nil {
			if id == s.playerID {
				return fmt.Errorf("player brain: %w", err)
			}
			s.log.Error().Err(err).Uint64("entity", uint64(id)).Msg("brain not created")
			continue
		}
		s.log.Debug().Uint64("entity", uint64(id)).Str("brain", b.Type).Msg("brain created")
	}
	return nil
}

// bindKeys routes the sandbox's own keys through the player brain so they
// are only seen when no prompt, menu or look mode claims the key.
func (s *Sandbox) bindKeys() {
	pl, ok := s.reg.Get(s.playerID)
	if !ok {
		return
	}
	pp, ok := pl.PlayerPolicy()
	if !ok {
		return
	}
	pp.BindKey('Q', func() brain.Decision {
		s.state = StateQuit
		return brain.Decision{}
	})
	pp.BindKey('S', func() brain.Decision {
		s.save()
		return brain.Decision{}
	})
	pp.BindKey('L', func() brain.Decision {
		s.load()
		return brain.Decision{}
	})
}

func (s *Sandbox) save() {
	if s.store == nil {
		s.msgs.Add("Snapshots are not enabled.")
		return
	}
	n, err := s.store.Save(s.slot, s.reg)
	if err != nil {
		s.log.Error().Err(err).Str("slot", s.slot).Msg("snapshot save failed")
		s.msgs.Add("Saving failed.")
		return
	}
	s.msgs.Add("Saved %d minds to %s.", n, s.slot)
}

func (s *Sandbox) load() {
	if s.store == nil {
		s.msgs.Add("Snapshots are not enabled.")
		return
	}
	n, err := s.store.Load(s.slot, s.reg)
	if err != nil {
		s.log.Error().Err(err).Str("slot", s.slot).Msg("snapshot load failed")
		s.msgs.Add("Loading failed.")
		return
	}
	s.msgs.Add("Restored %d minds from %s.", n, s.slot)
}

// State reports whether the sandbox is still running.
func (s *Sandbox) State() State { return s.state }

// Registry exposes the brains, mostly for tests and snapshots.
func (s *Sandbox) Registry() *brain.Registry { return s.reg }

func (s *Sandbox) World() *ecs.World { return s.world }

func (s *Sandbox) Dungeon() *generate.Dungeon { return s.dungeon }

func (s *Sandbox) Messages() *message.Log { return s.msgs }

func (s *Sandbox) PlayerID() ecs.EntityID { return s.playerID }
