package sandbox

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"roguemind/internal/actor"
	"roguemind/internal/brain"
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
	"roguemind/internal/render"
	"roguemind/internal/system"
	"roguemind/internal/targeting"
)

// Run is the main loop. It returns when the player quits, dies and
// dismisses the end line, or the screen goes away.
func (s *Sandbox) Run() {
	defer s.finish()
	for s.state == StatePlaying {
		s.Draw()
		if s.playerBusy() && !s.screen.HasPendingEvent() {
			s.step(brain.Input{})
			continue
		}
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.screen.Sync()
			s.renderer.Resize()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				s.state = StateQuit
				continue
			}
			s.step(brain.Input{Key: ev})
		}
	}
	if s.state != StateDead {
		return
	}
	s.msgs.Add("You die. Press any key.")
	s.Draw()
	for {
		switch s.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		}
	}
}

func (s *Sandbox) step(in brain.Input) {
	if err := s.Step(in); err != nil {
		s.log.Error().Err(err).Msg("player turn failed")
		s.state = StateQuit
	}
}

// Step feeds one input to the player brain. When the player spends the
// turn every other brain decides and acts in ID order, then damage and
// effects resolve.
func (s *Sandbox) Step(in brain.Input) error {
	pl, ok := s.reg.Get(s.playerID)
	if !ok {
		s.state = StateDead
		return nil
	}
	d, err := pl.Decide(in)
	if err != nil {
		return fmt.Errorf("player decide: %w", err)
	}
	d.Perform()
	if d.Kind == brain.NoAction {
		return nil
	}
	s.runLog.Turns++
	s.others()
	s.endTurn()
	return nil
}

// others lets every non-player brain take its turn. A brain that returns a
// configuration error is logged and never scheduled again.
func (s *Sandbox) others() {
	for _, id := range s.reg.IDs() {
		if id == s.playerID || s.stopped[id] || !s.world.Alive(id) {
			continue
		}
		b, ok := s.reg.Get(id)
		if !ok {
			continue
		}
		d, err := b.Decide(brain.Input{})
		if err != nil {
			s.log.Error().Err(err).
				Uint64("entity", uint64(id)).
				Str("brain", b.Type).
				Msg("brain stopped")
			s.stopped[id] = true
			continue
		}
		d.Perform()
		if !s.world.Alive(s.playerID) {
			break
		}
	}
}

func (s *Sandbox) endTurn() {
	system.TickEffects(s.world)
	for _, d := range system.ProcessDamage(s.world) {
		if d.ID == s.playerID {
			s.runLog.CauseOfDeath = s.describe(d.Source)
		}
	}
	for _, id := range s.reg.Prune() {
		delete(s.stopped, id)
		if id != s.playerID {
			s.runLog.Deaths++
		}
	}
	if !s.world.Alive(s.playerID) {
		s.state = StateDead
		if s.runLog.CauseOfDeath == "" {
			s.runLog.CauseOfDeath = "a blow"
		}
		return
	}
	s.updateFOV()
}

func (s *Sandbox) describe(id ecs.EntityID) string {
	if !s.world.Alive(id) {
		return "the elements"
	}
	return actor.New(s.world, id).Name()
}

func (s *Sandbox) playerBusy() bool {
	pp, ok := s.playerPolicy()
	return ok && pp.Busy()
}

func (s *Sandbox) playerPolicy() (*brain.Player, bool) {
	pl, ok := s.reg.Get(s.playerID)
	if !ok {
		return nil, false
	}
	return pl.PlayerPolicy()
}

// updateFOV recomputes what the player sees on its current level.
func (s *Sandbox) updateFOV() {
	pos, ok := ecs.Get[component.Position](s.world, s.playerID)
	if !ok {
		return
	}
	gmap := s.dungeon.Levels[pos.Level]
	if gmap == nil {
		return
	}
	system.UpdateFOV(gmap, pos.X, pos.Y, s.env.Tuning.FOVRadius)
	s.runLog.DeepestLevel = max(s.runLog.DeepestLevel, min(pos.Level, s.dungeon.DeepestDungeon))
}

// Draw renders the player's level, overlays and HUD.
func (s *Sandbox) Draw() {
	if s.renderer == nil {
		return
	}
	pos, ok := ecs.Get[component.Position](s.world, s.playerID)
	if !ok {
		s.renderer.DrawHUD(render.Status{Stance: "dead"}, s.msgs.Lines(), "", nil)
		return
	}
	gmap := s.dungeon.Levels[pos.Level]
	if pos.Level == s.dungeon.Field {
		s.renderer.SetTheme(render.FieldTheme)
	} else {
		s.renderer.SetTheme(render.DungeonTheme(pos.Level))
	}
	s.renderer.CenterOn(gmap, pos.X, pos.Y)

	var (
		ov     render.Overlay
		prompt string
		panel  *render.Panel
	)
	if pp, ok := s.playerPolicy(); ok {
		ov = overlay(pp.Targeting())
		prompt = pp.Prompt()
		if m := pp.Menu(); m != nil {
			panel = &render.Panel{Title: m.Title, Lines: m.Lines()}
		}
	}
	s.renderer.DrawFrame(s.world, gmap, ov)
	s.renderer.DrawHUD(s.status(gmap), s.msgs.Lines(), prompt, panel)
}

func overlay(t *targeting.FSM) render.Overlay {
	var ov render.Overlay
	switch t.State() {
	case targeting.Targeting:
		ov.Path = t.Selected()
		if c, ok := t.Target(); ok {
			ov.Target = &gamemap.Point{X: c.X, Y: c.Y}
		}
	case targeting.Looking:
		c := t.Cursor()
		ov.Cursor = &c
	}
	return ov
}

func (s *Sandbox) status(gmap *gamemap.GameMap) render.Status {
	st := render.Status{Level: gmap.Name, Weather: gmap.Weather, Stance: component.StanceNormal.String()}
	if hp, ok := ecs.Get[component.Health](s.world, s.playerID); ok {
		st.HP, st.MaxHP = hp.Current, hp.Max
	}
	if cbt, ok := ecs.Get[component.Combat](s.world, s.playerID); ok {
		st.Stance = cbt.Stance.String()
	}
	if pp, ok := s.playerPolicy(); ok {
		st.Running = pp.RunMode()
	}
	return st
}

func (s *Sandbox) finish() {
	s.runLog.Outcome = outcome(s.state)
	if err := saveRunLog(s.runLog); err != nil {
		s.log.Warn().Err(err).Msg("run log not written")
	}
	s.log.Info().
		Int("turns", s.runLog.Turns).
		Int("deaths", s.runLog.Deaths).
		Str("outcome", s.runLog.Outcome).
		Msg("sandbox finished")
}

func outcome(st State) string {
	switch st {
	case StateDead:
		return "died"
	case StateQuit:
		return "quit"
	}
	return "disconnected"
}
