package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatal(err)
	}
	ss.SetSize(w, h)
	t.Cleanup(ss.Fini)
	return ss
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func litMap(w, h int) *gamemap.GameMap {
	gmap := gamemap.New(w, h)
	for y := range h {
		for x := range w {
			gmap.Set(x, y, gamemap.MakeFloor())
			gmap.At(x, y).Visible = true
		}
	}
	return gmap
}

func firstRune(s string) rune { return []rune(s)[0] }

func TestCameraCenterAndClamp(t *testing.T) {
	c := NewCamera(10, 5, 20, 10)
	if c.OffsetX != 5 || c.OffsetY != 0 {
		t.Fatalf("offset = (%d,%d), want (5,0)", c.OffsetX, c.OffsetY)
	}
	if sx, sy, ok := c.WorldToScreen(10, 5); !ok || sx != 10 || sy != 5 {
		t.Errorf("centre maps to (%d,%d,%v)", sx, sy, ok)
	}

	c.Center(0, 0)
	c.Clamp(40, 30)
	if c.OffsetX != 0 || c.OffsetY != 0 {
		t.Errorf("clamped low offset = (%d,%d)", c.OffsetX, c.OffsetY)
	}
	c.Center(39, 29)
	c.Clamp(40, 30)
	if c.OffsetX != 30 || c.OffsetY != 20 {
		t.Errorf("clamped high offset = (%d,%d), want (30,20)", c.OffsetX, c.OffsetY)
	}

	c.Center(2, 2)
	c.Clamp(6, 4)
	if c.OffsetX != 2-5 || c.OffsetY != 2-5 {
		t.Errorf("small map should not clamp, got (%d,%d)", c.OffsetX, c.OffsetY)
	}
}

func TestCameraScreenToWorld(t *testing.T) {
	c := NewCamera(10, 10, 20, 10)
	sx, sy, _ := c.WorldToScreen(12, 8)
	if x, y := c.ScreenToWorld(sx, sy); x != 12 || y != 8 {
		t.Errorf("round trip gave (%d,%d)", x, y)
	}
}

func TestDrawFrameTilesAndActors(t *testing.T) {
	ss := newScreen(t, 40, 15)
	r := NewRenderer(ss)
	gmap := litMap(10, 5)
	gmap.Set(1, 1, gamemap.MakeChasm())
	gmap.At(1, 1).Visible = true
	gmap.At(6, 3).Visible = false

	w := ecs.NewWorld()
	place := func(glyph string, x, y, level int) {
		id := w.CreateEntity()
		w.Add(id, component.Position{X: x, Y: y, Level: level})
		w.Add(id, component.Renderable{Glyph: glyph, FGColor: tcell.ColorRed})
	}
	place("g", 3, 2, 0)
	place("x", 4, 2, 1)
	place("h", 6, 3, 0)

	r.CenterOn(gmap, 5, 2)
	r.DrawFrame(w, gmap, Overlay{})

	at := func(x, y int) rune {
		sx, sy, ok := r.WorldToScreen(x, y)
		if !ok {
			t.Fatalf("(%d,%d) off screen", x, y)
		}
		c, _, _, _ := ss.GetContent(sx, sy)
		return c
	}
	if got := at(3, 2); got != 'g' {
		t.Errorf("actor cell shows %q", got)
	}
	if got := at(4, 2); got != firstRune(DungeonTheme(0).Floor) {
		t.Errorf("actor from another level drawn: %q", got)
	}
	if got := at(6, 3); got == 'h' {
		t.Error("actor on an unseen cell drawn")
	}
	if got := at(1, 1); got != firstRune(GlyphChasm) {
		t.Errorf("chasm shows %q", got)
	}
}

func TestDrawFrameOverlay(t *testing.T) {
	ss := newScreen(t, 40, 15)
	r := NewRenderer(ss)
	gmap := litMap(10, 5)
	r.CenterOn(gmap, 5, 2)

	target := gamemap.Point{X: 7, Y: 2}
	cursor := gamemap.Point{X: 2, Y: 4}
	r.DrawFrame(ecs.NewWorld(), gmap, Overlay{
		Path:   []gamemap.Point{{X: 5, Y: 2}, {X: 6, Y: 2}, target},
		Target: &target,
		Cursor: &cursor,
	})

	check := func(p gamemap.Point, glyph string) {
		t.Helper()
		sx, sy, _ := r.WorldToScreen(p.X, p.Y)
		if c, _, _, _ := ss.GetContent(sx, sy); c != firstRune(glyph) {
			t.Errorf("(%d,%d) shows %q, want %q", p.X, p.Y, c, glyph)
		}
	}
	check(gamemap.Point{X: 5, Y: 2}, GlyphPath)
	check(target, GlyphTarget)
	check(cursor, GlyphCursor)
}

func TestTileGlyphDoors(t *testing.T) {
	r := &Renderer{theme: FieldTheme}
	door := gamemap.MakeDoor()
	if got := r.tileGlyph(door); got != GlyphDoorClosed {
		t.Errorf("closed door = %q", got)
	}
	door.SetOpen(true)
	if got := r.tileGlyph(door); got != GlyphDoorOpen {
		t.Errorf("open door = %q", got)
	}
	wall := gamemap.MakeWall()
	if got := r.tileGlyph(wall); got != FieldTheme.DimWall {
		t.Errorf("unlit wall = %q", got)
	}
}

func TestStatusString(t *testing.T) {
	st := Status{HP: 7, MaxHP: 20, Stance: "defensive", Running: true, Level: "the moor",
		Weather: gamemap.Weather{Active: true, Kind: "rain", Temperature: 4}}
	got := st.String()
	for _, want := range []string{"HP: 7/20", "Stance: defensive", "[run]", "the moor", "rain 4°"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q missing %q", got, want)
		}
	}
	st.Weather.Active = false
	if strings.Contains(st.String(), "rain") {
		t.Error("inactive weather shown")
	}
}

func TestDrawHUD(t *testing.T) {
	ss := newScreen(t, 60, 15)
	r := NewRenderer(ss)
	msgs := []string{"one", "two", "three", "four"}

	r.DrawHUD(Status{HP: 3, MaxHP: 9, Stance: "normal", Level: "depth 1"}, msgs, "", nil)
	if got := row(ss, 11); !strings.Contains(got, "HP: 3/9") {
		t.Errorf("status row = %q", got)
	}
	if got := row(ss, 12); !strings.HasPrefix(got, "two") {
		t.Errorf("first log row = %q, want the last three messages", got)
	}
	if got := row(ss, 14); !strings.HasPrefix(got, "four") {
		t.Errorf("last log row = %q", got)
	}

	r.DrawHUD(Status{}, msgs, "Attack the villager?", &Panel{Title: "Use which?", Lines: []string{"a) bread"}})
	if got := row(ss, 14); !strings.HasPrefix(got, "Attack the villager? (y/n)") {
		t.Errorf("prompt row = %q", got)
	}
	if got := row(ss, 1); !strings.Contains(got, "Use which?") {
		t.Errorf("panel title row = %q", got)
	}
	if got := row(ss, 2); !strings.Contains(got, "a) bread") {
		t.Errorf("panel line row = %q", got)
	}
}

func TestDungeonThemeCycles(t *testing.T) {
	if DungeonTheme(len(DungeonThemes)) != DungeonTheme(0) {
		t.Error("themes should cycle with depth")
	}
	if DungeonTheme(-3) != DungeonTheme(0) {
		t.Error("negative depth should use the first theme")
	}
}
