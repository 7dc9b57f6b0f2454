// Package render draws a level, its actors and the player's overlays onto a
// tcell screen.
package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 5

// Overlay is what the player is pointing at this frame.
type Overlay struct {
	Path   []gamemap.Point // planned shot, drawn under actors
	Target *gamemap.Point
	Cursor *gamemap.Point // look mode
}

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(h-HUDRows, 1)),
		theme:  DungeonTheme(0),
	}
}

// Resize refits the viewport after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(h-HUDRows, 1)
}

// SetTheme selects the terrain glyphs.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// CenterOn recenters the camera on world position (x, y) of gmap.
func (r *Renderer) CenterOn(gmap *gamemap.GameMap, x, y int) {
	r.camera.Center(x, y)
	r.camera.Clamp(gmap.Width, gmap.Height)
}

// WorldToScreen converts world coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// DrawFrame clears the screen and renders tiles, the overlay and the
// actors standing on gmap.
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap, ov Overlay) {
	r.screen.Clear()
	r.drawMap(gmap)
	r.drawOverlay(gmap, ov)
	r.drawEntities(w, gmap)
	if ov.Cursor != nil {
		r.drawAt(*ov.Cursor, GlyphCursor)
	}
}

// drawMap renders all visible/explored tiles using the theme's glyphs.
func (r *Renderer) drawMap(gmap *gamemap.GameMap) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			tile := gmap.At(x, y)
			if !tile.Visible && !tile.Explored {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			r.putGlyph(sx, sy, r.tileGlyph(*tile), style)
		}
	}
}

func (r *Renderer) tileGlyph(t gamemap.Tile) string {
	switch t.Kind {
	case gamemap.TileDoor:
		if t.Open {
			return GlyphDoorOpen
		}
		return GlyphDoorClosed
	case gamemap.TileStairsDown:
		return GlyphStairsDown
	case gamemap.TileStairsUp:
		return GlyphStairsUp
	case gamemap.TileChasm:
		return GlyphChasm
	case gamemap.TileWall:
		if t.Visible {
			return r.theme.Wall
		}
		return r.theme.DimWall
	}
	if t.Visible {
		return r.theme.Floor
	}
	return r.theme.DimFloor
}

func (r *Renderer) drawOverlay(gmap *gamemap.GameMap, ov Overlay) {
	for _, p := range ov.Path {
		if gmap.InBounds(p.X, p.Y) && gmap.At(p.X, p.Y).Visible {
			r.drawAt(p, GlyphPath)
		}
	}
	if ov.Target != nil {
		r.drawAt(*ov.Target, GlyphTarget)
	}
}

func (r *Renderer) drawAt(p gamemap.Point, glyph string) {
	if sx, sy, ok := r.camera.WorldToScreen(p.X, p.Y); ok {
		r.putGlyph(sx, sy, glyph, tcell.StyleDefault.Background(tcell.ColorBlack))
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders the entities on gmap's visible cells, ordered by
// RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World, gmap *gamemap.GameMap) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos, ok := ecs.Get[component.Position](w, id)
		if !ok || pos.Level != gmap.ID {
			continue
		}
		rend, ok := ecs.Get[component.Renderable](w, id)
		if !ok {
			continue
		}
		if !gmap.InBounds(pos.X, pos.Y) || !gmap.At(pos.X, pos.Y).Visible {
			continue
		}
		entities = append(entities, renderableEntity{id: id, order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Lower order is drawn first; Query already sorted by ID.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
