package system

import (
	"roguemind/internal/component"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK       MoveResult = iota // position updated
	MoveBlocked                    // wall, closed door or out-of-bounds
	MoveOccupied                   // a blocking actor holds the destination
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveOccupied:
		return "occupied"
	}
	return "blocked"
}

// ActorsAt returns the entities standing on (x, y) of level, in ID order.
func ActorsAt(w *ecs.World, level, x, y int) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range w.Query(component.CPosition) {
		pos, _ := ecs.Get[component.Position](w, id)
		if pos.Level == level && pos.X == x && pos.Y == y {
			out = append(out, id)
		}
	}
	return out
}

// BlockerAt returns the first blocking, non-ethereal actor on (x, y) other
// than except.
func BlockerAt(w *ecs.World, level, x, y int, except ecs.EntityID) (ecs.EntityID, bool) {
	for _, id := range ActorsAt(w, level, x, y) {
		if id == except || w.Has(id, component.CTagEthereal) {
			continue
		}
		if w.Has(id, component.CTagBlocking) {
			return id, true
		}
	}
	return ecs.NilEntity, false
}

// CanEnter reports whether id could stand on (x, y): the tile must be
// walkable, or air-passable for flyers, and free of other blockers.
func CanEnter(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, x, y int) bool {
	if !gmap.InBounds(x, y) {
		return false
	}
	if !gmap.IsWalkable(x, y) && !(w.Has(id, component.CTagFlying) && gmap.IsAirPassable(x, y)) {
		return false
	}
	_, blocked := BlockerAt(w, gmap.ID, x, y, id)
	return !blocked
}

// TryMove attempts to move entity id by (dx, dy) on gmap.
// Returns the outcome and, for MoveOccupied, the blocking entity.
func TryMove(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	pos, ok := ecs.Get[component.Position](w, id)
	if !ok {
		return MoveBlocked, ecs.NilEntity
	}
	nx, ny := pos.X+dx, pos.Y+dy
	if !gmap.InBounds(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}
	if other, blocked := BlockerAt(w, pos.Level, nx, ny, id); blocked && !w.Has(id, component.CTagEthereal) {
		return MoveOccupied, other
	}
	flying := w.Has(id, component.CTagFlying)
	if !gmap.IsWalkable(nx, ny) && !(flying && gmap.IsAirPassable(nx, ny)) {
		return MoveBlocked, ecs.NilEntity
	}
	pos.X, pos.Y = nx, ny
	w.Add(id, pos)
	return MoveOK, ecs.NilEntity
}

// Place puts id on (x, y) of level, replacing any previous position.
func Place(w *ecs.World, id ecs.EntityID, level, x, y int) {
	w.Add(id, component.Position{X: x, Y: y, Level: level})
}

// ToggleDoor opens a closed door or closes an open one. A door with an actor
// in its frame stays open. Returns false if (x, y) is not a usable door.
func ToggleDoor(w *ecs.World, gmap *gamemap.GameMap, x, y int) bool {
	if !gmap.InBounds(x, y) {
		return false
	}
	t := gmap.At(x, y)
	if t.Kind != gamemap.TileDoor {
		return false
	}
	if t.Open && len(ActorsAt(w, gmap.ID, x, y)) > 0 {
		return false
	}
	t.SetOpen(!t.Open)
	return true
}

// FreeCells returns every walkable cell of gmap with no blocking actor,
// in row-major order.
func FreeCells(w *ecs.World, gmap *gamemap.GameMap) []gamemap.Point {
	occupied := make(map[gamemap.Point]struct{})
	for _, id := range w.Query(component.CPosition, component.CTagBlocking) {
		pos, _ := ecs.Get[component.Position](w, id)
		if pos.Level == gmap.ID {
			occupied[gamemap.Point{X: pos.X, Y: pos.Y}] = struct{}{}
		}
	}
	var out []gamemap.Point
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			p := gamemap.Point{X: x, Y: y}
			if _, taken := occupied[p]; taken || !gmap.IsWalkable(x, y) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
