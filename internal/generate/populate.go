package generate

import (
	"math/rand"

	"roguemind/internal/component"
	"roguemind/internal/gamemap"
)

// Cast lists what Populate may place on one level.
type Cast struct {
	Actors           []string // one per placeable room, cycled
	Extra            int      // further actors drawn at random from Actors
	Hazards          []string
	HazardCount      int
	Items            []component.Item
	ItemCount        int
	Inscriptions     []string
	InscriptionCount int
	Rand             *rand.Rand
}

// Spawn is one shape to create at (X, Y).
type Spawn struct {
	Shape string
	X, Y  int
}

// ItemSpawn is one floor item.
type ItemSpawn struct {
	Item component.Item
	X, Y int
}

// InscriptionSpawn is one floor writing.
type InscriptionSpawn struct {
	Text string
	X, Y int
}

// PopulateResult is what Populate decided to place. Creating the entities
// is left to the caller.
type PopulateResult struct {
	Actors       []Spawn
	Hazards      []Spawn
	Items        []ItemSpawn
	Inscriptions []InscriptionSpawn
}

// Populate scatters the cast over the rooms of gmap. The first room is kept
// clear of actors when there is more than one. No two placements share a
// cell and nothing lands on an unwalkable tile.
func Populate(gmap *gamemap.GameMap, cast *Cast) PopulateResult {
	var result PopulateResult
	rooms := gmap.Rooms
	if len(rooms) == 0 {
		return result
	}
	placeable := rooms
	if len(rooms) > 1 {
		placeable = rooms[1:]
	}

	occupied := make(map[gamemap.Point]bool)
	place := func(room gamemap.Rect) (gamemap.Point, bool) {
		p, ok := pickFreeInRoom(gmap, room, cast.Rand, occupied)
		if ok {
			occupied[p] = true
		}
		return p, ok
	}

	if len(cast.Actors) > 0 {
		for i, room := range placeable {
			if p, ok := place(room); ok {
				result.Actors = append(result.Actors, Spawn{Shape: cast.Actors[i%len(cast.Actors)], X: p.X, Y: p.Y})
			}
		}
		for range cast.Extra {
			room := placeable[cast.Rand.Intn(len(placeable))]
			if p, ok := place(room); ok {
				shape := cast.Actors[cast.Rand.Intn(len(cast.Actors))]
				result.Actors = append(result.Actors, Spawn{Shape: shape, X: p.X, Y: p.Y})
			}
		}
	}

	for i := 0; i < cast.HazardCount && len(cast.Hazards) > 0; i++ {
		room := placeable[cast.Rand.Intn(len(placeable))]
		if p, ok := place(room); ok {
			shape := cast.Hazards[cast.Rand.Intn(len(cast.Hazards))]
			result.Hazards = append(result.Hazards, Spawn{Shape: shape, X: p.X, Y: p.Y})
		}
	}

	for i := 0; i < cast.ItemCount && len(cast.Items) > 0; i++ {
		room := rooms[cast.Rand.Intn(len(rooms))]
		if p, ok := place(room); ok {
			it := cast.Items[cast.Rand.Intn(len(cast.Items))]
			result.Items = append(result.Items, ItemSpawn{Item: it, X: p.X, Y: p.Y})
		}
	}

	pool := append([]string(nil), cast.Inscriptions...)
	cast.Rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, text := range pool[:min(cast.InscriptionCount, len(pool))] {
		room := rooms[cast.Rand.Intn(len(rooms))]
		if p, ok := place(room); ok {
			result.Inscriptions = append(result.Inscriptions, InscriptionSpawn{Text: text, X: p.X, Y: p.Y})
		}
	}
	return result
}

// pickFreeInRoom tries a bounded number of random cells of room and returns
// the first walkable, unclaimed one.
func pickFreeInRoom(gmap *gamemap.GameMap, room gamemap.Rect, r *rand.Rand, occupied map[gamemap.Point]bool) (gamemap.Point, bool) {
	const maxAttempts = 30
	for range maxAttempts {
		p := randomInRoom(room, r)
		if !occupied[p] && gmap.IsWalkable(p.X, p.Y) {
			return p, true
		}
	}
	return gamemap.Point{}, false
}

// randomInRoom keeps off the room's outer ring, where door mouths are,
// unless the room is too small to have an inside.
func randomInRoom(room gamemap.Rect, r *rand.Rand) gamemap.Point {
	x1, y1 := room.X1+1, room.Y1+1
	x2, y2 := room.X2-1, room.Y2-1
	if x1 > x2 || y1 > y2 {
		x1, y1 = room.X1, room.Y1
		x2, y2 = room.X2, room.Y2
	}
	return gamemap.Point{
		X: x1 + r.Intn(x2-x1+1),
		Y: y1 + r.Intn(y2-y1+1),
	}
}
