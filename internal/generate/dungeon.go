package generate

import (
	"fmt"
	"math/rand"

	"roguemind/internal/gamemap"
)

// Dungeon is a set of connected levels and where the player starts.
type Dungeon struct {
	Levels         map[int]*gamemap.GameMap
	Start          gamemap.Link
	Field          int // ID of the open field level
	DeepestDungeon int
}

// DungeonConfig sizes a dungeon of Depth stacked BSP levels plus one open
// field east of the first level.
type DungeonConfig struct {
	Depth         int
	Width, Height int
	Weather       gamemap.Weather
	Rand          *rand.Rand
}

// NewDungeon generates Depth BSP levels joined by stairs. Level 0 has a
// tunnel to its east edge that leads to the field, which carries the
// configured weather.
func NewDungeon(cfg DungeonConfig) *Dungeon {
	d := &Dungeon{Levels: make(map[int]*gamemap.GameMap)}
	depth := max(cfg.Depth, 1)
	var prev *gamemap.GameMap
	for id := range depth {
		gmap, px, py := Generate(&Config{
			ID:            id,
			Name:          fmt.Sprintf("depth %d", id+1),
			Width:         cfg.Width,
			Height:        cfg.Height,
			MinLeafSize:   8,
			MaxLeafSize:   16,
			MinRoomSize:   4,
			RoomPadding:   1,
			CorridorStyle: CorridorStyle(id % 3),
			DoorChance:    0.5,
			ChasmChance:   0.3,
			Rand:          cfg.Rand,
		})
		if id == 0 {
			d.Start = gamemap.Link{Level: 0, X: px, Y: py}
		}
		if prev != nil {
			linkStairs(prev, gmap)
		}
		d.Levels[id] = gmap
		prev = gmap
	}
	d.DeepestDungeon = depth - 1

	d.Field = depth
	field := Field(d.Field, cfg.Width, cfg.Height, cfg.Weather, cfg.Rand)
	d.Levels[d.Field] = field
	tunnelEast(d.Levels[0])
	d.Levels[0].Passages[gamemap.SideEast] = field.ID
	field.Passages[gamemap.SideWest] = 0
	return d
}

// linkStairs puts stairs down in the last room of upper and stairs up in the
// first room of lower, linked both ways.
func linkStairs(upper, lower *gamemap.GameMap) {
	if len(upper.Rooms) == 0 || len(lower.Rooms) == 0 {
		return
	}
	dx, dy := upper.Rooms[len(upper.Rooms)-1].Center()
	ux, uy := lower.Rooms[0].Center()
	upper.Set(dx, dy, gamemap.MakeStairsDown())
	lower.Set(ux, uy, gamemap.MakeStairsUp())
	upper.Stairs[gamemap.Point{X: dx, Y: dy}] = gamemap.Link{Level: lower.ID, X: ux, Y: uy}
	lower.Stairs[gamemap.Point{X: ux, Y: uy}] = gamemap.Link{Level: upper.ID, X: dx, Y: dy}
}

// tunnelEast digs from the easternmost room to the east edge so the edge
// passage can be reached on foot.
func tunnelEast(gmap *gamemap.GameMap) {
	if len(gmap.Rooms) == 0 {
		return
	}
	east := gmap.Rooms[0]
	for _, r := range gmap.Rooms[1:] {
		if r.X2 > east.X2 {
			east = r
		}
	}
	cx, cy := east.Center()
	for x := cx; x < gmap.Width; x++ {
		if gmap.At(x, cy).Kind == gamemap.TileWall {
			gmap.Set(x, cy, gamemap.MakeFloor())
		}
	}
}

// Field builds an open level with scattered boulders and the given
// weather. Its west column is always clear for arrivals.
func Field(id, width, height int, weather gamemap.Weather, r *rand.Rand) *gamemap.GameMap {
	gmap := gamemap.New(width, height)
	gmap.ID = id
	gmap.Name = "the moor"
	gmap.Weather = weather
	for y := range height {
		for x := range width {
			if x > 1 && r.Float64() < 0.06 {
				continue
			}
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = []gamemap.Rect{{X1: 0, Y1: 0, X2: width - 1, Y2: height - 1}}
	return gmap
}
