package generate

import "roguemind/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in the configured
// style.
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		mid := (y1 + y2) / 2
		carveV(gmap, y1, mid, x1)
		carveH(gmap, x1, x2, mid)
		carveV(gmap, mid, y2, x2)
	case CorridorStraight:
		carveH(gmap, x1, x2, y1)
		carveV(gmap, y1, y2, x2)
	default:
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, x1, x2, y1)
			carveV(gmap, y1, y2, x2)
		} else {
			carveV(gmap, y1, y2, x1)
			carveH(gmap, x1, x2, y2)
		}
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if gmap.InBounds(x, y) && gmap.At(x, y).Kind == gamemap.TileWall {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if gmap.InBounds(x, y) && gmap.At(x, y).Kind == gamemap.TileWall {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

// placeDoors hangs closed doors in corridor mouths: floor cells just outside
// a room whose neighbours along the room edge are both wall.
func placeDoors(gmap *gamemap.GameMap, cfg *Config) {
	if cfg.DoorChance <= 0 {
		return
	}
	for _, r := range gmap.Rooms {
		var mouths [][2]int
		for x := r.X1; x <= r.X2; x++ {
			mouths = append(mouths, [2]int{x, r.Y1 - 1}, [2]int{x, r.Y2 + 1})
		}
		for y := r.Y1; y <= r.Y2; y++ {
			mouths = append(mouths, [2]int{r.X1 - 1, y}, [2]int{r.X2 + 1, y})
		}
		for _, m := range mouths {
			x, y := m[0], m[1]
			if !isMouth(gmap, r, x, y) || cfg.Rand.Float64() >= cfg.DoorChance {
				continue
			}
			gmap.Set(x, y, gamemap.MakeDoor())
		}
	}
}

func isMouth(gmap *gamemap.GameMap, r gamemap.Rect, x, y int) bool {
	if !gmap.InBounds(x, y) || gmap.At(x, y).Kind != gamemap.TileFloor || inAnyRoom(gmap, x, y) {
		return false
	}
	wall := func(x, y int) bool { return !gmap.InBounds(x, y) || gmap.At(x, y).Kind == gamemap.TileWall }
	if y == r.Y1-1 || y == r.Y2+1 {
		return wall(x-1, y) && wall(x+1, y)
	}
	return wall(x, y-1) && wall(x, y+1)
}

func inAnyRoom(gmap *gamemap.GameMap, x, y int) bool {
	for _, r := range gmap.Rooms {
		if x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2 {
			return true
		}
	}
	return false
}

// placeChasms opens a 2×2 pit in the top-left interior of rooms at least
// 7×7. The room's outer ring and centre lines stay floor, so every corridor
// through the room can still walk around it.
func placeChasms(gmap *gamemap.GameMap, cfg *Config) {
	if cfg.ChasmChance <= 0 {
		return
	}
	for _, r := range gmap.Rooms {
		if r.X2-r.X1+1 < 7 || r.Y2-r.Y1+1 < 7 || cfg.Rand.Float64() >= cfg.ChasmChance {
			continue
		}
		fill(gmap, gamemap.Rect{X1: r.X1 + 1, Y1: r.Y1 + 1, X2: r.X1 + 2, Y2: r.Y1 + 2}, gamemap.MakeChasm)
	}
}
