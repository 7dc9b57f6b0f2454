package system

import (
	"slices"

	"roguemind/internal/gamemap"
)

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// ShadowcastFOV computes visibility with recursive shadowcasting. It has no
// state and never touches the map.
type ShadowcastFOV struct{}

// Visible returns every cell observable from (x, y) within radius, origin
// included, ordered by row then column.
func (ShadowcastFOV) Visible(gmap *gamemap.GameMap, x, y, radius int) []gamemap.Point {
	if gmap == nil || !gmap.InBounds(x, y) {
		return nil
	}
	seen := map[gamemap.Point]struct{}{{X: x, Y: y}: {}}
	mark := func(px, py int) { seen[gamemap.Point{X: px, Y: py}] = struct{}{} }
	for _, m := range octants {
		castLight(gmap, mark, x, y, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
	out := make([]gamemap.Point, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b gamemap.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// UpdateFOV resets tile visibility and marks what is seen from (x, y) as
// visible and explored. The renderer reads these flags.
func UpdateFOV(gmap *gamemap.GameMap, x, y, radius int) {
	for ty := 0; ty < gmap.Height; ty++ {
		for tx := 0; tx < gmap.Width; tx++ {
			gmap.At(tx, ty).Visible = false
		}
	}
	for _, p := range (ShadowcastFOV{}).Visible(gmap, x, y, radius) {
		t := gmap.At(p.X, p.Y)
		t.Visible = true
		t.Explored = true
	}
}

// castLight casts light for one octant.
//
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep
//   - dx sweeps from -j to 0
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
func castLight(gmap *gamemap.GameMap, mark func(x, y int), cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && gmap.InBounds(wx, wy) {
				mark(wx, wy)
			}

			opaque := !gmap.InBounds(wx, wy) || !gmap.IsTransparent(wx, wy)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(gmap, mark, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
