package gamemap

// Line returns the Bresenham line from (x0, y0) to (x1, y1), both ends
// included.
func Line(x0, y0, x1, y1 int) []Point {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	pts := make([]Point, 0, max(dx, -dy)+1)
	for {
		pts = append(pts, Point{x0, y0})
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Chebyshev is the king-move distance between two cells.
func Chebyshev(x0, y0, x1, y1 int) int {
	return max(abs(x1-x0), abs(y1-y0))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
