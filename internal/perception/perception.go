// Package perception holds free functions over the cells an actor can see.
package perception

import (
	"roguemind/internal/actor"
	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
	"roguemind/internal/memory"
	"roguemind/internal/rng"
)

// Cell is one visible map cell and the actors standing on it.
type Cell struct {
	X, Y   int
	Actors []actor.Ref
}

// CellsAt attaches the actors of level to each of points. Order follows
// points.
func CellsAt(w *ecs.World, level int, points []gamemap.Point) []Cell {
	byPoint := make(map[gamemap.Point][]actor.Ref)
	for _, r := range actor.OnLevel(w, level) {
		x, y := r.XY()
		p := gamemap.Point{X: x, Y: y}
		byPoint[p] = append(byPoint[p], r)
	}
	cells := make([]Cell, len(points))
	for i, p := range points {
		cells[i] = Cell{X: p.X, Y: p.Y, Actors: byPoint[p]}
	}
	return cells
}

func findCells(cells []Cell, self ecs.EntityID, match func(actor.Ref) bool) []Cell {
	var out []Cell
	for _, c := range cells {
		for _, a := range c.Actors {
			if a.ID() != self && match(a) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// FindEnemyCells returns the cells holding at least one enemy of mem.
func FindEnemyCells(mem *memory.Memory, cells []Cell, self ecs.EntityID) []Cell {
	return findCells(cells, self, func(a actor.Ref) bool { return mem.IsEnemy(a) })
}

// FindFriendCells returns the cells holding at least one friend of mem.
func FindFriendCells(mem *memory.Memory, cells []Cell, self ecs.EntityID) []Cell {
	return findCells(cells, self, func(a actor.Ref) bool { return mem.IsFriend(a) })
}

// PickTarget applies the target tie-break to candidate cells: a cell holding
// the last attacked actor wins outright, otherwise one is drawn uniformly.
// It returns the index into candidates, or -1 when there are none.
func PickTarget(mem *memory.Memory, candidates []Cell, src *rng.Source) int {
	if len(candidates) == 0 {
		return -1
	}
	if last, ok := mem.LastAttackedID(); ok {
		for i, c := range candidates {
			for _, a := range c.Actors {
				if a.ID() == last {
					return i
				}
			}
		}
	}
	return src.Intn(len(candidates))
}

// FindEnemyCell picks one enemy cell using the target tie-break.
func FindEnemyCell(mem *memory.Memory, cells []Cell, self ecs.EntityID, src *rng.Source) (Cell, bool) {
	candidates := FindEnemyCells(mem, cells, self)
	i := PickTarget(mem, candidates, src)
	if i < 0 {
		return Cell{}, false
	}
	return candidates[i], true
}

// FindFriendCell picks one friendly cell uniformly.
func FindFriendCell(mem *memory.Memory, cells []Cell, self ecs.EntityID, src *rng.Source) (Cell, bool) {
	return rng.Pick(src, FindFriendCells(mem, cells, self))
}

// CellsAround returns the cells within the box of half-width r around (x, y).
func CellsAround(cells []Cell, x, y, r int) []Cell {
	var out []Cell
	for _, c := range cells {
		if gamemap.Chebyshev(c.X, c.Y, x, y) <= r {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether (x, y) is among cells, i.e. in line of sight.
func Contains(cells []Cell, x, y int) bool {
	_, ok := CellAt(cells, x, y)
	return ok
}

func CellAt(cells []Cell, x, y int) (Cell, bool) {
	for _, c := range cells {
		if c.X == x && c.Y == y {
			return c, true
		}
	}
	return Cell{}, false
}

// ActorsOf flattens the actors of cells.
func ActorsOf(cells []Cell) []actor.Ref {
	var out []actor.Ref
	for _, c := range cells {
		out = append(out, c.Actors...)
	}
	return out
}
