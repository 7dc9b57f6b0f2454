package system

import (
	"container/heap"

	"roguemind/internal/gamemap"
)

var stepOffsets = [...]gamemap.Point{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// AStar finds 8-connected shortest paths where every step costs one turn.
type AStar struct{}

type pathNode struct {
	point  gamemap.Point
	g      int
	f      int
	order  int
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].order < pq[j].order
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	item := x.(*pathNode)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// Path returns the steps from (x0, y0) to (x1, y1), closest first and
// excluding the start. The goal cell is exempt from passable so a path can
// end on an occupied cell. A nil passable means map walkability. An empty
// result means there is no path.
func (AStar) Path(gmap *gamemap.GameMap, x0, y0, x1, y1 int, passable func(x, y int) bool) []gamemap.Point {
	if gmap == nil || !gmap.InBounds(x0, y0) || !gmap.InBounds(x1, y1) {
		return nil
	}
	if x0 == x1 && y0 == y1 {
		return nil
	}
	if passable == nil {
		passable = gmap.IsWalkable
	}
	start := gamemap.Point{X: x0, Y: y0}
	goal := gamemap.Point{X: x1, Y: y1}

	open := &pathQueue{}
	heap.Init(open)
	order := 0
	heap.Push(open, &pathNode{point: start, f: gamemap.Chebyshev(x0, y0, x1, y1)})
	gScore := map[gamemap.Point]int{start: 0}
	closed := make(map[gamemap.Point]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.point]; seen {
			continue
		}
		closed[current.point] = struct{}{}
		if current.point == goal {
			return reconstructPath(current)
		}
		for _, d := range stepOffsets {
			next := gamemap.Point{X: current.point.X + d.X, Y: current.point.Y + d.Y}
			if !gmap.InBounds(next.X, next.Y) {
				continue
			}
			if next != goal && !passable(next.X, next.Y) {
				continue
			}
			if _, seen := closed[next]; seen {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[next]; ok && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			order++
			heap.Push(open, &pathNode{
				point:  next,
				g:      tentative,
				f:      tentative + gamemap.Chebyshev(next.X, next.Y, x1, y1),
				order:  order,
				parent: current,
			})
		}
	}
	return nil
}

func reconstructPath(end *pathNode) []gamemap.Point {
	var path []gamemap.Point
	for node := end; node.parent != nil; node = node.parent {
		path = append(path, node.point)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}
