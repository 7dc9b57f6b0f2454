// Package generate builds the sandbox levels: BSP room-and-corridor
// dungeons joined by stairs, and an open field reached across a map edge.
package generate

import (
	"math/rand"

	"roguemind/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives generation of one BSP level.
type Config struct {
	ID, Width, Height int
	Name              string
	MinLeafSize       int
	MaxLeafSize       int
	MinRoomSize       int
	RoomPadding       int
	CorridorStyle     CorridorStyle
	DoorChance        float64 // per corridor mouth
	ChasmChance       float64 // per room big enough to hold one
	Rand              *rand.Rand
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

func (l *bspLeaf) leaf() bool { return l.left == nil && l.right == nil }

// split divides the leaf in two, returning false when it is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if !l.leaf() {
		return false
	}
	horizontal := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		horizontal = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		horizontal = true
	}

	size := l.W
	if horizontal {
		size = l.H
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if size <= cfg.MinLeafSize*2 || lo >= hi {
		return false
	}
	cut := lo + cfg.Rand.Intn(hi-lo+1)

	if horizontal {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: cut}
		l.right = &bspLeaf{X: l.X, Y: l.Y + cut, W: l.W, H: l.H - cut}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: cut, H: l.H}
		l.right = &bspLeaf{X: l.X + cut, Y: l.Y, W: l.W - cut, H: l.H}
	}
	return true
}

// createRooms carves one room inside every terminal leaf, keeping a one-tile
// wall border around the map.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config) {
	if !l.leaf() {
		for _, c := range []*bspLeaf{l.left, l.right} {
			if c != nil {
				c.createRooms(gmap, cfg)
			}
		}
		return
	}
	pad, minSize := cfg.RoomPadding, cfg.MinRoomSize
	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := min(minSize+cfg.Rand.Intn(availW-minSize+1), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(availH-minSize+1), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	fill(gmap, room, gamemap.MakeFloor)
	gmap.Rooms = append(gmap.Rooms, room)
}

// getRoom returns a room from this subtree, left first.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	for _, c := range []*bspLeaf{l.left, l.right} {
		if c == nil {
			continue
		}
		if r := c.getRoom(); r != nil {
			return r
		}
	}
	return nil
}

// connectChildren carves corridors between the rooms of sibling subtrees.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	a, b := l.left.getRoom(), l.right.getRoom()
	if a == nil || b == nil {
		return
	}
	ax, ay := a.Center()
	bx, by := b.Center()
	carveCorridor(gmap, ax, ay, bx, by, cfg)
}

// Generate builds one BSP level and returns it with a start cell at the
// centre of the first room.
func Generate(cfg *Config) (*gamemap.GameMap, int, int) {
	gmap := gamemap.New(cfg.Width, cfg.Height)
	gmap.ID = cfg.ID
	gmap.Name = cfg.Name

	root := &bspLeaf{W: cfg.Width, H: cfg.Height}
	leaves := []*bspLeaf{root}
	for grew := true; grew; {
		grew = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if !leaf.leaf() {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			big := leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize
			if (big || cfg.Rand.Float64() > 0.25) && leaf.split(cfg) {
				next = append(next, leaf.left, leaf.right)
				grew = true
				continue
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(gmap, cfg)
	root.connectChildren(gmap, cfg)
	placeChasms(gmap, cfg)
	placeDoors(gmap, cfg)

	px, py := 1, 1
	if len(gmap.Rooms) > 0 {
		px, py = gmap.Rooms[0].Center()
	}
	return gmap, px, py
}

func fill(gmap *gamemap.GameMap, r gamemap.Rect, tile func() gamemap.Tile) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			gmap.Set(x, y, tile())
		}
	}
}
