package gamemap

// Point is a map coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Side names a map edge.
type Side uint8

const (
	SideNorth Side = iota
	SideSouth
	SideEast
	SideWest
)

// Link is the far end of a staircase or edge passage.
type Link struct {
	Level int
	X, Y  int
}

// Weather is the level-wide weather attribute read by weather brains.
type Weather struct {
	Active      bool
	Kind        string
	Temperature int
}

// GameMap holds the tile grid and connectivity for one level.
type GameMap struct {
	ID            int
	Name          string
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
	Weather       Weather
	Passages      map[Side]int // edge -> destination level
	Stairs        map[Point]Link
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{
		Width:    width,
		Height:   height,
		Tiles:    tiles,
		Passages: make(map[Side]int),
		Stairs:   make(map[Point]Link),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *GameMap) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}

// IsAirPassable returns true when a flyer can enter (x, y).
func (m *GameMap) IsAirPassable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].AirPassable
}

// SideOf returns the edge an out-of-bounds coordinate lies beyond.
func (m *GameMap) SideOf(x, y int) (Side, bool) {
	switch {
	case y < 0:
		return SideNorth, true
	case y >= m.Height:
		return SideSouth, true
	case x < 0:
		return SideWest, true
	case x >= m.Width:
		return SideEast, true
	}
	return 0, false
}

// Passage returns the level reached by leaving the map across side.
func (m *GameMap) Passage(side Side) (int, bool) {
	lvl, ok := m.Passages[side]
	return lvl, ok
}

// Link returns the staircase destination at (x, y).
func (m *GameMap) Link(x, y int) (Link, bool) {
	l, ok := m.Stairs[Point{x, y}]
	return l, ok
}
