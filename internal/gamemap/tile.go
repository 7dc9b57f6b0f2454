package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoor
	TileStairsUp
	TileStairsDown
	TileChasm
)

// Tile holds the kind and visibility state for one map cell.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool
	AirPassable bool // crossable by flying actors
	Open        bool // doors only
	Explored    bool
	Visible     bool
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Transparent: true, AirPassable: true}
}

// MakeDoor returns a closed door tile.
func MakeDoor() Tile {
	return Tile{Kind: TileDoor}
}

// MakeStairsDown returns a downward staircase tile.
func MakeStairsDown() Tile {
	return Tile{Kind: TileStairsDown, Walkable: true, Transparent: true, AirPassable: true}
}

// MakeStairsUp returns an upward staircase tile.
func MakeStairsUp() Tile {
	return Tile{Kind: TileStairsUp, Walkable: true, Transparent: true, AirPassable: true}
}

// MakeChasm returns a tile only flyers can cross.
func MakeChasm() Tile {
	return Tile{Kind: TileChasm, Transparent: true, AirPassable: true}
}

// SetOpen opens or closes a door tile. Other tiles are left untouched.
func (t *Tile) SetOpen(open bool) {
	if t.Kind != TileDoor {
		return
	}
	t.Open = open
	t.Walkable = open
	t.Transparent = open
	t.AirPassable = open
}

// IsClosedDoor reports whether the tile is a door that blocks passage.
func (t Tile) IsClosedDoor() bool {
	return t.Kind == TileDoor && !t.Open
}

// String names the tile kind; placement constraints match against it.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	case TileStairsUp:
		return "stairsup"
	case TileStairsDown:
		return "stairsdown"
	case TileChasm:
		return "chasm"
	}
	return "unknown"
}
