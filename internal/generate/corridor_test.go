package generate

import (
	"math/rand"
	"testing"

	"roguemind/internal/gamemap"
)

// allFloorRow checks that every tile at y between x1 and x2 (inclusive) is walkable.
func allFloorRow(gmap *gamemap.GameMap, x1, x2, y int) bool {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if !gmap.IsWalkable(x, y) {
			return false
		}
	}
	return true
}

// allFloorCol checks that every tile at x between y1 and y2 (inclusive) is walkable.
func allFloorCol(gmap *gamemap.GameMap, y1, y2, x int) bool {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if !gmap.IsWalkable(x, y) {
			return false
		}
	}
	return true
}

func fillRoom(gmap *gamemap.GameMap, r gamemap.Rect) {
	gmap.Rooms = append(gmap.Rooms, r)
	fill(gmap, r, gamemap.MakeFloor)
}

func TestCarveH(t *testing.T) {
	gmap := gamemap.New(20, 20)
	carveH(gmap, 3, 8, 5)

	if !allFloorRow(gmap, 3, 8, 5) {
		t.Error("carveH(3,8,5) should carve floor tiles from x=3 to x=8 at y=5")
	}
	if gmap.IsWalkable(2, 5) {
		t.Error("tile at x=2 should remain wall")
	}
	if gmap.IsWalkable(9, 5) {
		t.Error("tile at x=9 should remain wall")
	}
}

func TestCarveHReversedArgs(t *testing.T) {
	gmap := gamemap.New(20, 20)
	carveH(gmap, 8, 3, 5)
	if !allFloorRow(gmap, 3, 8, 5) {
		t.Error("carveH with reversed x args should still carve x=3..8")
	}
}

func TestCarveV(t *testing.T) {
	gmap := gamemap.New(20, 20)
	carveV(gmap, 2, 7, 4)

	if !allFloorCol(gmap, 2, 7, 4) {
		t.Error("carveV(2,7,4) should carve floor tiles from y=2 to y=7 at x=4")
	}
	if gmap.IsWalkable(4, 1) || gmap.IsWalkable(4, 8) {
		t.Error("tiles past the segment should remain wall")
	}
}

func TestCarveVReversedArgs(t *testing.T) {
	gmap := gamemap.New(20, 20)
	carveV(gmap, 7, 2, 4)
	if !allFloorCol(gmap, 2, 7, 4) {
		t.Error("carveV with reversed y args should still carve y=2..7")
	}
}

func TestCarveOnlyReplacesWalls(t *testing.T) {
	gmap := gamemap.New(20, 20)
	gmap.Set(5, 5, gamemap.MakeDoor())
	gmap.Set(6, 5, gamemap.MakeChasm())
	carveH(gmap, 2, 9, 5)
	if k := gmap.At(5, 5).Kind; k != gamemap.TileDoor {
		t.Errorf("door overwritten with %s", k)
	}
	if k := gmap.At(6, 5).Kind; k != gamemap.TileChasm {
		t.Errorf("chasm overwritten with %s", k)
	}
}

func TestCorridorStyleStraight(t *testing.T) {
	gmap := gamemap.New(20, 20)
	cfg := &Config{CorridorStyle: CorridorStraight, Rand: rand.New(rand.NewSource(0))}
	carveCorridor(gmap, 2, 2, 8, 8, cfg)

	if !allFloorRow(gmap, 2, 8, 2) {
		t.Error("straight corridor: horizontal segment at y=2 should be floor")
	}
	if !allFloorCol(gmap, 2, 8, 8) {
		t.Error("straight corridor: vertical segment at x=8 should be floor")
	}
}

func TestCorridorStyleZShaped(t *testing.T) {
	gmap := gamemap.New(20, 20)
	cfg := &Config{CorridorStyle: CorridorZShaped, Rand: rand.New(rand.NewSource(0))}
	carveCorridor(gmap, 2, 2, 10, 8, cfg)
	midY := (2 + 8) / 2

	if !allFloorCol(gmap, 2, midY, 2) {
		t.Errorf("Z-shaped corridor: first vertical (x=2, y=2..%d) should be floor", midY)
	}
	if !allFloorRow(gmap, 2, 10, midY) {
		t.Errorf("Z-shaped corridor: horizontal (y=%d, x=2..10) should be floor", midY)
	}
	if !allFloorCol(gmap, midY, 8, 10) {
		t.Errorf("Z-shaped corridor: last vertical (x=10, y=%d..8) should be floor", midY)
	}
}

func TestCorridorStyleLShaped(t *testing.T) {
	for seed := range 10 {
		gmap := gamemap.New(20, 20)
		cfg := &Config{CorridorStyle: CorridorLShaped, Rand: rand.New(rand.NewSource(int64(seed)))}
		carveCorridor(gmap, 2, 2, 10, 8, cfg)

		if !gmap.IsWalkable(2, 2) || !gmap.IsWalkable(10, 8) {
			t.Errorf("seed %d: both endpoints should be floor after an L-shaped corridor", seed)
		}
	}
}

func TestPlaceDoorsInCorridorMouths(t *testing.T) {
	gmap := gamemap.New(20, 8)
	fillRoom(gmap, gamemap.Rect{X1: 1, Y1: 1, X2: 5, Y2: 5})
	fillRoom(gmap, gamemap.Rect{X1: 11, Y1: 1, X2: 15, Y2: 5})
	carveH(gmap, 5, 11, 3)

	placeDoors(gmap, &Config{DoorChance: 1, Rand: rand.New(rand.NewSource(0))})

	for _, x := range []int{6, 10} {
		if k := gmap.At(x, 3).Kind; k != gamemap.TileDoor {
			t.Errorf("mouth (%d,3) is %s, want door", x, k)
		}
	}
	for x := 7; x <= 9; x++ {
		if k := gmap.At(x, 3).Kind; k != gamemap.TileFloor {
			t.Errorf("corridor (%d,3) is %s, want floor", x, k)
		}
	}
}

func TestPlaceDoorsZeroChance(t *testing.T) {
	gmap := gamemap.New(20, 8)
	fillRoom(gmap, gamemap.Rect{X1: 1, Y1: 1, X2: 5, Y2: 5})
	carveH(gmap, 5, 11, 3)
	placeDoors(gmap, &Config{Rand: rand.New(rand.NewSource(0))})
	if k := gmap.At(6, 3).Kind; k != gamemap.TileFloor {
		t.Errorf("mouth is %s with zero door chance", k)
	}
}

func TestPlaceChasms(t *testing.T) {
	gmap := gamemap.New(20, 20)
	fillRoom(gmap, gamemap.Rect{X1: 1, Y1: 1, X2: 7, Y2: 7})
	fillRoom(gmap, gamemap.Rect{X1: 10, Y1: 1, X2: 14, Y2: 5})

	placeChasms(gmap, &Config{ChasmChance: 1, Rand: rand.New(rand.NewSource(0))})

	for _, p := range []gamemap.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}} {
		if k := gmap.At(p.X, p.Y).Kind; k != gamemap.TileChasm {
			t.Errorf("(%d,%d) is %s, want chasm", p.X, p.Y, k)
		}
	}
	if !gmap.IsWalkable(4, 4) {
		t.Error("room centre should stay floor")
	}
	for y := 1; y <= 5; y++ {
		for x := 10; x <= 14; x++ {
			if gmap.At(x, y).Kind != gamemap.TileFloor {
				t.Fatalf("small room got a chasm at (%d,%d)", x, y)
			}
		}
	}
}
