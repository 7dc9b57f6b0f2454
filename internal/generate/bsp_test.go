package generate

import (
	"math/rand"
	"testing"

	"roguemind/internal/gamemap"
)

func defaultTestConfig(seed int64) *Config {
	return &Config{
		Width:         60,
		Height:        30,
		Name:          "test",
		MinLeafSize:   8,
		MaxLeafSize:   20,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		DoorChance:    0.5,
		ChasmChance:   0.5,
		Rand:          rand.New(rand.NewSource(seed)),
	}
}

// passable treats doors as open; chasms stay closed to walkers.
func passable(gmap *gamemap.GameMap, x, y int) bool {
	if !gmap.InBounds(x, y) {
		return false
	}
	return gmap.IsWalkable(x, y) || gmap.At(x, y).Kind == gamemap.TileDoor
}

func reachable(gmap *gamemap.GameMap, sx, sy int) map[gamemap.Point]bool {
	seen := map[gamemap.Point]bool{{X: sx, Y: sy}: true}
	queue := []gamemap.Point{{X: sx, Y: sy}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := gamemap.Point{X: p.X + d[0], Y: p.Y + d[1]}
			if seen[n] || !passable(gmap, n.X, n.Y) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// TestGenerateAllRoomsConnected verifies every walkable tile and door is
// reachable on foot from the start cell.
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		gmap, px, py := Generate(defaultTestConfig(seed))
		if !gmap.IsWalkable(px, py) {
			t.Fatalf("seed %d: start (%d,%d) is not walkable", seed, px, py)
		}
		seen := reachable(gmap, px, py)
		for y := range gmap.Height {
			for x := range gmap.Width {
				if passable(gmap, x, y) && !seen[gamemap.Point{X: x, Y: y}] {
					t.Errorf("seed %d: tile (%d,%d) %s is unreachable", seed, x, y, gmap.At(x, y).Kind)
				}
			}
		}
	}
}

func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		gmap, _, _ := Generate(defaultTestConfig(seed))
		if len(gmap.Rooms) < 2 {
			t.Fatalf("seed %d: want at least 2 rooms, got %d", seed, len(gmap.Rooms))
		}
		for i := range gmap.Rooms {
			for j := i + 1; j < len(gmap.Rooms); j++ {
				if gmap.Rooms[i].Intersects(gmap.Rooms[j]) {
					t.Errorf("seed %d: rooms %d %v and %d %v overlap", seed, i, gmap.Rooms[i], j, gmap.Rooms[j])
				}
			}
		}
	}
}

func TestGenerateBorderIsWall(t *testing.T) {
	gmap, _, _ := Generate(defaultTestConfig(3))
	for x := range gmap.Width {
		for _, y := range []int{0, gmap.Height - 1} {
			if gmap.At(x, y).Kind != gamemap.TileWall {
				t.Errorf("border tile (%d,%d) is %s", x, y, gmap.At(x, y).Kind)
			}
		}
	}
	for y := range gmap.Height {
		for _, x := range []int{0, gmap.Width - 1} {
			if gmap.At(x, y).Kind != gamemap.TileWall {
				t.Errorf("border tile (%d,%d) is %s", x, y, gmap.At(x, y).Kind)
			}
		}
	}
}

func TestGenerateSetsIdentity(t *testing.T) {
	cfg := defaultTestConfig(1)
	cfg.ID = 4
	cfg.Name = "the pit"
	gmap, _, _ := Generate(cfg)
	if gmap.ID != 4 || gmap.Name != "the pit" {
		t.Errorf("got ID %d name %q", gmap.ID, gmap.Name)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, ax, ay := Generate(defaultTestConfig(9))
	b, bx, by := Generate(defaultTestConfig(9))
	if ax != bx || ay != by {
		t.Fatalf("start differs: (%d,%d) vs (%d,%d)", ax, ay, bx, by)
	}
	for y := range a.Height {
		for x := range a.Width {
			if a.At(x, y).Kind != b.At(x, y).Kind {
				t.Fatalf("tile (%d,%d) differs between runs with the same seed", x, y)
			}
		}
	}
}
