package assets

// Writings are the wall inscriptions carved into dungeon levels. Each level
// draws from the pool without repeats.
var Writings = []string{
	"Turn back. The lair never empties.",
	"The captain's men will follow a generous hand.",
	"Fire spreads to the dry straw.",
	"Do not breathe the green mist.",
	"Mark the stairs. You will want them again.",
	"East lies the moor, and the rain.",
	"The thief only runs once you have seen him.",
	"Bats sleep in the dark corners. Rats do not sleep.",
}

// LevelLore is shown on entering a level, indexed by depth. Depths past the
// end reuse the last entry.
var LevelLore = []string{
	"Damp stone and the smell of rats.",
	"Old torches gutter in their brackets.",
	"Something below is still awake.",
	"The walls are warm here.",
}

// Lore returns the entry text for depth.
func Lore(depth int) string {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(LevelLore) {
		depth = len(LevelLore) - 1
	}
	return LevelLore[depth]
}
