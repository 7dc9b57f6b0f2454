package render

// Theme holds the emoji glyphs used to draw one level's terrain.
// Emoji are rendered by the terminal with their own colors, so we use
// distinct glyphs for visible vs explored-but-dark states instead of
// trying to tint them with terminal FG color.
type Theme struct {
	Wall     string // fully-visible wall tile
	Floor    string // fully-visible floor tile
	DimWall  string // explored but not currently visible wall
	DimFloor string // explored but not currently visible floor
}

// Glyphs shared by every theme.
const (
	GlyphDoorClosed = "🚪"
	GlyphDoorOpen   = "🔳"
	GlyphStairsDown = "🔽"
	GlyphStairsUp   = "🔼"
	GlyphChasm      = "⬛"
	GlyphPath       = "🔸"
	GlyphCursor     = "🔍"
	GlyphTarget     = "🎯"
)

// DungeonThemes cycles with dungeon depth.
var DungeonThemes = []Theme{
	{
		// Upper halls: cut stone
		Wall:     "🧱",
		Floor:    "🟫",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Flooded cellars
		Wall:     "🪨",
		Floor:    "💧",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Fungal warrens
		Wall:     "🍄",
		Floor:    "🌿",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Bone pits
		Wall:     "💀",
		Floor:    "🔴",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
}

// FieldTheme is used for open outdoor levels.
var FieldTheme = Theme{
	Wall:     "🪨",
	Floor:    "🌱",
	DimWall:  "🌑",
	DimFloor: "🔲",
}

// DungeonTheme returns the theme for a dungeon level at depth (0-based).
func DungeonTheme(depth int) Theme {
	if depth < 0 {
		depth = 0
	}
	return DungeonThemes[depth%len(DungeonThemes)]
}

// WeatherGlyph returns the HUD icon for a weather kind.
func WeatherGlyph(kind string) string {
	switch kind {
	case "rain":
		return "🌧️"
	case "snow":
		return "🌨️"
	case "storm":
		return "⛈️"
	case "fog":
		return "🌫️"
	}
	return "☁️"
}
