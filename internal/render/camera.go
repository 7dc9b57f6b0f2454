package render

// Camera translates between world cells and screen cells. Every world cell
// is two terminal columns wide so emoji line up.
type Camera struct {
	OffsetX, OffsetY int
	ViewWidth        int // terminal columns
	ViewHeight       int // terminal rows
}

// NewCamera creates a camera centred on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center puts world cell (cx, cy) in the middle of the view.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - c.ViewWidth/4
	c.OffsetY = cy - c.ViewHeight/2
}

// Clamp keeps the view inside a width×height map when the map is larger
// than the view, so no blank margin shows at the edges.
func (c *Camera) Clamp(width, height int) {
	cols := c.ViewWidth / 2
	if width > cols {
		c.OffsetX = min(max(c.OffsetX, 0), width-cols)
	}
	if height > c.ViewHeight {
		c.OffsetY = min(max(c.OffsetY, 0), height-c.ViewHeight)
	}
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/2 + c.OffsetX, sy + c.OffsetY
}
