// pkg/core/display.go
package core

// CursorHidden is the cursor X value the host uses for "no cursor on screen".
const CursorHidden = -30000

// Coord is a world tile coordinate
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// ViewportState is the top-left world tile currently displayed
type ViewportState struct {
	OriginX int `json:"originX"`
	OriginY int `json:"originY"`
	OriginZ int `json:"originZ"`
}

// CursorState is the map cursor position. X == CursorHidden means hidden.
type CursorState struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// HiddenCursor returns a cursor in the hidden state.
func HiddenCursor() CursorState {
	return CursorState{X: CursorHidden}
}

// Visible reports whether the cursor is shown.
func (c CursorState) Visible() bool {
	return c.X != CursorHidden
}

// DisplayChrome describes the UI panels surrounding the map viewport
type DisplayChrome struct {
	MenuWidthMode       int `json:"menuWidthMode"`
	AreaMapWidthMode    int `json:"areaMapWidthMode"`
	ViewportPixelWidth  int `json:"viewportPixelWidth"`
	ViewportPixelHeight int `json:"viewportPixelHeight"`
}

// WorldBounds is the map extent in tiles
type WorldBounds struct {
	MapTileCountX int `json:"mapTileCountX"`
	MapTileCountY int `json:"mapTileCountY"`
}

// Clock is the in-game calendar position
type Clock struct {
	Year int `json:"year"`
	Tick int `json:"tick"`
}
