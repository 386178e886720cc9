// Package viewport positions the map window over a focus tile.
package viewport

import "github.com/fortkit/extension/pkg/core"

// Chrome widths in tiles
const (
	BorderWidth       = 2  // frame around the map, independent of menus
	SidePanelWidth    = 55 // full side menu
	AreaMapPanelWidth = 24 // side menu next to a wide area map
	MenuPanelWidth    = 31 // side menu next to a narrow area map
)

// Size returns the number of map tiles visible horizontally and vertically
// for the given chrome. cursorVisible selects the host's cursor-mode layout
// quirks.
func Size(chrome core.DisplayChrome, cursorVisible bool) (w, h int) {
	menu := chrome.MenuWidthMode
	if cursorVisible {
		// the menu width mode only reflects the 'tab' state; the area map
		// is accounted for below
		if menu == 2 && chrome.AreaMapWidthMode == 2 {
			menu = 1
		}
		if menu == 3 {
			menu = 2
		}
	}

	w = chrome.ViewportPixelWidth - BorderWidth
	h = chrome.ViewportPixelHeight - BorderWidth

	switch menu {
	case 1:
		w -= SidePanelWidth
	case 2:
		if chrome.AreaMapWidthMode == 2 {
			w -= AreaMapPanelWidth
		} else {
			w -= MenuPanelWidth
		}
	}
	return w, h
}

// Center computes the viewport origin that centers focus on screen, cropped
// to the map. A visible cursor is moved onto focus; a hidden one is left alone.
func Center(focus core.Coord, chrome core.DisplayChrome, bounds core.WorldBounds, cursor *core.CursorState) core.ViewportState {
	visible := cursor != nil && cursor.Visible()
	w, h := Size(chrome, visible)

	// even sizes leave focus one tile right of (below) the middle
	x := focus.X - w/2
	y := focus.Y - h/2

	// upper bound first: on a map narrower than the view the lower bound wins
	x = max(min(x, bounds.MapTileCountX-w), 0)
	y = max(min(y, bounds.MapTileCountY-h), 0)

	if visible {
		cursor.X, cursor.Y, cursor.Z = focus.X, focus.Y, focus.Z
	}

	return core.ViewportState{OriginX: x, OriginY: y, OriginZ: focus.Z}
}
