package session

import (
	"sync"

	"github.com/fortkit/extension/internal/config"
	"github.com/fortkit/extension/internal/viewport"
	"github.com/fortkit/extension/pkg/core"
)

// Display holds the host's shared display state: what the map window shows,
// where the cursor is, and the geometry around it.
type Display struct {
	mu       sync.RWMutex
	viewport core.ViewportState
	cursor   core.CursorState
	chrome   core.DisplayChrome
	bounds   core.WorldBounds
	clock    core.Clock
}

// NewDisplay creates a Display with a hidden cursor and the given geometry
func NewDisplay(cfg config.DisplayConfig) *Display {
	return &Display{
		cursor: core.HiddenCursor(),
		chrome: cfg.Chrome,
		bounds: cfg.Bounds,
	}
}

// Viewport returns the current viewport origin
func (d *Display) Viewport() core.ViewportState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.viewport
}

// Cursor returns the current cursor
func (d *Display) Cursor() core.CursorState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

// SetCursor moves or hides the cursor
func (d *Display) SetCursor(c core.CursorState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = c
}

// Chrome returns the current UI chrome
func (d *Display) Chrome() core.DisplayChrome {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.chrome
}

// SetChrome records the UI chrome reported by the host
func (d *Display) SetChrome(c core.DisplayChrome) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chrome = c
}

// Bounds returns the map extent
func (d *Display) Bounds() core.WorldBounds {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bounds
}

// SetBounds records the map extent reported by the host
func (d *Display) SetBounds(b core.WorldBounds) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bounds = b
}

// Clock returns the current game time
func (d *Display) Clock() core.Clock {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clock
}

// SetClock records the game time reported by the host
func (d *Display) SetClock(c core.Clock) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock = c
}

// CenterOn centers the viewport on focus and moves the cursor there if it is
// visible. It returns the new viewport origin.
func (d *Display) CenterOn(focus core.Coord) core.ViewportState {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport = viewport.Center(focus, d.chrome, d.bounds, &d.cursor)
	return d.viewport
}
