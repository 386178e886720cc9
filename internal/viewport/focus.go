package viewport

import "github.com/fortkit/extension/pkg/core"

// Positioned is implemented by things that carry a position, like units or items.
type Positioned interface {
	Pos() core.Coord
}

// Coordinated is implemented by things exposing raw x/y/z fields.
type Coordinated interface {
	Coords() (x, y, z int)
}

// Focus is anything Normalize can turn into a tile coordinate:
// a core.Coord, a *core.Coord, a core.CursorState, a Positioned or a Coordinated.
type Focus any

// Normalize resolves focus to a plain coordinate. Position-bearing values are
// preferred over raw coordinates. ok is false when focus carries no position.
func Normalize(focus Focus) (core.Coord, bool) {
	switch f := focus.(type) {
	case core.Coord:
		return f, true
	case *core.Coord:
		if f == nil {
			return core.Coord{}, false
		}
		return *f, true
	case core.CursorState:
		return core.Coord{X: f.X, Y: f.Y, Z: f.Z}, true
	case Positioned:
		return f.Pos(), true
	case Coordinated:
		x, y, z := f.Coords()
		return core.Coord{X: x, Y: y, Z: z}, true
	}
	return core.Coord{}, false
}

// At builds a focus from raw tile coordinates.
func At(x, y, z int) core.Coord {
	return core.Coord{X: x, Y: y, Z: z}
}
