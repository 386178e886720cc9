// Package parser converts raw host arguments into display and report values.
// It does no I/O and holds no state.
package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fortkit/extension/internal/announce"
	"github.com/fortkit/extension/internal/util"
	"github.com/fortkit/extension/internal/viewport"
	"github.com/fortkit/extension/pkg/core"
)

// parseIntFromFloat parses a string that may be an integer ("32") or float ("32.00") into int64.
// Host scripting languages often have no integer type, so numbers may arrive as floats.
func parseIntFromFloat(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid integer", s)
	}
	return int64(f), nil
}

// ParseInt parses an integer argument, accepting integral float text.
func ParseInt(s string) (int, error) {
	v, err := parseIntFromFloat(s)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// parseInts parses exactly len(names) integer arguments
func parseInts(data []string, names ...string) ([]int, error) {
	if len(data) < len(names) {
		return nil, fmt.Errorf("expected %d args (%s), got %d", len(names), strings.Join(names, ", "), len(data))
	}
	out := make([]int, len(names))
	for i, name := range names {
		v, err := ParseInt(data[i])
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseChrome parses [menuWidthMode, areaMapWidthMode, width, height].
func ParseChrome(data []string) (core.DisplayChrome, error) {
	v, err := parseInts(util.CleanArgs(data), "menuWidthMode", "areaMapWidthMode", "width", "height")
	if err != nil {
		return core.DisplayChrome{}, err
	}
	return core.DisplayChrome{
		MenuWidthMode:       v[0],
		AreaMapWidthMode:    v[1],
		ViewportPixelWidth:  v[2],
		ViewportPixelHeight: v[3],
	}, nil
}

// ParseBounds parses [xCount, yCount].
func ParseBounds(data []string) (core.WorldBounds, error) {
	v, err := parseInts(util.CleanArgs(data), "xCount", "yCount")
	if err != nil {
		return core.WorldBounds{}, err
	}
	return core.WorldBounds{MapTileCountX: v[0], MapTileCountY: v[1]}, nil
}

// ParseClock parses [year, tick].
func ParseClock(data []string) (core.Clock, error) {
	v, err := parseInts(util.CleanArgs(data), "year", "tick")
	if err != nil {
		return core.Clock{}, err
	}
	return core.Clock{Year: v[0], Tick: v[1]}, nil
}

// ParseCursor parses [x, y, z]. A single "hidden" or x == -30000 hides the cursor.
func ParseCursor(data []string) (core.CursorState, error) {
	data = util.CleanArgs(data)
	if len(data) == 1 && strings.EqualFold(data[0], "hidden") {
		return core.HiddenCursor(), nil
	}
	if len(data) >= 1 {
		if x, err := ParseInt(data[0]); err == nil && x == core.CursorHidden {
			return core.HiddenCursor(), nil
		}
	}
	v, err := parseInts(data, "x", "y", "z")
	if err != nil {
		return core.CursorState{}, err
	}
	return core.CursorState{X: v[0], Y: v[1], Z: v[2]}, nil
}

// jsonCoord accepts integral JSON numbers written as floats
type jsonCoord struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

func (c jsonCoord) complete() bool {
	return c.X != nil && c.Y != nil && c.Z != nil
}

func (c jsonCoord) Coords() (x, y, z int) {
	return int(*c.X), int(*c.Y), int(*c.Z)
}

// jsonPositioned is an object carrying a nested position, like a unit
type jsonPositioned struct {
	pos jsonCoord
}

func (p jsonPositioned) Pos() core.Coord {
	x, y, z := p.pos.Coords()
	return core.Coord{X: x, Y: y, Z: z}
}

// ParseFocus parses a focus given either as three numbers [x, y, z], as a
// JSON object {"x":..,"y":..,"z":..}, or as an object with a position
// {"pos":{"x":..,"y":..,"z":..}}. A nested position takes precedence.
func ParseFocus(data []string) (core.Coord, error) {
	data = util.CleanArgs(data)
	if len(data) == 0 {
		return core.Coord{}, fmt.Errorf("expected focus args, got none")
	}

	if len(data) >= 3 {
		v, err := parseInts(data, "x", "y", "z")
		if err != nil {
			return core.Coord{}, err
		}
		return viewport.At(v[0], v[1], v[2]), nil
	}

	var raw struct {
		jsonCoord
		Pos *jsonCoord `json:"pos"`
	}
	if err := json.Unmarshal([]byte(data[0]), &raw); err != nil {
		return core.Coord{}, fmt.Errorf("error unmarshalling focus: %w", err)
	}

	var focus viewport.Focus
	switch {
	case raw.Pos != nil && raw.Pos.complete():
		focus = jsonPositioned{pos: *raw.Pos}
	case raw.jsonCoord.complete():
		focus = raw.jsonCoord
	default:
		return core.Coord{}, fmt.Errorf("focus %q has no x/y/z position", data[0])
	}

	c, _ := viewport.Normalize(focus)
	return c, nil
}

// ParseBright normalizes a host truthiness value: true only when the value is
// truthy and non-zero. ok is false when no value was given.
func ParseBright(s string) (bright bool, ok bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return false, false
	case "false", "nil", "null":
		return false, true
	case "true":
		return true, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0, true
	}
	// any other value is truthy
	return true, true
}

// ParseAnnouncement parses [text, color?, bright?]. Missing or empty color and
// bright leave the corresponding style field unset.
func ParseAnnouncement(data []string) (string, announce.Style, error) {
	data = util.CleanArgs(data)
	var style announce.Style

	text := util.ArgAt(data, 0)

	if c := strings.TrimSpace(util.ArgAt(data, 1)); c != "" {
		color, err := ParseInt(c)
		if err != nil {
			return "", style, fmt.Errorf("error parsing color: %w", err)
		}
		style.Color = &color
	}

	if bright, ok := ParseBright(util.ArgAt(data, 2)); ok {
		style.Bright = &bright
	}

	return text, style, nil
}

// ParseCount parses an optional positive count, returning def when absent.
func ParseCount(data []string, def int) (int, error) {
	s := strings.TrimSpace(util.TrimQuotes(util.ArgAt(data, 0)))
	if s == "" {
		return def, nil
	}
	n, err := ParseInt(s)
	if err != nil {
		return 0, fmt.Errorf("error parsing count: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("count must not be negative, got %d", n)
	}
	return n, nil
}
