package parser

import (
	"testing"

	"github.com/fortkit/extension/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "32", 32, false},
		{"zero", "0", 0, false},
		{"negative integer", "-1", -1, false},
		{"sentinel", "-30000", -30000, false},
		{"float with decimals", "32.00", 32, false},
		{"negative float", "-1.00", -1, false},
		{"padded", " 12 ", 12, false},
		{"fractional rejects", "10.99", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
		{"infinity", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseChrome(t *testing.T) {
	got, err := ParseChrome([]string{"1", "2", "80.00", `"25"`})
	require.NoError(t, err)
	assert.Equal(t, core.DisplayChrome{
		MenuWidthMode:       1,
		AreaMapWidthMode:    2,
		ViewportPixelWidth:  80,
		ViewportPixelHeight: 25,
	}, got)

	_, err = ParseChrome([]string{"1", "2", "80"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 args")

	_, err = ParseChrome([]string{"1", "x", "80", "25"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "areaMapWidthMode")
}

func TestParseBounds(t *testing.T) {
	got, err := ParseBounds([]string{"192", "144"})
	require.NoError(t, err)
	assert.Equal(t, core.WorldBounds{MapTileCountX: 192, MapTileCountY: 144}, got)

	_, err = ParseBounds([]string{"192"})
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock([]string{"105", "33600.0"})
	require.NoError(t, err)
	assert.Equal(t, core.Clock{Year: 105, Tick: 33600}, got)

	_, err = ParseClock(nil)
	assert.Error(t, err)
}

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    core.CursorState
		wantErr bool
	}{
		{"position", []string{"10", "20", "30"}, core.CursorState{X: 10, Y: 20, Z: 30}, false},
		{"hidden keyword", []string{"hidden"}, core.HiddenCursor(), false},
		{"sentinel only", []string{"-30000"}, core.HiddenCursor(), false},
		{"sentinel with junk", []string{"-30000", "5", "6"}, core.HiddenCursor(), false},
		{"too few", []string{"10", "20"}, core.CursorState{}, true},
		{"bad number", []string{"10", "north", "30"}, core.CursorState{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCursor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFocus(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    core.Coord
		wantErr bool
	}{
		{"three numbers", []string{"100", "50", "3"}, core.Coord{X: 100, Y: 50, Z: 3}, false},
		{"float numbers", []string{"100.0", "50.0", "3.0"}, core.Coord{X: 100, Y: 50, Z: 3}, false},
		{"json coord", []string{`{"x":7,"y":8,"z":9}`}, core.Coord{X: 7, Y: 8, Z: 9}, false},
		{"quoted json coord", []string{`"{""x"":7,""y"":8,""z"":9}"`}, core.Coord{X: 7, Y: 8, Z: 9}, false},
		{"json positioned", []string{`{"id":12,"pos":{"x":1,"y":2,"z":3}}`}, core.Coord{X: 1, Y: 2, Z: 3}, false},
		{"pos wins over coords", []string{`{"x":9,"y":9,"z":9,"pos":{"x":1,"y":2,"z":3}}`}, core.Coord{X: 1, Y: 2, Z: 3}, false},
		{"incomplete pos falls back", []string{`{"x":4,"y":5,"z":6,"pos":{"x":1}}`}, core.Coord{X: 4, Y: 5, Z: 6}, false},
		{"no position", []string{`{"id":12}`}, core.Coord{}, true},
		{"not json", []string{"somewhere"}, core.Coord{}, true},
		{"none", nil, core.Coord{}, true},
		{"bad number", []string{"1", "2", "up"}, core.Coord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFocus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBright(t *testing.T) {
	tests := []struct {
		input  string
		want   bool
		wantOK bool
	}{
		{"", false, false},
		{"  ", false, false},
		{"true", true, true},
		{"TRUE", true, true},
		{"false", false, true},
		{"nil", false, true},
		{"1", true, true},
		{"0", false, true},
		{"0.0", false, true},
		{"-2", true, true},
		{"yes", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBright(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnnouncement(t *testing.T) {
	text, style, err := ParseAnnouncement([]string{`"A vampire has been discovered!"`, "4", "1"})
	require.NoError(t, err)
	assert.Equal(t, "A vampire has been discovered!", text)
	require.NotNil(t, style.Color)
	assert.Equal(t, 4, *style.Color)
	require.NotNil(t, style.Bright)
	assert.True(t, *style.Bright)
}

func TestParseAnnouncement_OptionalStyle(t *testing.T) {
	text, style, err := ParseAnnouncement([]string{"Spring has arrived."})
	require.NoError(t, err)
	assert.Equal(t, "Spring has arrived.", text)
	assert.Nil(t, style.Color)
	assert.Nil(t, style.Bright)

	_, style, err = ParseAnnouncement([]string{"text", "", "0"})
	require.NoError(t, err)
	assert.Nil(t, style.Color)
	require.NotNil(t, style.Bright)
	assert.False(t, *style.Bright)
}

func TestParseAnnouncement_Empty(t *testing.T) {
	text, _, err := ParseAnnouncement(nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestParseAnnouncement_BadColor(t *testing.T) {
	_, _, err := ParseAnnouncement([]string{"text", "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing color")
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = ParseCount([]string{"3"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseCount([]string{"-3"}, 10)
	assert.Error(t, err)

	_, err = ParseCount([]string{"many"}, 10)
	assert.Error(t, err)
}
