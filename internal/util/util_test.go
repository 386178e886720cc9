package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no quotes", "hello", "hello"},
		{"double quoted", `"hello"`, "hello"},
		{"single quotes only", "'hello'", "'hello'"},
		{"quotes in middle", `he"llo`, `he"llo`},
		{"only quotes", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimQuotes(tt.input))
		})
	}
}

func TestFixEscapeQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escaped quotes", "hello", "hello"},
		{"single escaped quote", `he""llo`, `he"llo`},
		{"multiple escaped quotes", `a""b""c`, `a"b"c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FixEscapeQuotes(tt.input))
		})
	}
}

func TestCleanArgs(t *testing.T) {
	args := []string{`"Urist says ""hello"""`, `12`, `""`}

	got := CleanArgs(args)

	assert.Equal(t, []string{`Urist says "hello`, "12", ""}, got)
	assert.Equal(t, got, args, "cleans in place")
}

func TestArgAt(t *testing.T) {
	args := []string{"a", "b"}

	assert.Equal(t, "a", ArgAt(args, 0))
	assert.Equal(t, "b", ArgAt(args, 1))
	assert.Equal(t, "", ArgAt(args, 2))
	assert.Equal(t, "", ArgAt(args, -1))
	assert.Equal(t, "", ArgAt(nil, 0))
}
