package hostbridge

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fortkit/extension/internal/dispatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newBridge(t *testing.T) *Bridge {
	t.Helper()

	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)

	d.Register(":ECHO:", func(e dispatcher.Event) (any, error) {
		return strings.Join(e.Args, ","), nil
	})
	d.Register(":NOOP:", func(e dispatcher.Event) (any, error) {
		return nil, nil
	})
	d.Register(":FAIL:", func(e dispatcher.Event) (any, error) {
		return nil, errors.New(`bad "input"`)
	})

	b := New(d, "1.2.3", "2026-10-01", nil)
	b.now = func() time.Time { return time.Unix(0, 42) }
	return b
}

func TestFormatResponse(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		result   any
		err      error
		expected string
	}{
		{
			name:     "nil result",
			command:  ":SOME:CMD:",
			expected: `["ok",":SOME:CMD:"]`,
		},
		{
			name:     "string result",
			command:  ":VIEWPORT:GET:",
			result:   "[89,39,3]",
			expected: `["ok",":VIEWPORT:GET:","[89,39,3]"]`,
		},
		{
			name:     "int result",
			command:  ":ANNOUNCE:",
			result:   3,
			expected: `["ok",":ANNOUNCE:",3]`,
		},
		{
			name:     "string array",
			command:  ":VERSION:",
			result:   []string{"0.0.1", "2026-02-01"},
			expected: `["ok",":VERSION:",["0.0.1","2026-02-01"]]`,
		},
		{
			name:     "error",
			command:  ":LOG:",
			err:      errors.New("no handler registered"),
			expected: `["error",":LOG:","no handler registered"]`,
		},
		{
			name:     "error with quotes is escaped",
			command:  ":LOG:",
			err:      errors.New(`bad "x"`),
			expected: `["error",":LOG:","bad \"x\""]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatResponse(tt.command, tt.result, tt.err))
		})
	}
}

func TestHandle_BuiltIns(t *testing.T) {
	b := newBridge(t)

	assert.Equal(t, `["ok",":VERSION:",["1.2.3","2026-10-01"]]`, b.Handle(":VERSION:"))
	assert.Equal(t, `["ok",":TIMESTAMP:","42"]`, b.Handle(":TIMESTAMP:"))
}

func TestHandle_Dispatch(t *testing.T) {
	b := newBridge(t)

	assert.Equal(t, `["ok",":ECHO:","a,b,c"]`, b.Handle(":ECHO:|a|b|c"))
	assert.Equal(t, `["ok",":ECHO:",""]`, b.Handle(":ECHO:"))
	assert.Equal(t, `["ok",":NOOP:"]`, b.Handle(":NOOP:\r\n"))
	assert.Equal(t, `["error",":FAIL:","bad \"input\""]`, b.Handle(":FAIL:|x"))
}

func TestHandle_UnknownCommand(t *testing.T) {
	b := newBridge(t)
	assert.Equal(t, `["error",":NOPE:","no handler registered"]`, b.Handle(":NOPE:|1"))

	noDispatcher := New(nil, "1", "", nil)
	assert.Equal(t, `["error",":ECHO:","no handler registered"]`, noDispatcher.Handle(":ECHO:"))
}

func TestServe(t *testing.T) {
	b := newBridge(t)

	in := strings.NewReader(":ECHO:|x|y\n\n:NOOP:\n:NOPE:\n")
	var out bytes.Buffer

	err := b.Serve(context.Background(), in, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		`["ok",":ECHO:","x,y"]`,
		`["ok",":NOOP:"]`,
		`["error",":NOPE:","no handler registered"]`,
	}, lines)
}

type blockingReader struct {
	done chan struct{}
}

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.done
	return 0, errors.New("closed")
}

func TestServe_ContextCancel(t *testing.T) {
	b := newBridge(t)

	r := blockingReader{done: make(chan struct{})}
	defer close(r.done)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Serve(ctx, r, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModuleDir(t *testing.T) {
	assert.NotEmpty(t, ModuleDir())
}
