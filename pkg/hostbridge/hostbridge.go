// Package hostbridge connects a host process to the command dispatcher over a
// line protocol. A request is COMMAND|arg1|arg2..., every request gets exactly
// one response line.
package hostbridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fortkit/extension/internal/dispatcher"
)

// Built-in commands answered without the dispatcher
const (
	CmdVersion   = ":VERSION:"
	CmdTimestamp = ":TIMESTAMP:"
)

// Separator splits a request line into command and arguments
const Separator = "|"

// Bridge answers host requests
type Bridge struct {
	dispatcher *dispatcher.Dispatcher
	version    string
	buildDate  string
	logger     *slog.Logger

	// now is replaceable in tests
	now func() time.Time
}

// New creates a bridge routing requests to d.
func New(d *dispatcher.Dispatcher, version, buildDate string, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		dispatcher: d,
		version:    version,
		buildDate:  buildDate,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle processes a single request line and returns the response line.
func (b *Bridge) Handle(line string) string {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, Separator)
	command, args := parts[0], parts[1:]

	switch command {
	case CmdVersion:
		return formatResponse(command, []string{b.version, b.buildDate}, nil)
	case CmdTimestamp:
		return formatResponse(command, fmt.Sprintf("%d", b.now().UTC().UnixNano()), nil)
	}

	if b.dispatcher == nil || !b.dispatcher.HasHandler(command) {
		b.logger.Warn("No handler registered", "command", command)
		return formatResponse(command, nil, fmt.Errorf("no handler registered"))
	}

	result, err := b.dispatcher.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: b.now(),
	})
	return formatResponse(command, result, err)
}

// formatResponse encodes ["ok", cmd], ["ok", cmd, result] or
// ["error", cmd, message] as a JSON array.
func formatResponse(command string, result any, err error) string {
	var resp []any
	switch {
	case err != nil:
		resp = []any{"error", command, err.Error()}
	case result == nil:
		resp = []any{"ok", command}
	default:
		resp = []any{"ok", command, result}
	}

	out, mErr := json.Marshal(resp)
	if mErr != nil {
		out, _ = json.Marshal([]any{"error", command, mErr.Error()})
	}
	return string(out)
}
