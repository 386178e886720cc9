package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fortkit/extension/internal/announce"
	"github.com/fortkit/extension/internal/dispatcher"
	"github.com/fortkit/extension/internal/monitor"
	"github.com/fortkit/extension/internal/parser"
	"github.com/fortkit/extension/internal/screen"
	"github.com/fortkit/extension/internal/session"
	"github.com/fortkit/extension/internal/storage"
	"github.com/fortkit/extension/internal/util"
	"github.com/fortkit/extension/pkg/core"
)

// Commands understood by the extension
const (
	CmdDisplayChrome  = ":DISPLAY:CHROME:"
	CmdDisplayTick    = ":DISPLAY:TICK:"
	CmdWorldBounds    = ":WORLD:BOUNDS:"
	CmdClockSet       = ":CLOCK:SET:"
	CmdCursorSet      = ":CURSOR:SET:"
	CmdViewportCenter = ":VIEWPORT:CENTER:"
	CmdViewportGet    = ":VIEWPORT:GET:"
	CmdAnnounce       = ":ANNOUNCE:"
	CmdReportsLast    = ":REPORTS:LAST:"
	CmdScreenPush     = ":SCREEN:PUSH:"
	CmdScreenPop      = ":SCREEN:POP:"
	CmdScreenCurrent  = ":SCREEN:CURRENT:"
	CmdStatus         = ":STATUS:"
)

// defaultReportCount is how many reports :REPORTS:LAST: returns without an argument
const defaultReportCount = 10

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Display *session.Display
	Reports storage.Backend
	Screens *screen.Stack
	Monitor *monitor.Service
	Logger  *slog.Logger
}

// Service provides handler methods for host commands
type Service struct {
	deps     Dependencies
	appender *announce.Appender
	logger   *slog.Logger
}

// NewService creates a new handler service
func NewService(deps Dependencies) (*Service, error) {
	appender, err := announce.New(deps.Reports)
	if err != nil {
		return nil, fmt.Errorf("creating announcement appender: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if deps.Monitor == nil {
		deps.Monitor = monitor.NewService(monitor.Dependencies{
			Display: deps.Display,
			Reports: deps.Reports,
			Screens: deps.Screens,
			Logger:  logger,
		})
	}

	return &Service{
		deps:     deps,
		appender: appender,
		logger:   logger,
	}, nil
}

// Register binds every command to d.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(CmdDisplayChrome, s.SetChrome, dispatcher.Logged())
	d.Register(CmdDisplayTick, s.TickDisplay)
	d.Register(CmdWorldBounds, s.SetBounds, dispatcher.Logged())
	d.Register(CmdClockSet, s.SetClock)
	d.Register(CmdCursorSet, s.SetCursor, dispatcher.Logged())
	d.Register(CmdViewportCenter, s.CenterViewport, dispatcher.Logged())
	d.Register(CmdViewportGet, s.GetViewport)
	d.Register(CmdAnnounce, s.Announce, dispatcher.Logged())
	d.Register(CmdReportsLast, s.LastReports)
	d.Register(CmdScreenPush, s.PushScreen, dispatcher.Logged())
	d.Register(CmdScreenPop, s.PopScreen, dispatcher.Logged())
	d.Register(CmdScreenCurrent, s.CurrentScreen)
	d.Register(CmdStatus, s.Status)
}

// SetChrome records the host's UI chrome geometry
func (s *Service) SetChrome(e dispatcher.Event) (any, error) {
	chrome, err := parser.ParseChrome(e.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdDisplayChrome, err)
	}
	s.deps.Display.SetChrome(chrome)
	return nil, nil
}

// TickDisplay ages the new-announcement banner by n ticks
func (s *Service) TickDisplay(e dispatcher.Event) (any, error) {
	n, err := parser.ParseCount(e.Args, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdDisplayTick, err)
	}
	s.deps.Reports.Tick(n)
	return s.deps.Reports.DisplayTimer(), nil
}

// SetBounds records the map extent
func (s *Service) SetBounds(e dispatcher.Event) (any, error) {
	bounds, err := parser.ParseBounds(e.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdWorldBounds, err)
	}
	s.deps.Display.SetBounds(bounds)
	return nil, nil
}

// SetClock records the game time used to stamp reports
func (s *Service) SetClock(e dispatcher.Event) (any, error) {
	clock, err := parser.ParseClock(e.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdClockSet, err)
	}
	s.deps.Display.SetClock(clock)
	return nil, nil
}

// SetCursor moves or hides the map cursor
func (s *Service) SetCursor(e dispatcher.Event) (any, error) {
	cursor, err := parser.ParseCursor(e.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdCursorSet, err)
	}
	s.deps.Display.SetCursor(cursor)
	return nil, nil
}

// CenterViewport centers the map window on the focus given in the args and
// returns the new origin
func (s *Service) CenterViewport(e dispatcher.Event) (any, error) {
	focus, err := parser.ParseFocus(e.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdViewportCenter, err)
	}

	v := s.deps.Display.CenterOn(focus)
	s.logger.Debug("Centered viewport",
		"focusX", focus.X, "focusY", focus.Y, "focusZ", focus.Z,
		"originX", v.OriginX, "originY", v.OriginY)

	return formatViewport(v), nil
}

// GetViewport returns the current viewport origin
func (s *Service) GetViewport(e dispatcher.Event) (any, error) {
	return formatViewport(s.deps.Display.Viewport()), nil
}

// Announce appends an announcement to the report log and returns the number
// of reports it took
func (s *Service) Announce(e dispatcher.Event) (any, error) {
	text, style, err := parser.ParseAnnouncement(e.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdAnnounce, err)
	}

	n := s.appender.Add(text, style, s.deps.Display.Clock())
	if n > 0 {
		s.logger.Info("Announcement added", "reports", n, "length", len(text))
	}
	return n, nil
}

// LastReports returns the newest n reports as a JSON array, oldest first
func (s *Service) LastReports(e dispatcher.Event) (any, error) {
	n, err := parser.ParseCount(e.Args, defaultReportCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CmdReportsLast, err)
	}

	reports := s.deps.Reports.Reports()
	if n < len(reports) {
		reports = reports[len(reports)-n:]
	}

	out, err := json.Marshal(reports)
	if err != nil {
		return nil, fmt.Errorf("%s: error marshalling reports: %w", CmdReportsLast, err)
	}
	return string(out), nil
}

// PushScreen opens a screen on top of the stack
func (s *Service) PushScreen(e dispatcher.Event) (any, error) {
	name := util.ArgAt(util.CleanArgs(e.Args), 0)
	if name == "" {
		return nil, fmt.Errorf("%s: expected screen name", CmdScreenPush)
	}
	s.deps.Screens.Push(screen.Ref(name))
	return string(screen.Deepest(s.deps.Screens)), nil
}

// PopScreen closes the top screen and returns the new active one
func (s *Service) PopScreen(e dispatcher.Event) (any, error) {
	if _, ok := s.deps.Screens.Pop(); !ok {
		return nil, fmt.Errorf("%s: only the root screen is open", CmdScreenPop)
	}
	return string(screen.Deepest(s.deps.Screens)), nil
}

// CurrentScreen returns the active, topmost screen
func (s *Service) CurrentScreen(e dispatcher.Event) (any, error) {
	return string(screen.Deepest(s.deps.Screens)), nil
}

// Status returns a JSON snapshot of the extension state
func (s *Service) Status(e dispatcher.Event) (any, error) {
	out, err := json.Marshal(s.deps.Monitor.GetStatus())
	if err != nil {
		return nil, fmt.Errorf("%s: error marshalling status: %w", CmdStatus, err)
	}
	return string(out), nil
}

func formatViewport(v core.ViewportState) string {
	return fmt.Sprintf("[%d,%d,%d]", v.OriginX, v.OriginY, v.OriginZ)
}
