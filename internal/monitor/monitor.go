package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/fortkit/extension/internal/screen"
	"github.com/fortkit/extension/internal/session"
	"github.com/fortkit/extension/internal/storage"
	"github.com/fortkit/extension/pkg/core"
)

// StatusFileName is written into the status directory on every interval
const StatusFileName = "status.json"

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Display  *session.Display
	Reports  storage.Backend
	Screens  *screen.Stack
	Logger   *slog.Logger
	Dir      string
	Interval time.Duration

	// SessionID identifies this run in status output
	SessionID string
}

// Status is a point-in-time snapshot of the extension state
type Status struct {
	Session       string             `json:"session,omitempty"`
	Time          time.Time          `json:"time"`
	Clock         core.Clock         `json:"clock"`
	Viewport      core.ViewportState `json:"viewport"`
	Cursor        core.CursorState   `json:"cursor"`
	Reports       int                `json:"reports"`
	Announcements int                `json:"announcements"`
	NextReportID  int                `json:"nextReportId"`
	DisplayTimer  int                `json:"displayTimer"`
	Screen        string             `json:"screen"`
	ScreenDepth   int                `json:"screenDepth"`

	// process stats are zero when unavailable
	ProcessRSS uint64  `json:"processRssBytes"`
	ProcessCPU float64 `json:"processCpuPercent"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	proc      *process.Process
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	s := &Service{deps: deps}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = proc
	} else {
		deps.Logger.Debug("Process stats unavailable", "error", err)
	}
	return s
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus returns the current status
func (s *Service) GetStatus() Status {
	st := Status{
		Session:       s.deps.SessionID,
		Time:          time.Now().UTC(),
		Clock:         s.deps.Display.Clock(),
		Viewport:      s.deps.Display.Viewport(),
		Cursor:        s.deps.Display.Cursor(),
		Reports:       len(s.deps.Reports.Reports()),
		Announcements: len(s.deps.Reports.Announcements()),
		NextReportID:  s.deps.Reports.PeekNextReportID(),
		DisplayTimer:  s.deps.Reports.DisplayTimer(),
	}
	if s.deps.Screens != nil {
		st.Screen = string(screen.Deepest(s.deps.Screens))
		st.ScreenDepth = s.deps.Screens.Depth()
	}
	if s.proc != nil {
		if mem, err := s.proc.MemoryInfo(); err == nil {
			st.ProcessRSS = mem.RSS
		}
		if cpu, err := s.proc.CPUPercent(); err == nil {
			st.ProcessCPU = cpu
		}
	}
	return st
}

// WriteStatus writes the current status to the status file
func (s *Service) WriteStatus() error {
	data, err := json.MarshalIndent(s.GetStatus(), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling status: %w", err)
	}
	path := filepath.Join(s.deps.Dir, StatusFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing status file: %w", err)
	}
	return nil
}

// Start starts the status monitor goroutine. It stops on Stop or when ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if err := os.MkdirAll(s.deps.Dir, 0755); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("error creating status dir: %w", err)
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.Logger
		logger.Debug("Starting status monitor goroutine", "interval", s.deps.Interval)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.WriteStatus(); err != nil {
					logger.Error("Error writing status", "error", err)
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor and waits for it to exit
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	done := s.done
	s.isRunning = false
	s.mu.Unlock()
	<-done
}
