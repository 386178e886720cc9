package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fortkit/extension/internal/config"
	"github.com/fortkit/extension/internal/dispatcher"
	"github.com/fortkit/extension/internal/handlers"
	"github.com/fortkit/extension/internal/logging"
	"github.com/fortkit/extension/internal/monitor"
	"github.com/fortkit/extension/internal/screen"
	"github.com/fortkit/extension/internal/session"
	"github.com/fortkit/extension/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// rootScreen is the screen open when the host starts
const rootScreen = "dwarfmode"

// app owns the shared state behind the host commands
type app struct {
	sessionID  string
	reports    storage.Backend
	display    *session.Display
	screens    *screen.Stack
	monitor    *monitor.Service
	service    *handlers.Service
	dispatcher *dispatcher.Dispatcher
}

func newApp(storageCfg config.StorageConfig, displayCfg config.DisplayConfig) (*app, error) {
	reports, err := storage.NewBackend(storageCfg)
	if err != nil {
		return nil, err
	}
	if err := reports.Init(); err != nil {
		return nil, fmt.Errorf("error initializing %s storage: %w", storageCfg.Type, err)
	}

	return &app{
		sessionID: uuid.NewString(),
		reports:   reports,
		display:   session.NewDisplay(displayCfg),
		screens:   screen.NewStack(rootScreen),
	}, nil
}

// wire creates the dispatcher and registers every command handler.
// Dispatcher logs go to logWriter as JSON, or to stderr when it is nil.
func (a *app) wire(logger *slog.Logger, logWriter io.Writer) error {
	if logWriter == nil {
		logWriter = os.Stderr
	}
	zl := zerolog.New(logWriter).
		Level(logging.ZerologLevel(viper.GetString("logLevel"))).
		With().Timestamp().
		Str("component", "dispatcher").
		Str("session", a.sessionID).
		Logger()

	d, err := dispatcher.New(logging.NewDispatcherLogger(zl))
	if err != nil {
		return fmt.Errorf("error creating dispatcher: %w", err)
	}

	a.monitor = monitor.NewService(monitor.Dependencies{
		Display:   a.display,
		Reports:   a.reports,
		Screens:   a.screens,
		Logger:    logger,
		Dir:       viper.GetString("logsDir"),
		Interval:  config.GetMonitorConfig().Interval,
		SessionID: a.sessionID,
	})

	service, err := handlers.NewService(handlers.Dependencies{
		Display: a.display,
		Reports: a.reports,
		Screens: a.screens,
		Monitor: a.monitor,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("error creating handler service: %w", err)
	}
	service.Register(d)

	a.dispatcher = d
	a.service = service
	return nil
}

func (a *app) close() {
	if a.monitor != nil {
		a.monitor.Stop()
	}
	if a.reports != nil {
		_ = a.reports.Close()
	}
}
