package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortkit/extension/internal/config"
	"github.com/fortkit/extension/internal/logging"
	"github.com/fortkit/extension/internal/monitor"
	intOtel "github.com/fortkit/extension/internal/otel"
	"github.com/fortkit/extension/pkg/hostbridge"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentExtensionVersion string = "0.1.0"
	BuildDate               string = "unknown"

	ExtensionName string = "fortkit"
)

var SessionStartTime = time.Now()

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ExtensionName, err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flags := pflag.NewFlagSet(ExtensionName, pflag.ContinueOnError)
	configDir := flags.String("config-dir", hostbridge.ModuleDir(), "directory containing "+config.FileName)
	flags.String("log-level", "", "override logLevel from the config file")
	flags.String("logs-dir", "", "override logsDir from the config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	slogManager := logging.NewSlogManager()
	slogManager.Setup(nil, "info", logging.Options{})
	logger := slogManager.Logger()

	if err := config.Load(*configDir); err != nil {
		logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		logger.Info("Loaded config", "dir", *configDir)
	}
	bindFlag(flags, "logLevel", "log-level")
	bindFlag(flags, "logsDir", "logs-dir")

	logFile, logFilePath, err := openLogFile()
	if err != nil {
		logger.Error("Failed to create/open log file!", "error", err)
	} else {
		defer logFile.Close()
		logger.Info("Begin logging in logs directory", "path", logFilePath)
	}

	// OTel exports next to the log file when enabled
	otelProvider, err := intOtel.New(config.GetOTelConfig(), fileOrNil(logFile))
	if err != nil {
		logger.Error("Failed to initialize OTel provider", "error", err)
	}

	ext, err := newApp(config.GetStorageConfig(), config.GetDisplayConfig())
	if err != nil {
		return err
	}
	defer ext.close()

	opts := logging.Options{
		Context: logging.ClockContext(ext.display.Clock),
	}
	if otelProvider != nil && otelProvider.Enabled() {
		opts.Provider = otelProvider.LoggerProvider()
	}
	if gl := config.GetGraylogConfig(); gl.Enabled {
		h, closer, err := logging.NewGELFHandler(gl.Address, viper.GetString("logLevel"))
		if err != nil {
			logger.Error("Failed to set up Graylog sink", "error", err, "address", gl.Address)
		} else {
			defer closer.Close()
			opts.Extra = append(opts.Extra, h)
		}
	}

	slogManager.Setup(fileOrNil(logFile), viper.GetString("logLevel"), opts)
	logger = slogManager.Logger().With("session", ext.sessionID)

	if err := ext.wire(logger, fileOrNil(logFile)); err != nil {
		return err
	}

	bridge := hostbridge.New(ext.dispatcher, CurrentExtensionVersion, BuildDate, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.GetMonitorConfig().Enabled {
		if err := ext.monitor.Start(ctx); err != nil {
			logger.Error("Failed to start status monitor", "error", err)
		}
	}

	if mc := config.GetMetricsConfig(); mc.Enabled {
		reg, err := monitor.NewRegistry(ext.monitor)
		if err != nil {
			logger.Error("Failed to create metrics registry", "error", err)
		} else {
			go func() {
				if err := monitor.ServeMetrics(ctx, mc.Address, reg, logger); err != nil {
					logger.Error("Prometheus endpoint failed", "error", err, "address", mc.Address)
				}
			}()
		}
	}

	logger.Info("Serving host requests", "version", CurrentExtensionVersion, "commands", len(ext.dispatcher.Commands()))
	err = bridge.Serve(ctx, in, out)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if fErr := slogManager.Flush(shutdownCtx); fErr != nil {
		logger.Error("Failed to flush logs", "error", fErr)
	}
	if otelProvider != nil {
		if sErr := otelProvider.Shutdown(shutdownCtx); sErr != nil {
			logger.Error("Failed to shut down OTel provider", "error", sErr)
		}
	}

	if err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("Shut down")
	return nil
}

// bindFlag lets a flag override a config key when it was set explicitly
func bindFlag(flags *pflag.FlagSet, key, name string) {
	f := flags.Lookup(name)
	if f != nil && f.Changed {
		_ = viper.BindPFlag(key, f)
	}
}

// openLogFile creates the session log in logsDir. An existing file with the
// same name is kept as .old.
func openLogFile() (*os.File, string, error) {
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("error creating logs dir: %w", err)
	}

	path := logging.LogFilePath(logsDir, ExtensionName, SessionStartTime)
	if _, err := os.Stat(path); err == nil {
		_ = os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, path, fmt.Errorf("error opening log file: %w", err)
	}
	return f, path, nil
}

// fileOrNil avoids handing a typed nil *os.File to an io.Writer
func fileOrNil(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}
