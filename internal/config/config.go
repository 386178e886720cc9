package config

import (
	"fmt"
	"time"

	"github.com/fortkit/extension/pkg/core"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "fortkit.cfg.json"

// MemoryConfig holds in-memory report log settings
type MemoryConfig struct {
	FirstReportID int `json:"firstReportId" mapstructure:"firstReportId"`
}

// StorageConfig selects and configures the report log backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// GraylogConfig holds GELF log sink settings
type GraylogConfig struct {
	Enabled bool
	Address string
}

// MonitorConfig holds status file settings
type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool
	Address string
}

// DisplayConfig is the display state assumed until the host reports its own
type DisplayConfig struct {
	Chrome core.DisplayChrome
	Bounds core.WorldBounds
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./fortkitlogs")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.firstReportId", 0)

	viper.SetDefault("display.menuWidthMode", 0)
	viper.SetDefault("display.areaMapWidthMode", 0)
	viper.SetDefault("display.width", 80)
	viper.SetDefault("display.height", 25)
	viper.SetDefault("world.xCount", 0)
	viper.SetDefault("world.yCount", 0)

	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.interval", "1s")

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.address", "localhost:2112")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "fortkit")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the report log backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			FirstReportID: viper.GetInt("storage.memory.firstReportId"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetGraylogConfig returns the GELF sink settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetMonitorConfig returns the status monitor settings.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Enabled:  viper.GetBool("monitor.enabled"),
		Interval: viper.GetDuration("monitor.interval"),
	}
}

// GetMetricsConfig returns the Prometheus endpoint settings.
func GetMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: viper.GetBool("metrics.enabled"),
		Address: viper.GetString("metrics.address"),
	}
}

// GetDisplayConfig returns the initial display chrome and world bounds.
func GetDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Chrome: core.DisplayChrome{
			MenuWidthMode:       viper.GetInt("display.menuWidthMode"),
			AreaMapWidthMode:    viper.GetInt("display.areaMapWidthMode"),
			ViewportPixelWidth:  viper.GetInt("display.width"),
			ViewportPixelHeight: viper.GetInt("display.height"),
		},
		Bounds: core.WorldBounds{
			MapTileCountX: viper.GetInt("world.xCount"),
			MapTileCountY: viper.GetInt("world.yCount"),
		},
	}
}
