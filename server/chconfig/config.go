package chconfig

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jpillora/requestlog"

	"github.com/openrport/sysdash/share/logger"
)

type APIConfig struct {
	Address         string   `mapstructure:"address"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	DocRoot         string   `mapstructure:"doc_root"`
	MaxRequestBytes int64    `mapstructure:"max_request_bytes"`
}

type LogConfig struct {
	LogOutput logger.LogOutput `mapstructure:"log_file"`
	LogLevel  logger.LogLevel  `mapstructure:"log_level"`
}

type TelemetryConfig struct {
	TopProcessesLimit int           `mapstructure:"top_processes_limit"`
	CPUSampleInterval time.Duration `mapstructure:"cpu_sample_interval"`
	CommandTimeout    time.Duration `mapstructure:"command_timeout"`
}

type WindowsConfig struct {
	MinWidth          float64       `mapstructure:"min_width"`
	MinHeight         float64       `mapstructure:"min_height"`
	ShellReplyTimeout time.Duration `mapstructure:"shell_reply_timeout"`
}

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Logging   LogConfig       `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Windows   WindowsConfig   `mapstructure:"windows"`
}

const (
	DefaultAddress           = "127.0.0.1:7777"
	DefaultMaxRequestBytes   = 10 * 1024
	DefaultTopProcessesLimit = 10
	DefaultCommandTimeout    = 5 * time.Second
	DefaultMinWidth          = 300
	DefaultMinHeight         = 200
	DefaultShellReplyTimeout = 10 * time.Second
)

var DefaultCORSOrigins = []string{"tauri://localhost", "http://localhost:1420"}

// Defaults is keyed the way viper addresses the config file.
var Defaults = map[string]interface{}{
	"api.address":                   DefaultAddress,
	"api.cors_origins":              DefaultCORSOrigins,
	"api.max_request_bytes":         DefaultMaxRequestBytes,
	"logging.log_level":             "info",
	"telemetry.top_processes_limit": DefaultTopProcessesLimit,
	"telemetry.cpu_sample_interval": "0s",
	"telemetry.command_timeout":     DefaultCommandTimeout.String(),
	"windows.min_width":             DefaultMinWidth,
	"windows.min_height":            DefaultMinHeight,
	"windows.shell_reply_timeout":   DefaultShellReplyTimeout.String(),
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.API.Address == "" {
		result = multierror.Append(result, fmt.Errorf("'api.address' is required"))
	} else if _, _, err := net.SplitHostPort(c.API.Address); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid 'api.address' %q: %v", c.API.Address, err))
	}
	if c.API.MaxRequestBytes < 0 {
		result = multierror.Append(result, fmt.Errorf("'api.max_request_bytes' can not be negative"))
	}
	if c.Telemetry.TopProcessesLimit < 1 {
		result = multierror.Append(result, fmt.Errorf("'telemetry.top_processes_limit' must be at least 1, actual: %d", c.Telemetry.TopProcessesLimit))
	}
	if c.Telemetry.CPUSampleInterval < 0 {
		result = multierror.Append(result, fmt.Errorf("'telemetry.cpu_sample_interval' can not be negative"))
	}
	if c.Telemetry.CommandTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("'telemetry.command_timeout' can not be negative"))
	}
	if c.Windows.MinWidth <= 0 || c.Windows.MinHeight <= 0 {
		result = multierror.Append(result, fmt.Errorf("'windows.min_width' and 'windows.min_height' must be positive"))
	}
	if c.Windows.ShellReplyTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("'windows.shell_reply_timeout' must be positive"))
	}

	return result.ErrorOrNil()
}

func (c *Config) InitRequestLogOptions() *requestlog.Options {
	o := requestlog.DefaultOptions
	o.Writer = c.Logging.LogOutput.Writer()
	o.Filter = func(r *http.Request, code int, duration time.Duration, size int64) bool {
		return c.Logging.LogLevel == logger.LogLevelInfo || c.Logging.LogLevel == logger.LogLevelDebug
	}
	return &o
}
