// Package config provides centralized configuration management for the
// editor. Settings come from an optional YAML file (ACES_CONFIG) overlaid by
// environment variables, with sensible defaults and fail-fast validation on
// startup.
package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1, the tool is
	// a local editor)
	Host string `yaml:"host" env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `yaml:"port" env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request body
	ReadTimeout time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// PathsConfig holds table input/output locations.
type PathsConfig struct {
	// DataDir is the directory holding the input tables (binary pairs or
	// JSON dumps). Empty means the embedded default bundle.
	DataDir string `yaml:"data_dir" env:"ACES_DATA_DIR"`

	// OutputDir is where committed binary pairs are written (created if
	// absent).
	OutputDir string `yaml:"output_dir" env:"ACES_OUTPUT_DIR" default:"Output"`

	// AuditDB is the path of the SQLite audit log.
	AuditDB string `yaml:"audit_db" env:"ACES_AUDIT_DB" default:"aces-audit.db"`

	// BaselinePlane is the PlaneStringID of the template aircraft whose
	// stats fill omitted fields on add.
	BaselinePlane string `yaml:"baseline_plane" env:"ACES_BASELINE_PLANE" default:"f18f"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json
	Format string `yaml:"format" env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "SERVER_PORT must be 1-65535")
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	if c.Paths.OutputDir == "" {
		errs = append(errs, "ACES_OUTPUT_DIR must not be empty")
	}
	if c.Paths.AuditDB == "" {
		errs = append(errs, "ACES_AUDIT_DB must not be empty")
	}
	if c.Paths.BaselinePlane == "" {
		errs = append(errs, "ACES_BASELINE_PLANE must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, "LOG_FORMAT must be one of: text, json")
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// ValidationError lists every configuration problem found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed:\n  - " + strings.Join(e.Problems, "\n  - ")
}
