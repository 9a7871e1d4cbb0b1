// Package config loads settings for hosts of the Citrine runtime, chiefly the
// Request server.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Config is the configuration of a Request server.
type Config struct {
	// Host is the address to listen on.
	Host string `toml:"host" yaml:"host"`
	// Port is the TCP port to listen on.
	Port int `toml:"port" yaml:"port"`
	// PidFile, if not empty, receives the server's process ID while it runs.
	PidFile string `toml:"pid-file" yaml:"pid-file"`
	// MaxRequests is the number of requests after which the server stops. Zero
	// means no limit.
	MaxRequests int `toml:"max-requests" yaml:"max-requests"`
	// ReadTimeout and WriteTimeout bound each request.
	ReadTimeout  Duration `toml:"read-timeout" yaml:"read-timeout"`
	WriteTimeout Duration `toml:"write-timeout" yaml:"write-timeout"`
	// MaxBody is the largest request body, in bytes, that the server parses.
	MaxBody int64 `toml:"max-body" yaml:"max-body"`
	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `toml:"log-level" yaml:"log-level"`
}

// Duration is a time.Duration that reads from text such as "30s".
type Duration time.Duration

// UnmarshalText parses a duration for TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML parses a duration for YAML.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         4000,
		MaxRequests:  0,
		ReadTimeout:  Duration(30 * time.Second),
		WriteTimeout: Duration(30 * time.Second),
		MaxBody:      10 << 20,
		LogLevel:     "info",
	}
}

// ErrFormat is returned by Load for files of unknown format.
var ErrFormat = errors.New("unknown config format")

// Load reads a configuration file over the defaults. The format comes from
// the file extension: .toml, .yaml, or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("citrine: cannot read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, &cfg)
	default:
		return cfg, fmt.Errorf("citrine: %s: %w", path, ErrFormat)
	}
	if err != nil {
		return cfg, fmt.Errorf("citrine: parse error in %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("citrine: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxRequests < 0 {
		return fmt.Errorf("max-requests must not be negative")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.MaxBody <= 0 {
		return fmt.Errorf("max-body must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("bad log-level %q", c.LogLevel)
	}
	return l, nil
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
