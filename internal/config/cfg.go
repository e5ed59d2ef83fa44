// Package config handles all configuration logic for hyprevents.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hooks"
	"github.com/dsrosen6/hyprevents/internal/listener"
	"github.com/dsrosen6/hyprevents/internal/logging"
	"github.com/dsrosen6/hyprevents/internal/notify"
)

const (
	cfgDirName  = "hyprevents"
	cfgFileName = "config.yaml"

	reloadBackoff = 100 * time.Millisecond
)

// Config is read once at startup and replaced in place by Reload. It is not
// safe for concurrent use.
type Config struct {
	path      string
	Mode      string          `yaml:"mode" env:"HYPREVENTS_MODE"`
	Log       logging.Options `yaml:"log"`
	LogEvents []string        `yaml:"log_events"`
	Notify    notify.Options  `yaml:"notify"`
	Hooks     []hooks.Rule    `yaml:"hooks"`
}

// DefaultPath is config.yaml under the user's config directory.
func DefaultPath() (string, error) {
	uc, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory path: %w", err)
	}
	return filepath.Join(uc, cfgDirName, cfgFileName), nil
}

// InitConfig reads the config at path, or at DefaultPath when path is empty.
// A default file is written if none exists.
func InitConfig(path string) (*Config, error) {
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}

	if _, err := os.Stat(path); err != nil {
		slog.Info("no config file found; creating default", "path", path)
		if err := Default(path).Write(); err != nil {
			return nil, fmt.Errorf("creating default config file: %w", err)
		}
	}

	return readConfig(path)
}

func Default(path string) *Config {
	return &Config{
		path:      path,
		Mode:      listener.Blocking.String(),
		Log:       logging.Options{Level: "info"},
		LogEvents: []string{},
		Notify:    notify.Options{AppName: "hyprevents"},
		Hooks:     []hooks.Rule{},
	}
}

func readConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}

	cfg.path = path
	return cfg, nil
}

func (c *Config) Path() string {
	return c.path
}

// ListenMode is the configured listener mode; Validate has already rejected
// unknown values.
func (c *Config) ListenMode() listener.Mode {
	m, _ := listener.ParseMode(c.Mode)
	return m
}

// LoggedKinds returns the kinds named in log_events, or every kind when the
// list is empty.
func (c *Config) LoggedKinds() []event.Kind {
	if len(c.LogEvents) == 0 {
		return event.Kinds()
	}

	var kinds []event.Kind
	for _, name := range c.LogEvents {
		if k, ok := event.ParseKind(name); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if _, err := listener.ParseMode(c.Mode); err != nil {
		errs = multierror.Append(errs, err)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = multierror.Append(errs, err)
	}

	for _, name := range c.LogEvents {
		if _, ok := event.ParseKind(name); !ok {
			errs = multierror.Append(errs, fmt.Errorf("log_events: unknown event %q", name))
		}
	}

	if _, err := hooks.Compile(c.Hooks); err != nil {
		var me *multierror.Error
		if errors.As(err, &me) {
			errs = multierror.Append(errs, me.Errors...)
		} else {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}

func (c *Config) Write() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("checking and/or creating config directory: %w", err)
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling yaml: %w", err)
	}

	if err := os.WriteFile(c.path, b, 0o644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

// Reload rereads the file, retrying while editors are mid-write. The current
// values are kept if the new file never parses or does not validate.
func (c *Config) Reload(retries int) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			time.Sleep(reloadBackoff)
		}

		var next *Config
		next, err = readConfig(c.path)
		if err != nil {
			slog.Debug("config reload attempt failed", "attempt", attempt+1, "error", err)
			continue
		}

		if err := next.Validate(); err != nil {
			return fmt.Errorf("validating reloaded config: %w", err)
		}

		c.Mode = next.Mode
		c.Log = next.Log
		c.LogEvents = next.LogEvents
		c.Notify = next.Notify
		c.Hooks = next.Hooks
		slog.Info("config reloaded", "path", c.path)
		return nil
	}

	return fmt.Errorf("reloading config after %d attempts: %w", retries+1, err)
}
