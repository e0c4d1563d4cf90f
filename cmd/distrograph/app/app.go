// Package app provides the application context and dependency management
// for the distrograph CLI. It centralizes configuration, logging, and the
// engine instance behind a single lifecycle.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/distrograph/distrograph"
	"github.com/distrograph/distrograph/pkg/errors"
)

// App represents the distrograph application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	engine distrograph.Distrograph
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Engine returns the distrograph instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Engine() (distrograph.Distrograph, error) {
	a.mu.RLock()
	if a.engine != nil {
		eng := a.engine
		a.mu.RUnlock()
		return eng, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.engine != nil {
		return a.engine, nil
	}

	eng, err := distrograph.New(a.buildEngineOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "engine", "", err)
	}

	a.engine = eng
	return eng, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

// buildEngineOptions constructs engine options from the app configuration.
func (a *App) buildEngineOptions() []distrograph.Option {
	var opts []distrograph.Option

	if a.config.ArchivePath != "" {
		opts = append(opts, distrograph.WithArchivePath(a.config.ArchivePath))
	}
	if a.config.DatasetURL != "" {
		opts = append(opts, distrograph.WithDatasetURL(a.config.DatasetURL))
	}
	if a.config.CachePath != "" {
		opts = append(opts, distrograph.WithCachePath(a.config.CachePath))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a custom engine instance (useful for testing).
func WithEngine(eng distrograph.Distrograph) Option {
	return func(a *App) error {
		a.engine = eng
		return nil
	}
}
