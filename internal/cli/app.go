// Package cli wires configuration, logging and theming for the contactus commands.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/contactus/internal/cli/styles"
	"github.com/bnema/contactus/internal/config"
	"github.com/bnema/contactus/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	Theme      *styles.Theme
	RunID      string

	ctx context.Context
}

// Options are the global flag values that shape an App.
type Options struct {
	ConfigFile string
	LogLevel   string
}

// NewApp loads configuration and builds the logger every command shares.
func NewApp(opts Options) (*App, error) {
	m, err := config.NewManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := m.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger := logging.NewFromConfigValues(level, cfg.Logging.Format)

	runID := logging.GenerateRunID()
	ctx := logging.WithContext(context.Background(), logger)
	ctx = logging.WithRunID(ctx, runID)

	return &App{
		Config:     cfg,
		ConfigFile: m.ConfigFileUsed(),
		Theme:      styles.NewTheme(),
		RunID:      runID,
		ctx:        ctx,
	}, nil
}

// Context returns the root context carrying the logger.
func (a *App) Context() context.Context {
	if a == nil || a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}
