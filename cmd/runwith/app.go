// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/runwith/runwith/internal/config"
	"github.com/runwith/runwith/internal/issue"
	"github.com/runwith/runwith/internal/registry"
	"github.com/runwith/runwith/internal/runtime"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer; Cobra handlers receive an App and delegate through it.
	App struct {
		Config       ConfigProvider
		LoadRegistry RegistryLoader
		// Engine launches prepared configurations. When nil, a Dispatcher over
		// the built-in executors is created per run.
		Engine runtime.Engine
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// configPath is the --config flag value.
		configPath string
		verbose    bool
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config       ConfigProvider
		LoadRegistry RegistryLoader
		Engine       runtime.Engine
		Stdin        io.Reader
		Stdout       io.Writer
		Stderr       io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// RegistryLoader reads the run configuration registry from a file.
	RegistryLoader func(path string) (registry.Registry, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.LoadRegistry == nil {
		deps.LoadRegistry = func(path string) (registry.Registry, error) {
			return registry.Load(path)
		}
	}

	return &App{
		Config:       deps.Config,
		LoadRegistry: deps.LoadRegistry,
		Engine:       deps.Engine,
		stdin:        deps.Stdin,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
	}, nil
}

// loadConfig loads the effective configuration, honoring --config.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, _, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId)
	}
	if a.verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// newLogger creates the stderr logger for one command invocation.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level.String())
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName, Level: level})
}

// engine returns the injected engine or a Dispatcher over the built-in executors.
func (a *App) engine(logger *log.Logger) runtime.Engine {
	if a.Engine != nil {
		return a.Engine
	}
	built := runtime.BuildRegistry()
	for _, d := range built.Diagnostics {
		logger.Debug(d.Message, "code", d.Code)
	}
	return runtime.NewDispatcher(built.Registry,
		runtime.WithLogger(logger.WithPrefix("runtime")),
		runtime.WithStdio(a.stdin, a.stdout, a.stderr))
}

// openRegistry loads the registry named by flagPath, else by the config. When
// the default CUE file is missing, a TOML file with the same base name is tried.
func (a *App) openRegistry(cfg *config.Config, flagPath string) (registry.Registry, error) {
	path := flagPath
	if path == "" {
		path = cfg.RegistryFile
		if path == config.DefaultRegistryFile && !fileExists(path) {
			if alt := strings.TrimSuffix(path, filepath.Ext(path)) + ".toml"; fileExists(alt) {
				path = alt
			}
		}
	}

	reg, err := a.LoadRegistry(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newServiceError(err, issue.RegistryNotFoundId)
		}
		return nil, newServiceError(err, issue.RegistryParseErrorId)
	}
	return reg, nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(cfg *config.Config) string {
	if cfg == nil {
		return "auto"
	}
	return cfg.UI.ColorScheme.String()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
