// Package cli provides the Cobra command tree and dependency injection
// wiring for the shed CLI. This file defines the Dependencies struct
// (Composition Root) that wires the domain services together.
package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/modu-ai/shed/internal/defs"
	"github.com/modu-ai/shed/internal/descriptor"
	"github.com/modu-ai/shed/internal/hookrun"
	"github.com/modu-ai/shed/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Descriptor *descriptor.Manager
	Hooks      *hookrun.Runner
	Theme      *ui.Theme
	Headless   *ui.HeadlessManager
	Progress   *ui.Progress
	Logger     *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup.
func InitDependencies() {
	theme := ui.NewTheme(noColorRequested())
	headless := ui.NewHeadlessManager()

	deps = &Dependencies{
		Descriptor: descriptor.NewManager(),
		Hooks:      hookrun.DefaultRunner(),
		Theme:      theme,
		Headless:   headless,
		Progress:   ui.NewProgress(theme, headless),
		Logger:     newLogger(os.Stderr),
	}

	// Domain packages log through the default logger; route it through
	// the env-configured one so SHED_LOG_LEVEL takes effect everywhere.
	slog.SetDefault(deps.Logger)
}

// noColorRequested reports whether SHED_NO_COLOR is set to a truthy
// value ("true" or "1").
func noColorRequested() bool {
	v := os.Getenv(defs.EnvNoColor)
	return v == "1" || strings.EqualFold(v, "true")
}

// newLogger builds the CLI logger. Level comes from SHED_LOG_LEVEL;
// warnings and above by default so command output stays clean.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv(defs.EnvLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}
