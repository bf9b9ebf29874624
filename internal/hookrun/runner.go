// Package hookrun executes the pre-commit hooks a descriptor enables.
// Each recognized hook name maps to a handler; handlers run
// sequentially with a shared timeout and fail fast on the first
// failing check.
package hookrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modu-ai/shed/pkg/models"
)

// DefaultTimeout bounds a full hook run.
const DefaultTimeout = 30 * time.Second

// Sentinel errors for hook execution.
var (
	// ErrNoHandler indicates no handler is registered for a hook name.
	ErrNoHandler = errors.New("hookrun: no handler registered for hook")

	// ErrHookTimeout indicates the hook run exceeded its timeout.
	ErrHookTimeout = errors.New("hookrun: hook execution timed out")
)

// Result is the outcome of one hook over one batch of files.
type Result struct {
	Hook     models.HookName `json:"hook"`
	Command  string          `json:"command,omitempty"`
	Success  bool            `json:"success"`
	Skipped  bool            `json:"skipped,omitempty"`
	ExitCode int             `json:"exit_code,omitempty"`
	Output   string          `json:"output,omitempty"`
	Duration time.Duration   `json:"duration,omitempty"`
}

// Handler runs one named hook over a set of files. A handler returns
// an error only for infrastructure failures; a failing check is a
// Result with Success=false.
type Handler interface {
	Name() models.HookName
	Run(ctx context.Context, dir string, files []string) (*Result, error)
}

// Runner dispatches enabled hooks to their handlers sequentially.
type Runner struct {
	handlers map[models.HookName]Handler
	timeout  time.Duration
}

// NewRunner creates an empty Runner with the default timeout.
func NewRunner() *Runner {
	return &Runner{
		handlers: make(map[models.HookName]Handler),
		timeout:  DefaultTimeout,
	}
}

// NewRunnerWithTimeout creates an empty Runner with a custom timeout.
func NewRunnerWithTimeout(timeout time.Duration) *Runner {
	return &Runner{
		handlers: make(map[models.HookName]Handler),
		timeout:  timeout,
	}
}

// DefaultRunner returns a Runner with every recognized hook wired to
// its standard handler.
func DefaultRunner() *Runner {
	r := NewRunner()
	r.Register(newCommandHook(models.HookFormatter,
		toolSpec{command: "treefmt", args: []string{"--fail-on-change"}},
		toolSpec{command: "prettier", args: []string{"--check"}, perFile: true},
	))
	r.Register(newCommandHook(models.HookLinter,
		toolSpec{command: "golangci-lint", args: []string{"run"}},
		toolSpec{command: "staticcheck", args: []string{"./..."}},
	))
	r.Register(newCommandHook(models.HookShellLint,
		toolSpec{command: "shellcheck", perFile: true, extensions: []string{".sh", ".bash"}},
	))
	r.Register(newCommandHook(models.HookYAMLLint,
		toolSpec{command: "yamllint", perFile: true, extensions: []string{".yaml", ".yml"}},
	))
	r.Register(NewWhitespaceHook())
	return r
}

// Register adds a handler, replacing any previous handler for the
// same hook name.
func (r *Runner) Register(h Handler) {
	r.handlers[h.Name()] = h
	slog.Debug("hook handler registered", "hook", string(h.Name()))
}

// Handler returns the handler for the given hook name, if registered.
func (r *Runner) Handler(name models.HookName) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Run executes the given hooks in order over the file batch. Hooks run
// sequentially within a timeout context, with dir as their working
// directory; relative file paths resolve against it. The first failing
// hook short-circuits the rest; its result is still included. Results
// for hooks whose tools are unavailable are marked Skipped.
func (r *Runner) Run(ctx context.Context, dir string, hooks []models.HookName, files []string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var results []Result
	for _, name := range hooks {
		h, ok := r.handlers[name]
		if !ok {
			return results, fmt.Errorf("%w: %q", ErrNoHandler, name)
		}

		start := time.Now()
		res, err := h.Run(ctx, dir, files)

		if ctx.Err() != nil {
			slog.Error("hook execution timed out",
				"hook", string(name),
				"timeout", r.timeout.String(),
			)
			return results, fmt.Errorf("%w: %v", ErrHookTimeout, ctx.Err())
		}
		if err != nil {
			return results, fmt.Errorf("hook %s: %w", name, err)
		}

		res.Duration = time.Since(start)
		results = append(results, *res)

		if !res.Success && !res.Skipped {
			slog.Info("hook failed, skipping remaining hooks",
				"hook", string(name),
				"exit_code", res.ExitCode,
			)
			return results, nil
		}
	}

	return results, nil
}

// Failed reports whether any result in the batch is a real failure
// (not a skip).
func Failed(results []Result) bool {
	for _, res := range results {
		if !res.Success && !res.Skipped {
			return true
		}
	}
	return false
}
