package hookrun

import (
	"context"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modu-ai/shed/pkg/models"
)

// toolSpec describes one external command a hook can run. Specs are
// tried in declaration order; the first available command wins.
type toolSpec struct {
	command    string
	args       []string
	perFile    bool     // append matching files to the argument list
	extensions []string // restrict perFile matching; empty means all files
}

// matchingFiles filters the batch down to the files this spec applies to.
func (s toolSpec) matchingFiles(files []string) []string {
	if len(s.extensions) == 0 {
		return files
	}
	var out []string
	for _, f := range files {
		if slices.Contains(s.extensions, strings.ToLower(filepath.Ext(f))) {
			out = append(out, f)
		}
	}
	return out
}

// commandHook runs an external tool. A hook whose tools are all
// unavailable on PATH reports a skipped result rather than failing:
// the descriptor toggles the check on, but the shell has not been
// provisioned with the tool yet.
type commandHook struct {
	name     models.HookName
	specs    []toolSpec
	lookPath func(string) (string, error)
}

func newCommandHook(name models.HookName, specs ...toolSpec) *commandHook {
	return &commandHook{
		name:     name,
		specs:    specs,
		lookPath: exec.LookPath,
	}
}

// Name implements Handler.
func (c *commandHook) Name() models.HookName {
	return c.name
}

// Run implements Handler. The first available tool runs in dir; its
// exit code decides the result.
func (c *commandHook) Run(ctx context.Context, dir string, files []string) (*Result, error) {
	for _, spec := range c.specs {
		if _, err := c.lookPath(spec.command); err != nil {
			continue
		}

		args := slices.Clone(spec.args)
		if spec.perFile {
			matched := spec.matchingFiles(files)
			if len(matched) == 0 {
				return &Result{Hook: c.name, Command: spec.command, Success: true, Skipped: true}, nil
			}
			args = append(args, matched...)
		}

		cmd := exec.CommandContext(ctx, spec.command, args...)
		cmd.Dir = dir
		output, err := cmd.CombinedOutput()

		res := &Result{
			Hook:    c.name,
			Command: spec.command,
			Output:  strings.TrimSpace(string(output)),
			Success: err == nil,
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		} else if err != nil {
			return nil, err
		}
		return res, nil
	}

	// No tool available on PATH.
	return &Result{Hook: c.name, Success: true, Skipped: true}, nil
}
