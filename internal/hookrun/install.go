package hookrun

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modu-ai/shed/internal/defs"
)

// ErrNotGitRepo indicates the project root has no .git directory.
var ErrNotGitRepo = errors.New("hookrun: not a git repository")

// preCommitScript is the hook shim written into .git/hooks/pre-commit.
// It defers entirely to `shed hooks run`, so the active hook set always
// tracks the descriptor.
const preCommitScript = `#!/bin/sh
# Installed by shed. Runs the pre-commit hooks enabled in shed.yaml.
exec shed hooks run --staged
`

// InstallPreCommit writes the pre-commit shim into the repository's
// hooks directory. An existing hook file is overwritten; shed owns the
// pre-commit entry point once installed.
func InstallPreCommit(projectRoot string) (string, error) {
	gitDir := filepath.Join(filepath.Clean(projectRoot), defs.GitDir)
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotGitRepo, projectRoot)
	}

	hooksDir := filepath.Join(gitDir, defs.GitHooksSubdir)
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("create hooks directory: %w", err)
	}

	path := filepath.Join(hooksDir, defs.PreCommitHook)
	if err := os.WriteFile(path, []byte(preCommitScript), 0o755); err != nil {
		return "", fmt.Errorf("write pre-commit hook: %w", err)
	}
	return path, nil
}
