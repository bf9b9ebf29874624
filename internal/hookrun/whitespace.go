package hookrun

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modu-ai/shed/pkg/models"
)

// WhitespaceHook is the one built-in hook: it scans text files for
// trailing whitespace and missing final newlines without shelling out
// to an external tool.
type WhitespaceHook struct{}

// NewWhitespaceHook creates the built-in whitespace check.
func NewWhitespaceHook() *WhitespaceHook {
	return &WhitespaceHook{}
}

// Name implements Handler.
func (w *WhitespaceHook) Name() models.HookName {
	return models.HookWhitespace
}

// Run implements Handler. Relative paths resolve against dir. Binary
// files (those containing NUL bytes in the first chunk) are ignored.
func (w *WhitespaceHook) Run(ctx context.Context, dir string, files []string) (*Result, error) {
	var issues []string

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileIssues, err := checkFile(dir, path)
		if err != nil {
			// A vanished file is not a check failure.
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("check %s: %w", path, err)
		}
		issues = append(issues, fileIssues...)
	}

	res := &Result{
		Hook:    models.HookWhitespace,
		Success: len(issues) == 0,
		Output:  strings.Join(issues, "\n"),
	}
	if !res.Success {
		res.ExitCode = 1
	}
	return res, nil
}

// checkFile reports trailing-whitespace and final-newline issues for
// one file. Issues name the path as given; only the open uses dir.
func checkFile(dir, path string) ([]string, error) {
	resolved := path
	if dir != "" && !filepath.IsAbs(path) {
		resolved = filepath.Join(dir, path)
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var issues []string
	var lastByte byte
	sawContent := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 && strings.ContainsRune(line, '\x00') {
			return nil, nil // binary file
		}
		if trimmed := strings.TrimRight(line, " \t"); trimmed != line {
			issues = append(issues, fmt.Sprintf("%s:%d: trailing whitespace", path, lineNo))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Re-check the final byte for a newline; Scanner strips them.
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > 0 {
		sawContent = true
		buf := make([]byte, 1)
		if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
			return nil, err
		}
		lastByte = buf[0]
	}
	if sawContent && lastByte != '\n' {
		issues = append(issues, fmt.Sprintf("%s: no newline at end of file", path))
	}

	return issues, nil
}
