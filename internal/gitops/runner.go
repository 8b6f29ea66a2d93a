package gitops

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// defaultRunner implements Runner by shelling out to the git binary.
type defaultRunner struct{}

// NewRunner creates a Runner backed by the installed git binary.
func NewRunner() Runner {
	return &defaultRunner{}
}

// Run executes a git command. GIT_TERMINAL_PROMPT=0 disables interactive
// credential prompting so an inaccessible remote fails fast with a non-zero
// exit instead of hanging on user input.
func (r *defaultRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		op := ""
		if len(args) > 0 {
			op = args[0]
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", NewGitError(op, dir, exitCode, stderr.String(), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
