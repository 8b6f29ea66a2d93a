package gitops

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHeadUnreadable signals that HEAD could not be read back after a
// checkout. Callers must treat it as a non-recoverable invariant violation.
var ErrHeadUnreadable = errors.New("gitops: cannot read HEAD after checkout")

// accessDeniedMarker is the stderr prefix git emits when a remote requires
// credentials that are unavailable because prompting is disabled.
const accessDeniedMarker = "fatal: could not read Username"

// GitError describes a git invocation that failed to start or exited with a
// non-zero status. The captured stderr is kept private: command arguments
// and diagnostics may embed a credential-bearing URL, so Error renders only
// the subcommand, directory and exit code.
type GitError struct {
	Op       string
	Dir      string
	ExitCode int
	Err      error

	stderr string
}

// NewGitError constructs a GitError. stderr is retained for classification
// only and is never part of the rendered message.
func NewGitError(op, dir string, exitCode int, stderr string, err error) *GitError {
	return &GitError{Op: op, Dir: dir, ExitCode: exitCode, Err: err, stderr: stderr}
}

func (e *GitError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("gitops: git %s failed in %s (exit %d)", e.Op, e.Dir, e.ExitCode)
	}
	return fmt.Sprintf("gitops: git %s failed (exit %d)", e.Op, e.ExitCode)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// AccessDenied reports whether the command failed because the remote does
// not exist or requires a login that was blocked.
func (e *GitError) AccessDenied() bool {
	return strings.HasPrefix(strings.TrimSpace(e.stderr), accessDeniedMarker)
}

// CloneError reports a failed attempt to clone a repository that does not
// yet exist locally. It deliberately carries no process output and no clone
// URL: both may embed an access token.
type CloneError struct {
	Dir    string
	Reason string
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("gitops: failed to clone repository into %s: %s", e.Dir, e.Reason)
}

// IsCloneError reports whether err is a CloneError.
func IsCloneError(err error) bool {
	var target *CloneError
	return errors.As(err, &target)
}
