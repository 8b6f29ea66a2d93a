package gitops

import (
	"context"

	"github.com/goliatone/gitprep/pkg/gitidentity"
)

// Runner executes git commands. The default implementation shells out to the
// git binary; tests substitute fakes so no filesystem or network is touched.
type Runner interface {
	// Run executes git with the given arguments in dir (or the current
	// directory when dir is empty) and returns trimmed stdout.
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// Logger defines the interface for logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Handle is an acquired working copy pinned to a canonical remote identity.
// It never stores a raw clone URL, which may embed credentials.
type Handle struct {
	// Path is the local working copy directory.
	Path string

	// Remote is the canonical identity the working copy was acquired for.
	Remote gitidentity.Remote

	// Head is the commit currently checked out. Empty until the repository
	// has a readable HEAD; updated by checkout.
	Head string
}

// Target describes the working copy state a caller wants checked out.
// Validity of the combinations is contextual: an empty target with Offline
// set means "analyze whatever is on disk".
type Target struct {
	// Branch is the remote branch to check out, without the origin/ prefix.
	Branch string

	// Commit is the commit digest to pin, possibly combined with Branch.
	Commit string

	// Offline suppresses the default-branch checkout when neither Branch
	// nor Commit is requested.
	Offline bool
}

// nopLogger discards all log output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return nopLogger{}
}
