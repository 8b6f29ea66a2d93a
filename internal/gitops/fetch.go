package gitops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goliatone/gitprep/pkg/gitidentity"
)

// Fetcher acquires local working copies and keeps shared ones up to date.
type Fetcher struct {
	runner Runner
	logger Logger
}

// NewFetcher creates a Fetcher using the given runner.
func NewFetcher(runner Runner, logger Logger) *Fetcher {
	return &Fetcher{runner: runner, logger: logger}
}

// Acquire ensures a working copy for remote exists at targetDir and returns
// a handle over it. cloneURL overrides the reconstructed remote URL when the
// caller needs to embed credentials; the override never reaches errors or
// logs.
//
// An existing empty targetDir is deleted and cloned fresh. An existing
// non-empty targetDir is treated as a clone from a prior run sharing the
// same output location and updated with a forced, pruning fetch; if that
// update fails the result is (nil, nil) so a stale shared clone does not
// abort the caller. A missing targetDir is created through a treeless
// partial clone, which bounds clone cost on large repositories by fetching
// file contents lazily. Only that fresh clone path can return a CloneError.
//
// Acquire performs no retries; concurrent calls against the same targetDir
// must be serialized by the caller.
func (f *Fetcher) Acquire(ctx context.Context, targetDir string, remote gitidentity.Remote, cloneURL string) (*Handle, error) {
	if cloneURL == "" {
		cloneURL = remote.URL()
	}

	if info, err := os.Stat(targetDir); err == nil && info.IsDir() {
		// os.Remove only succeeds on an empty directory, mirroring the
		// two cases: leftover empty dir vs. a real prior clone.
		if rmErr := os.Remove(targetDir); rmErr != nil {
			return f.update(ctx, targetDir, remote)
		}
		f.logger.Debug("removed empty clone directory", "dir", targetDir)
	}

	parent := filepath.Dir(targetDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, &CloneError{Dir: targetDir, Reason: "cannot create parent directory"}
	}

	if _, err := f.runner.Run(ctx, parent, "clone", "--filter=tree:0", cloneURL); err != nil {
		return nil, &CloneError{Dir: targetDir, Reason: "git clone --filter=tree:0 exited with a non-zero status"}
	}

	f.logger.Info("cloned repository", "repo", remote.CompleteName(), "dir", targetDir)
	return f.handle(ctx, targetDir, remote), nil
}

// update refreshes an existing clone so the local copy matches origin:
// modified tags are overwritten, deleted branches and tags are pruned.
func (f *Fetcher) update(ctx context.Context, targetDir string, remote gitidentity.Remote) (*Handle, error) {
	_, err := f.runner.Run(ctx, targetDir,
		"fetch", "origin", "--force", "--tags", "--prune", "--prune-tags")
	if err != nil {
		f.logger.Debug("update of existing clone failed", "repo", remote.CompleteName(), "dir", targetDir)
		return nil, nil
	}

	f.logger.Debug("updated existing clone", "repo", remote.CompleteName(), "dir", targetDir)
	return f.handle(ctx, targetDir, remote), nil
}

// handle builds a Handle over dir. HEAD stays empty for a repository with no
// checked out commit.
func (f *Fetcher) handle(ctx context.Context, dir string, remote gitidentity.Remote) *Handle {
	head, err := f.runner.Run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		head = ""
	}
	return &Handle{Path: dir, Remote: remote, Head: head}
}

// IsEmpty reports whether the working copy at dir has no commit checked out.
func (f *Fetcher) IsEmpty(ctx context.Context, dir string) bool {
	head, err := f.runner.Run(ctx, dir, "rev-parse", "HEAD")
	return err != nil || head == ""
}
