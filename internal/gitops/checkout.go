package gitops

import (
	"context"
	"fmt"
	"slices"
)

// Checkout drives an acquired working copy to an exact requested state. It
// assumes a remote named "origin" exists and checks out from that remote
// only.
type Checkout struct {
	runner Runner
	meta   *Metadata
	logger Logger
}

// NewCheckout creates a Checkout sharing the runner with a Metadata resolver
// for branch containment queries.
func NewCheckout(runner Runner, meta *Metadata, logger Logger) *Checkout {
	return &Checkout{runner: runner, meta: meta, logger: logger}
}

// Resolve forces the working copy behind h into the state described by
// target and verifies the result.
//
// With neither branch nor commit requested, the default branch at
// origin/HEAD is checked out. If target.Offline is set instead, whatever is
// currently on disk is analyzed as-is, uncommitted local changes included.
// A branch alone checks out origin/<branch>; a commit alone checks
// out the commit directly. When both are given, the commit is checked out
// only if it is reachable from origin/<branch>; otherwise the tree is left
// untouched.
//
// Every checkout is forced, discarding local modifications, so repeated
// invocations over a reused directory converge to the requested state.
// Expected failures (unknown branch or commit, containment mismatch, HEAD
// not at the requested commit) return false with a logged cause. The only
// non-nil error is ErrHeadUnreadable, raised when HEAD cannot be read back
// afterward; callers must treat that as fatal.
func (c *Checkout) Resolve(ctx context.Context, h *Handle, target Target) (bool, error) {
	repo := h.Remote.CompleteName()

	if !target.Offline && target.Branch == "" && target.Commit == "" {
		if _, err := c.runner.Run(ctx, h.Path, "checkout", "--force", "origin/HEAD"); err != nil {
			c.logger.Debug("cannot checkout the default branch at origin/HEAD", "repo", repo)
			return false, nil
		}
	}

	// The remaining combinations apply whether offline or not.
	if target.Branch != "" && target.Commit == "" {
		if _, err := c.runner.Run(ctx, h.Path, "checkout", "--force", "origin/"+target.Branch); err != nil {
			c.logger.Debug("cannot checkout branch from origin", "repo", repo, "branch", target.Branch)
			return false, nil
		}
	}

	if target.Branch == "" && target.Commit != "" {
		if _, err := c.runner.Run(ctx, h.Path, "checkout", "--force", target.Commit); err != nil {
			c.logger.Debug("cannot checkout commit", "repo", repo, "commit", target.Commit)
			return false, nil
		}
	}

	if target.Branch != "" && target.Commit != "" {
		branches := c.meta.BranchesContaining(ctx, h.Path, target.Commit)
		if !slices.Contains(branches, "origin/"+target.Branch) {
			c.logger.Error("commit is not on the requested branch",
				"repo", repo, "commit", target.Commit, "branch", target.Branch)
			return false, nil
		}
		if _, err := c.runner.Run(ctx, h.Path, "checkout", "--force", target.Commit); err != nil {
			c.logger.Debug("cannot checkout commit", "repo", repo, "commit", target.Commit)
			return false, nil
		}
	}

	// Verify the checkout landed where requested.
	head, err := c.runner.Run(ctx, h.Path, "rev-parse", "HEAD")
	if err != nil || head == "" {
		return false, fmt.Errorf("%w: %s", ErrHeadUnreadable, repo)
	}

	if target.Commit != "" && head != target.Commit {
		c.logger.Error("HEAD is not at the requested commit",
			"repo", repo, "head", head, "want", target.Commit)
		return false, nil
	}

	h.Head = head
	c.logger.Info("working copy checked out", "repo", repo, "head", head)
	return true, nil
}
