package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitprep/internal/gitops"
	"github.com/goliatone/gitprep/pkg/gitidentity"
	"github.com/goliatone/gitprep/pkg/workspace"
)

func newPrepareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare <url>",
		Short: "Clone or update a repository and check out the requested state",
		Long: `Prepare resolves the remote URL against the configured git services,
clones or updates the repository under the output directory, and checks
out the requested branch or commit. On success it prints the local path
and the resulting HEAD commit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(cmd, args[0])
		},
	}
}

func runPrepare(cmd *cobra.Command, rawURL string) error {
	logger := container.Logger()

	remote, ok := gitidentity.Normalize(rawURL, cfg.AllowedHosts())
	if !ok {
		return newValidationError(fmt.Sprintf("unsupported or disallowed repository URL %q", rawURL), nil)
	}

	if cfg.Commit != "" && !gitidentity.IsCommitHash(cfg.Commit) {
		return newValidationError(fmt.Sprintf("%q is not a commit digest; use --branch for branch names", cfg.Commit), nil)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Git.Timeout)
	defer cancel()

	outputRoot := workspace.Resolve("", cfg)
	repoDir := workspace.RepoDir(outputRoot, remote)

	logger.Info("Preparing repository", "repo", remote.CompleteName(), "dir", repoDir)

	// Serialize work on the clone across invocations sharing the output root.
	guard, err := container.Locker().AcquireWithContext(ctx, repoDir)
	if err != nil {
		return newFileError("could not lock repository directory", err)
	}
	defer guard.Release()

	var handle *gitops.Handle
	if cfg.Git.Offline {
		// Offline trusts the existing clone but confirms it points at the
		// requested repository, so two remotes sharing a sanitized directory
		// name cannot be confused.
		if origin := gitidentity.RemoteOrigin(repoDir); origin != "" {
			if existing, ok := gitidentity.Normalize(origin, cfg.AllowedHosts()); ok && existing.CompleteName() != remote.CompleteName() {
				return newValidationError(
					fmt.Sprintf("local clone at %s tracks %s, not %s", repoDir, existing.CompleteName(), remote.CompleteName()), nil)
			}
		}
		handle = &gitops.Handle{Path: repoDir, Remote: remote}
	} else {
		handle, err = container.Fetcher().Acquire(ctx, repoDir, remote, "")
		if err != nil {
			return newNetworkError("could not obtain repository", err)
		}
		if handle == nil {
			return newNetworkError(fmt.Sprintf("could not update existing clone of %s", remote.CompleteName()), nil)
		}
	}

	if container.Fetcher().IsEmpty(ctx, handle.Path) {
		return newValidationError(fmt.Sprintf("repository %s has no commits", remote.CompleteName()), nil)
	}

	target := gitops.Target{
		Branch:  cfg.Branch,
		Commit:  cfg.Commit,
		Offline: cfg.Git.Offline,
	}

	resolved, err := container.Checkout().Resolve(ctx, handle, target)
	if err != nil {
		return newCheckoutError("could not resolve checkout state", err)
	}
	if !resolved && target.Branch == "" && target.Commit == "" && !target.Offline {
		// origin/HEAD can be unrecorded, for example in clones made by older
		// git versions. The hosting service still knows the default branch.
		if branch := serviceDefaultBranch(ctx, remote); branch != "" {
			logger.Info("retrying checkout with the default branch from the hosting service",
				"repo", remote.CompleteName(), "branch", branch)
			target.Branch = branch
			resolved, err = container.Checkout().Resolve(ctx, handle, target)
			if err != nil {
				return newCheckoutError("could not resolve checkout state", err)
			}
		}
	}
	if !resolved {
		return newCheckoutError(
			fmt.Sprintf("requested state (branch %q, commit %q) is not available in %s",
				cfg.Branch, cfg.Commit, remote.CompleteName()), nil)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", handle.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "HEAD: %s\n", handle.Head)
	return nil
}

// githubHosted reports whether the hosting service API can answer for the
// remote: repositories on github.com, or any allowed remote when a GitHub
// Enterprise endpoint is configured.
func githubHosted(remote gitidentity.Remote) bool {
	if remote.Host == "github.com" {
		return true
	}
	endpoint := cfg.Integration.GitHub.Endpoint
	return endpoint != "" && endpoint != "https://api.github.com"
}

// serviceDefaultBranch asks the hosting service for the repository's default
// branch. Any API failure degrades to an empty result so the caller's own
// error reporting stays in charge.
func serviceDefaultBranch(ctx context.Context, remote gitidentity.Remote) string {
	if !githubHosted(remote) {
		return ""
	}
	branch, err := container.GitService().DefaultBranch(ctx, remote.Owner, gitidentity.Clean(remote.Name))
	if err != nil {
		container.Logger().Debug("hosting service could not report the default branch",
			"repo", remote.CompleteName())
		return ""
	}
	return branch
}
