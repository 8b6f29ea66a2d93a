package gitops

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/gitprep/pkg/gitidentity"
)

// Metadata answers read-only questions about a repository's refs, either
// from the local clone or over the wire without cloning.
type Metadata struct {
	runner Runner
	logger Logger
}

// NewMetadata creates a Metadata resolver using the given runner.
func NewMetadata(runner Runner, logger Logger) *Metadata {
	return &Metadata{runner: runner, logger: logger}
}

// DefaultBranch returns the default branch name recorded at origin/HEAD.
// This performs no network call: the reference is set when the repository is
// first cloned, so it stays resolvable even with HEAD detached, and the call
// is safe to repeat. Returns empty if the reference was never recorded, e.g.
// for a shallow clone taken from a non-default branch.
func (m *Metadata) DefaultBranch(ctx context.Context, repoPath string) string {
	out, err := m.runner.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "origin/HEAD")
	if err != nil {
		m.logger.Debug("cannot resolve origin/HEAD", "dir", repoPath)
		return ""
	}
	return strings.TrimPrefix(out, "origin/")
}

// BranchesContaining returns the origin branches that contain the given
// commit, each in the form origin/<branch>. An empty result covers both "no
// branch contains it" and "the lookup failed".
func (m *Metadata) BranchesContaining(ctx context.Context, repoPath, commit string) []string {
	out, err := m.runner.Run(ctx, repoPath,
		"branch", "--remotes", "--list", "origin/*", "--contains", commit)
	if err != nil {
		m.logger.Debug("cannot list branches containing commit", "dir", repoPath, "commit", commit)
		return nil
	}
	return ParseBranchOutput(out)
}

// ParseBranchOutput extracts branch entries from `git branch --list` style
// output. The "*" marker next to the currently checked out branch is
// dropped; branches cannot contain "*" in their names, so this never
// tampers with an actual name. Lines that are blank after trimming are
// skipped, while detached-HEAD descriptors and "ref -> ref" aliases are
// preserved verbatim.
func ParseBranchOutput(content string) []string {
	var branches []string
	for _, line := range strings.Split(content, "\n") {
		branch := strings.TrimSpace(line)
		branch = strings.TrimSpace(strings.TrimPrefix(branch, "*"))
		if branch == "" {
			continue
		}
		branches = append(branches, branch)
	}
	return branches
}

// TagsViaLsRemote enumerates the tags of a remote repository without cloning
// it, mapping tag name to commit digest. For an annotated tag the
// dereferenced "^{}" entry wins: it names the target commit rather than the
// tag object, and a non-dereferenced entry arriving after it is skipped.
// Returns nil if the underlying query fails entirely.
func (m *Metadata) TagsViaLsRemote(ctx context.Context, repo string) map[string]string {
	out, err := m.runner.Run(ctx, "", "ls-remote", "--tags", repo)
	if err != nil {
		safe := gitidentity.StripCredentials(repo)
		var gitErr *GitError
		if errors.As(err, &gitErr) && gitErr.AccessDenied() {
			m.logger.Error("could not access repository", "repo", safe)
		} else {
			m.logger.Error("failed to retrieve remote references", "repo", safe)
		}
		return nil
	}

	tags := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		digest, ref, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}

		name := strings.TrimPrefix(ref, "refs/tags/")
		if deref := strings.TrimSuffix(name, "^{}"); deref != name {
			if deref == "" {
				continue
			}
			tags[deref] = digest
			continue
		}
		if name == "" {
			continue
		}
		if _, exists := tags[name]; exists {
			// Must be the tag-object entry of an annotated tag received
			// out of standard order; it does not point at the source
			// commit.
			continue
		}
		tags[name] = digest
	}

	m.logger.Debug("enumerated remote tags", "repo", gitidentity.StripCredentials(repo), "count", len(tags))
	return tags
}
