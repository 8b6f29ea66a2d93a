// Package gitservice resolves repository metadata through the hosting
// service's REST API, complementing the network git operations with
// lookups that need no clone at all.
package gitservice

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// Release describes a published release of a repository.
type Release struct {
	TagName string
	Name    string
	URL     string
}

// Provider defines the interface for hosting-service metadata lookups.
type Provider interface {
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
	LatestRelease(ctx context.Context, owner, repo string) (*Release, error)
}

// GitHubProvider implements the Provider interface using the GitHub API.
type GitHubProvider struct {
	client *github.Client
}

// NewGitHubProvider creates a new GitHub provider with the given client.
func NewGitHubProvider(client *github.Client) Provider {
	return &GitHubProvider{
		client: client,
	}
}

// DefaultBranch returns the repository's default branch name.
func (p *GitHubProvider) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	repository, _, err := p.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", &APIError{
			Operation: "get repository",
			Repo:      owner + "/" + repo,
			Err:       err,
		}
	}
	return repository.GetDefaultBranch(), nil
}

// LatestRelease returns the repository's latest published release, or
// nil when the repository has no releases.
func (p *GitHubProvider) LatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	release, resp, err := p.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, &APIError{
			Operation: "get latest release",
			Repo:      owner + "/" + repo,
			Err:       err,
		}
	}
	return &Release{
		TagName: release.GetTagName(),
		Name:    release.GetName(),
		URL:     release.GetHTMLURL(),
	}, nil
}

// IsRateLimitError checks if an error is a GitHub rate limit error.
func IsRateLimitError(err error) bool {
	var rateLimitError *github.RateLimitError
	return errors.As(err, &rateLimitError)
}
