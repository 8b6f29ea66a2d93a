package gitservice

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// AuthConfig holds authentication configuration options.
type AuthConfig struct {
	// Token is the personal access token or OAuth token.
	Token string
	// BaseURL is the API base URL (for GitHub Enterprise).
	BaseURL string
	// UploadURL is the upload URL (for GitHub Enterprise).
	UploadURL string
	// HTTPClient is the underlying HTTP client to issue API calls with.
	// When a token is set it becomes the base transport under the oauth2
	// layer. Nil falls back to http.DefaultClient.
	HTTPClient *http.Client
}

// tokenEnvVars lists the environment variables consulted for a token,
// in order of precedence.
var tokenEnvVars = []string{"GITPREP_GITHUB_TOKEN", "GITHUB_TOKEN", "GITHUB_ACCESS_TOKEN", "GH_TOKEN"}

// LoadToken loads an API token from the environment. An empty string
// means anonymous access: the metadata endpoints used here work without
// authentication for public repositories, at a lower rate limit.
func LoadToken() string {
	for _, envVar := range tokenEnvVars {
		if token := os.Getenv(envVar); token != "" {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// NewClient creates a GitHub client for the given configuration. With an
// empty token the client is unauthenticated.
func NewClient(config AuthConfig) (*github.Client, error) {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if config.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	if config.BaseURL != "" {
		client, err := github.NewClient(httpClient).WithEnterpriseURLs(config.BaseURL, config.UploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub Enterprise client: %w", err)
		}
		return client, nil
	}
	return github.NewClient(httpClient), nil
}
