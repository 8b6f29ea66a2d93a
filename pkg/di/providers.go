package di

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/gitprep/internal/gitops"
	"github.com/goliatone/gitprep/internal/gitservice"
	"github.com/goliatone/gitprep/pkg/config"
)

// provideConfigWithDefaults loads configuration from the environment and
// fills in defaults for anything left unset.
func provideConfigWithDefaults() (*config.Config, error) {
	return config.NewBuilder().FromEnv().Build()
}

// provideHTTPClient creates the shared HTTP client for API calls.
func provideHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// provideRunner creates the default exec-based git command runner.
func provideRunner() gitops.Runner {
	return gitops.NewRunner()
}

// provideGitServiceWithConfig creates the hosting service provider using
// the configured token and endpoint. API calls go through the container's
// shared HTTP client. With no token the provider runs unauthenticated
// against public repositories.
func provideGitServiceWithConfig(cfg *config.Config, httpClient *http.Client) (gitservice.Provider, error) {
	auth := gitservice.AuthConfig{HTTPClient: httpClient}

	if cfg != nil {
		auth.Token = strings.TrimSpace(cfg.Integration.GitHub.Token)

		endpoint := strings.TrimSpace(cfg.Integration.GitHub.Endpoint)
		if endpoint != "" && endpoint != "https://api.github.com" {
			auth.BaseURL = endpoint
			auth.UploadURL = endpoint
		}
	}

	if auth.Token == "" {
		auth.Token = gitservice.LoadToken()
	}

	client, err := gitservice.NewClient(auth)
	if err != nil {
		return nil, err
	}
	return gitservice.NewGitHubProvider(client), nil
}
