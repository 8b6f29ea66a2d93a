package config

import (
	"strings"
	"time"
)

// Config represents the complete configuration for repository preparation.
// It aggregates output layout, the allow-list of known git services, git
// execution settings, API integration, and logging settings.
type Config struct {
	// Output contains output directory settings
	Output OutputConfig `json:"output" yaml:"output"`

	// GitServices lists the git hosting services repositories may come from.
	// A remote whose hostname matches none of these entries is rejected.
	GitServices []GitServiceConfig `json:"git_services" yaml:"git_services"`

	// Git contains git execution settings like timeouts and offline mode
	Git GitConfig `json:"git" yaml:"git"`

	// Integration contains settings for external integrations (GitHub API)
	Integration IntegrationConfig `json:"integration" yaml:"integration"`

	// Logging contains logging level and output configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Target branch and commit for checkout operations
	// These are typically specified via command-line flags
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit string `json:"commit,omitempty" yaml:"commit,omitempty"`

	setFlags boolFlags `json:"-" yaml:"-"`
}

type boolFlags struct {
	gitOffline     bool
	loggingVerbose bool
	loggingQuiet   bool
}

// OutputConfig manages output directory settings. All prepared
// repositories live below the output path.
type OutputConfig struct {
	// Path is the output root directory. Cloned repositories are stored
	// under <path>/git_repos/<host>/<owner>/<repo>.
	// Default: $XDG_CACHE_HOME/gitprep or ~/.cache/gitprep
	Path string `json:"path" yaml:"path" validate:"required"`
}

// GitServiceConfig identifies one git hosting service in the allow-list.
type GitServiceConfig struct {
	// Name is a human-readable service name (e.g. "github").
	Name string `json:"name" yaml:"name"`

	// Hostname is the service hostname remotes are matched against
	// (e.g. "github.com"). Matching is case-insensitive.
	Hostname string `json:"hostname" yaml:"hostname" validate:"required"`
}

// GitConfig contains git execution settings that control operation
// timeouts and network behaviour.
type GitConfig struct {
	// Timeout is the timeout duration for git child processes.
	// Default: 10 minutes
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Offline skips all network git operations. Checkout then works
	// against whatever the local clone already has.
	Offline bool `json:"offline" yaml:"offline"`
}

// IntegrationConfig manages settings for external service integrations.
type IntegrationConfig struct {
	// GitHub contains GitHub API integration settings
	GitHub GitHubConfig `json:"github" yaml:"github"`
}

// GitHubConfig contains GitHub API integration settings including
// authentication tokens and API endpoint configuration.
type GitHubConfig struct {
	// Token is the GitHub authentication token for API access.
	// Should be loaded from environment variables or secure files.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Endpoint is the GitHub API endpoint URL.
	// Default: https://api.github.com for GitHub.com
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// LoggingConfig manages logging level, output format, and
// structured logging configuration.
type LoggingConfig struct {
	// Level controls the logging verbosity level.
	// Valid values: debug, info, warn, error
	// Default: info
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`

	// Format controls the log output format.
	// Valid values: text, json
	// Default: text
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`

	// Verbose enables verbose logging output.
	// Equivalent to setting Level to "debug"
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Quiet suppresses non-essential output.
	// Equivalent to setting Level to "warn"
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// Environment variable mapping constants for configuration parsing
const (
	// Output environment variables
	EnvOutputPath = "GITPREP_OUTPUT"

	// Git service allow-list environment variables
	EnvAllowedHosts = "GITPREP_ALLOWED_HOSTS"

	// Git execution environment variables
	EnvGitTimeout = "GITPREP_GIT_TIMEOUT"
	EnvGitOffline = "GITPREP_OFFLINE"

	// GitHub integration environment variables
	EnvGitHubToken    = "GITPREP_GITHUB_TOKEN"
	EnvGitHubEndpoint = "GITPREP_GITHUB_ENDPOINT"

	// Logging environment variables
	EnvLogLevel  = "GITPREP_LOG_LEVEL"
	EnvLogFormat = "GITPREP_LOG_FORMAT"
	EnvVerbose   = "GITPREP_VERBOSE"
	EnvQuiet     = "GITPREP_QUIET"
)

// New returns a Config populated with safe zero values.
func New() *Config {
	return &Config{}
}

// AllowedHosts returns the set of hostnames remotes may resolve to,
// lowercased for case-insensitive matching.
func (c *Config) AllowedHosts() map[string]struct{} {
	if c == nil {
		return nil
	}
	hosts := make(map[string]struct{}, len(c.GitServices))
	for _, svc := range c.GitServices {
		host := strings.ToLower(strings.TrimSpace(svc.Hostname))
		if host != "" {
			hosts[host] = struct{}{}
		}
	}
	return hosts
}
