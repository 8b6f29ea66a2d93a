package config

import "path/filepath"

// RepoRootDirName is the directory under the output path that holds
// cloned repositories.
const RepoRootDirName = "git_repos"

// DefaultGitServices returns the built-in allow-list of git hosting
// services used when configuration names none.
func DefaultGitServices() []GitServiceConfig {
	return []GitServiceConfig{
		{Name: "github", Hostname: "github.com"},
		{Name: "gitlab", Hostname: "gitlab.com"},
		{Name: "bitbucket", Hostname: "bitbucket.org"},
	}
}

// ReposRoot returns the directory cloned repositories are stored under.
func ReposRoot(cfg *Config) string {
	if cfg == nil || cfg.Output.Path == "" {
		return ""
	}
	return filepath.Join(cfg.Output.Path, RepoRootDirName)
}
