// Package workspace resolves where prepared repositories live on disk and
// guards path lookups against escaping the output tree.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/gitprep/pkg/config"
	"github.com/goliatone/gitprep/pkg/gitidentity"
)

// Resolve returns the output root directory using unified heuristics:
// an explicit override wins, then configuration, then the default cache
// location.
func Resolve(explicit string, cfg *config.Config) string {
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			if abs, err := filepath.Abs(explicit); err == nil {
				return abs
			}
		}
		return explicit
	}

	if cfg != nil {
		if path := strings.TrimSpace(cfg.Output.Path); path != "" {
			return path
		}
	}

	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "gitprep")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "gitprep")
	}

	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}

	return "."
}

// RepoDir returns the directory a remote's clone lives in under the
// output root. The layout is <root>/git_repos/<host>/<owner>/<repo> with
// the host segment sanitized for the filesystem.
func RepoDir(outputRoot string, remote gitidentity.Remote) string {
	return filepath.Join(outputRoot, config.RepoRootDirName, gitidentity.RepoDirName(remote))
}

// ResolveWithin canonicalizes relPath joined under boundaryDir and
// returns the canonical path only when it exists and stays inside the
// boundary. It returns "" for paths that do not exist, escape the
// boundary through .. segments or symlinks, or cannot be resolved;
// callers treat the empty string as "not found".
func ResolveWithin(boundaryDir, relPath string) string {
	boundary, err := filepath.EvalSymlinks(boundaryDir)
	if err != nil {
		return ""
	}
	boundary, err = filepath.Abs(boundary)
	if err != nil {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(boundary, relPath))
	if err != nil {
		return ""
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return ""
	}

	if resolved != boundary && !strings.HasPrefix(resolved, boundary+string(filepath.Separator)) {
		return ""
	}
	return resolved
}
