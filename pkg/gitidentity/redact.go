package gitidentity

import (
	"net/url"
	"sort"

	git "github.com/go-git/go-git/v5"
)

// StripCredentials removes any embedded userinfo, such as an oauth2 access
// token used for cloning from GitLab, from a remote URL. Strings that do not
// parse as URLs (e.g. the SCP shorthand) are returned unchanged; they cannot
// carry token userinfo.
func StripCredentials(remote string) string {
	u, err := url.Parse(remote)
	if err != nil || u.User == nil {
		return remote
	}
	u.User = nil
	return u.String()
}

// RemoteOrigin reads the URL of the "origin" remote from an existing working
// copy and strips any embedded credentials before returning it. Returns
// empty if the repository cannot be opened or has no usable origin remote.
// The result may be a remote URL or a local path when the repository was
// cloned from another local repository.
func RemoteOrigin(repoPath string) string {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return ""
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return ""
	}

	urls := append([]string(nil), remote.Config().URLs...)
	sort.Strings(urls)
	for _, u := range urls {
		if u != "" {
			return StripCredentials(u)
		}
	}
	return ""
}
