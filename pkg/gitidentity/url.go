package gitidentity

import (
	"regexp"
	"strings"
)

// schemeMarker locates the first recognized scheme marker in a raw remote
// string so that foreign prefixes such as "scm:" can be discarded before
// parsing. The alternation order keeps compound markers ahead of their
// shorter forms.
var schemeMarker = regexp.MustCompile(`git\+http|http|ftp|ssh\+git|ssh|git@`)

// Normalize parses an arbitrary remote string in any of the supported git
// URL dialects and returns its canonical identity. The host must be present
// in allowedHosts. It handles:
//   - URL schemes: https://github.com/owner/repo.git
//   - SSH URIs: ssh://git@github.com:7999/owner/repo.git (and the common
//     shorthand ssh://git@github.com:owner/repo.git)
//   - SCP form: git@github.com:owner/repo.git
//
// Hostname matching is case-insensitive; the returned identity carries the
// lowercased host.
//
// The second return value is false whenever the string is not a valid remote
// for an allowed host; that is an expected condition, not an error.
func Normalize(raw string, allowedHosts map[string]struct{}) (Remote, bool) {
	loc := schemeMarker.FindStringIndex(raw)
	if loc == nil {
		return Remote{}, false
	}
	cleaned := raw[loc[0]:]

	scheme, rest, hasScheme := strings.Cut(cleaned, "://")
	if !hasScheme {
		return normalizeSCP(cleaned, allowedHosts)
	}

	switch scheme {
	case "http", "https", "ftp", "ftps", "git+https":
		return normalizeURL(rest, allowedHosts)
	case "ssh", "git+ssh":
		return normalizeSSH(rest, allowedHosts)
	default:
		return Remote{}, false
	}
}

// normalizeURL handles the plain URL dialect. The allow-list holds bare
// hostnames, so an authority carrying credentials or an explicit port can
// never match and is rejected outright.
func normalizeURL(rest string, allowedHosts map[string]struct{}) (Remote, bool) {
	authority, path := splitAuthority(rest)
	if strings.ContainsAny(authority, "@:") {
		return Remote{}, false
	}
	host := strings.ToLower(authority)
	if _, ok := allowedHosts[host]; !ok {
		return Remote{}, false
	}

	owner, name, ok := ownerAndName(path)
	if !ok {
		return Remote{}, false
	}
	return Remote{Host: host, Owner: owner, Name: name}, true
}

// normalizeSSH handles ssh:// URIs. Anything after the authority colon that
// is not purely numeric is not a port but the first path segment, as in
// ssh://git@github.com:owner/repo.git, and is merged back into the path.
// The heuristic is ambiguous for hosts using numeric top-level directories;
// it is kept because real-world URLs rely on it.
func normalizeSSH(rest string, allowedHosts map[string]struct{}) (Remote, bool) {
	authority, rawPath := splitAuthority(rest)

	userHost, port, _ := strings.Cut(authority, ":")
	user, host := splitUserHost(userHost)
	if user == "" {
		return Remote{}, false
	}
	host = strings.ToLower(host)
	if _, ok := allowedHosts[host]; !ok {
		return Remote{}, false
	}

	path := rawPath
	if !isDecimal(port) {
		path = port + "/" + strings.Trim(rawPath, "/")
	}

	owner, name, ok := ownerAndName(path)
	if !ok {
		return Remote{}, false
	}
	return Remote{Host: host, Owner: owner, Name: name}, true
}

// normalizeSCP handles the no-scheme SCP shorthand git@host:owner/repo.git.
// The segment right after the colon is dropped when it is purely numeric,
// since that is a port, not an owner.
func normalizeSCP(cleaned string, allowedHosts map[string]struct{}) (Remote, bool) {
	userHost, portPath, found := strings.Cut(cleaned, ":")
	if !found || userHost == "" || portPath == "" {
		return Remote{}, false
	}

	user, host := splitUserHost(userHost)
	if user == "" {
		return Remote{}, false
	}
	host = strings.ToLower(host)
	if _, ok := allowedHosts[host]; !ok {
		return Remote{}, false
	}

	path := portPath
	if first, remain, _ := strings.Cut(strings.Trim(portPath, "/"), "/"); isDecimal(first) {
		path = remain
	}

	owner, name, ok := ownerAndName(path)
	if !ok {
		return Remote{}, false
	}
	return Remote{Host: host, Owner: owner, Name: name}, true
}

// Clean trims surrounding whitespace from a remote URL or path and strips a
// single trailing "/" and a single trailing ".git" suffix. It is applied on
// demand rather than during normalization: cloning wants the literal
// reconstructed URL while reports and storage want the cleaned form.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// splitAuthority separates the authority component from the path that
// follows it.
func splitAuthority(rest string) (authority, path string) {
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return rest, ""
}

// splitUserHost splits "user@host" on the last "@". An empty user means the
// authority had no user component at all.
func splitUserHost(userHost string) (user, host string) {
	i := strings.LastIndexByte(userHost, '@')
	if i < 0 {
		return "", userHost
	}
	return userHost[:i], userHost[i+1:]
}

// ownerAndName extracts the first two path segments, requiring both to be
// non-empty.
func ownerAndName(path string) (owner, name string, ok bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return "", "", false
	}
	return segs[0], segs[1], true
}

// isDecimal reports whether s is a non-empty run of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
