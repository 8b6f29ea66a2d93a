package gitidentity

import (
	"path/filepath"
	"strings"
)

// RepoDirName returns the relative directory path a repository is cloned
// into, in the form <sanitized_host>/<owner>/<name>. The host segment is
// restricted to lowercase letters and digits so it is always a valid
// directory name on a shared output root.
func RepoDirName(r Remote) string {
	return filepath.Join(sanitizeHostSegment(r.Host), r.Owner, Clean(r.Name))
}

// sanitizeHostSegment replaces every byte that is not a lowercase letter or
// digit with "_" and prefixes the result when it would otherwise start with
// a replaced character.
func sanitizeHostSegment(host string) string {
	var b strings.Builder
	for _, r := range host {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	segment := b.String()
	if strings.HasPrefix(segment, "_") {
		segment = "git" + segment
	}
	return segment
}
