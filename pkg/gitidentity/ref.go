package gitidentity

import "regexp"

// commitHashPattern matches full 40-character commit digests and abbreviated
// forms of at least 7 characters.
var commitHashPattern = regexp.MustCompile(`^[a-f0-9]{7,40}$`)

// IsCommitHash reports whether value looks like a git commit digest rather
// than a branch or tag name.
func IsCommitHash(value string) bool {
	return commitHashPattern.MatchString(value)
}
