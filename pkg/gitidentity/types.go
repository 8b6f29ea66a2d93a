package gitidentity

import "fmt"

// Remote is the canonical identity of a repository on a hosted git service,
// independent of the URL dialect it was written in. It is produced by
// Normalize and should not be hand-constructed elsewhere.
type Remote struct {
	// Host is the git hosting provider (e.g., github.com, gitlab.com)
	Host string

	// Owner is the repository owner or organization
	Owner string

	// Name is the repository name as parsed, which may still carry a
	// trailing ".git"
	Name string
}

// URL reconstructs the secure remote URL for the identity. The name segment
// is kept verbatim, so the result may end in ".git"; use Clean for the
// display/storage form.
func (r Remote) URL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)
}

// Clean returns the cleaned display form of the remote URL, with a trailing
// ".git" or "/" removed.
func (r Remote) Clean() string {
	return Clean(r.URL())
}

// CompleteName renders the identity as "<host>/<owner>/<name>" with the
// ".git" suffix removed from the name.
func (r Remote) CompleteName() string {
	return fmt.Sprintf("%s/%s/%s", r.Host, r.Owner, Clean(r.Name))
}

// IsZero reports whether the remote carries no identity.
func (r Remote) IsZero() bool {
	return r.Host == "" && r.Owner == "" && r.Name == ""
}
