// Package tagrank picks the newest release among a repository's tag names.
package tagrank

import (
	"errors"
	"sort"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNoTags indicates the repository published no tags at all.
	ErrNoTags = errors.New("repository has no tags")

	// ErrNoValidTag indicates tags exist but none parses as a version.
	ErrNoValidTag = errors.New("no tag parses as a version")
)

// Highest returns the tag naming the largest version among tags.
//
// Handles:
// - Standard semantic versions (v1.2.3, 1.2.3)
// - Partial versions (v4, 4.2), coerced by filling missing parts with zero
// - Pre-release versions (v1.0.0-alpha < v1.0.0)
//
// Tags that do not parse as versions are skipped. The returned string is
// the original tag as published, not a normalized rendering, so it can be
// resolved against a tag index or passed back to git verbatim.
func Highest(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", ErrNoTags
	}

	// Sort a copy so equal versions under different spellings
	// (v1.0 vs v1.0.0) resolve deterministically.
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	var (
		bestTag string
		bestVer *semver.Version
	)
	for _, tag := range sorted {
		ver, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if bestVer == nil || ver.GreaterThan(bestVer) {
			bestTag, bestVer = tag, ver
		}
	}

	if bestVer == nil {
		return "", ErrNoValidTag
	}
	return bestTag, nil
}
