package tagrank

import (
	"errors"
	"testing"
)

func TestHighest(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{
			name: "single tag",
			tags: []string{"v2.0.0"},
			want: "v2.0.0",
		},
		{
			name: "partial versions are zero filled",
			tags: []string{"v4", "v4.2.1"},
			want: "v4.2.1",
		},
		{
			name: "numeric comparison beats lexicographic",
			tags: []string{"1.2.3", "2.0.0", "1.10.1"},
			want: "2.0.0",
		},
		{
			name: "unparsable tags are skipped",
			tags: []string{"invalid", "1.0.0"},
			want: "1.0.0",
		},
		{
			name: "pre-release ranks below the release",
			tags: []string{"v1.0.0-alpha", "v1.0.0", "v1.0.0-rc.1"},
			want: "v1.0.0",
		},
		{
			name: "original spelling is preserved",
			tags: []string{"v0.9.0", "v1.0"},
			want: "v1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Highest(tt.tags)
			if err != nil {
				t.Fatalf("Highest(%v) error = %v", tt.tags, err)
			}
			if got != tt.want {
				t.Errorf("Highest(%v) = %q, want %q", tt.tags, got, tt.want)
			}
		})
	}
}

func TestHighestErrors(t *testing.T) {
	if _, err := Highest(nil); !errors.Is(err, ErrNoTags) {
		t.Errorf("Highest(nil) error = %v, want ErrNoTags", err)
	}
	if _, err := Highest([]string{"invalid", "not-a-version"}); !errors.Is(err, ErrNoValidTag) {
		t.Errorf("Highest() error = %v, want ErrNoValidTag", err)
	}
}

func TestHighestDoesNotMutateInput(t *testing.T) {
	tags := []string{"v2.0.0", "v1.0.0"}
	if _, err := Highest(tags); err != nil {
		t.Fatalf("Highest() error = %v", err)
	}
	if tags[0] != "v2.0.0" || tags[1] != "v1.0.0" {
		t.Errorf("Highest() reordered its input: %v", tags)
	}
}
