package gitops

import (
	"context"
	"errors"
	"testing"
)

const headDigest = "e3a1b6c8d9b2ff0c9f5f8a0a5d8f4cf2e19b1db3"

func newTestCheckout(runner *fakeRunner) *Checkout {
	logger := NewNopLogger()
	return NewCheckout(runner, NewMetadata(runner, logger), logger)
}

func testHandle() *Handle {
	return &Handle{Path: "/work/repo", Remote: testRemote}
}

func TestCheckoutDefaultBranch(t *testing.T) {
	runner := newFakeRunner()
	checkout := newTestCheckout(runner)
	h := testHandle()

	ok, err := checkout.Resolve(context.Background(), h, Target{})
	if err != nil || !ok {
		t.Fatalf("Resolve() = (%v, %v), want success", ok, err)
	}

	if keys := runner.callKeys(); keys[0] != "checkout --force origin/HEAD" {
		t.Errorf("first call = %q, want forced checkout of origin/HEAD", keys[0])
	}
	if h.Head != headDigest {
		t.Errorf("handle.Head = %q, want %q", h.Head, headDigest)
	}
}

func TestCheckoutOfflineNoTarget(t *testing.T) {
	runner := newFakeRunner()
	checkout := newTestCheckout(runner)

	ok, err := checkout.Resolve(context.Background(), testHandle(), Target{Offline: true})
	if err != nil || !ok {
		t.Fatalf("Resolve() = (%v, %v), want success", ok, err)
	}

	for _, key := range runner.callKeys() {
		if key == "checkout --force origin/HEAD" {
			t.Error("offline mode must not touch origin/HEAD")
		}
	}
}

func TestCheckoutBranchOnly(t *testing.T) {
	runner := newFakeRunner()
	checkout := newTestCheckout(runner)

	ok, err := checkout.Resolve(context.Background(), testHandle(), Target{Branch: "v2.dev"})
	if err != nil || !ok {
		t.Fatalf("Resolve() = (%v, %v), want success", ok, err)
	}
	if keys := runner.callKeys(); keys[0] != "checkout --force origin/v2.dev" {
		t.Errorf("first call = %q, want forced checkout of origin/v2.dev", keys[0])
	}
}

func TestCheckoutUnknownBranch(t *testing.T) {
	runner := newFakeRunner()
	runner.setResponse("checkout --force origin/missing", "",
		NewGitError("checkout", "/work/repo", 1, "error: pathspec 'origin/missing' did not match", errors.New("exit status 1")))
	checkout := newTestCheckout(runner)

	ok, err := checkout.Resolve(context.Background(), testHandle(), Target{Branch: "missing"})
	if err != nil {
		t.Fatalf("an unknown branch is an expected failure, got error %v", err)
	}
	if ok {
		t.Error("Resolve() = true for an unknown branch")
	}
}

func TestCheckoutCommitOnly(t *testing.T) {
	runner := newFakeRunner()
	checkout := newTestCheckout(runner)

	ok, err := checkout.Resolve(context.Background(), testHandle(), Target{Commit: headDigest})
	if err != nil || !ok {
		t.Fatalf("Resolve() = (%v, %v), want success", ok, err)
	}
	if keys := runner.callKeys(); keys[0] != "checkout --force "+headDigest {
		t.Errorf("first call = %q, want forced checkout of the commit", keys[0])
	}
}

func TestCheckoutBranchAndCommit(t *testing.T) {
	tests := []struct {
		name     string
		branches string
		wantOK   bool
	}{
		{
			name:     "commit reachable from branch",
			branches: "  origin/HEAD -> origin/main\n  origin/main\n  origin/v2.dev\n",
			wantOK:   true,
		},
		{
			name:     "commit not on branch",
			branches: "  origin/v2.dev\n",
			wantOK:   false,
		},
		{
			name:     "containment lookup fails",
			branches: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			runner.setResponse(
				"branch --remotes --list origin/* --contains "+headDigest,
				tt.branches, nil)
			checkout := newTestCheckout(runner)

			ok, err := checkout.Resolve(context.Background(), testHandle(),
				Target{Branch: "main", Commit: headDigest})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("Resolve() = %v, want %v", ok, tt.wantOK)
			}

			if !tt.wantOK {
				// The tree must stay untouched when containment fails.
				for _, key := range runner.callKeys() {
					if key == "checkout --force "+headDigest {
						t.Error("checkout ran despite the commit not being on the branch")
					}
				}
			}
		})
	}
}

func TestCheckoutHeadMismatchIsFatalResult(t *testing.T) {
	runner := newFakeRunner()
	runner.setResponse("rev-parse HEAD", "cafef00d"+headDigest[8:], nil)
	checkout := newTestCheckout(runner)
	h := testHandle()

	ok, err := checkout.Resolve(context.Background(), h, Target{Commit: headDigest})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ok {
		t.Error("Resolve() = true although HEAD is not at the requested commit")
	}
	if h.Head != "" {
		t.Errorf("handle.Head mutated to %q on failure", h.Head)
	}
}

func TestCheckoutUnreadableHead(t *testing.T) {
	runner := newFakeRunner()
	runner.setResponse("rev-parse HEAD", "",
		NewGitError("rev-parse", "/work/repo", 128, "fatal: not a git repository", errors.New("exit status 128")))
	checkout := newTestCheckout(runner)

	ok, err := checkout.Resolve(context.Background(), testHandle(), Target{Branch: "main"})
	if ok {
		t.Error("Resolve() = true with an unreadable HEAD")
	}
	if !errors.Is(err, ErrHeadUnreadable) {
		t.Errorf("Resolve() error = %v, want ErrHeadUnreadable", err)
	}
}
