package main

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitprep/internal/gitops"
	"github.com/goliatone/gitprep/internal/gitservice"
	"github.com/goliatone/gitprep/internal/state"
	"github.com/goliatone/gitprep/pkg/config"
	"github.com/goliatone/gitprep/pkg/di"
)

type stubResponse struct {
	out string
	err error
}

// stubRunner answers git invocations from a canned table, keyed by the
// joined argument list. Unknown invocations succeed with empty output.
type stubRunner struct {
	responses map[string]stubResponse
	calls     []string
}

func (r *stubRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	r.calls = append(r.calls, key)
	if resp, ok := r.responses[key]; ok {
		return resp.out, resp.err
	}
	return "", nil
}

type stubProvider struct {
	branch  string
	release *gitservice.Release
	err     error
}

func (p *stubProvider) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	return p.branch, p.err
}

func (p *stubProvider) LatestRelease(ctx context.Context, owner, repo string) (*gitservice.Release, error) {
	return p.release, p.err
}

func stubConfig(t *testing.T) *config.Config {
	t.Helper()
	c := config.New()
	c.Output.Path = t.TempDir()
	c.GitServices = config.DefaultGitServices()
	c.Git.Timeout = time.Minute
	c.Logging.Level = "error"
	c.Logging.Format = "text"
	return c
}

// installStubContainer swaps the package globals for a container built on
// the given fakes and restores them when the test ends.
func installStubContainer(t *testing.T, testCfg *config.Config, runner *stubRunner, provider *stubProvider) {
	t.Helper()

	c, err := di.New(
		di.WithConfig(testCfg),
		di.WithRunner(runner),
		di.WithGitService(provider),
		di.WithLocker(state.NewNopLocker()),
	)
	if err != nil {
		t.Fatalf("di.New() error = %v", err)
	}

	prevContainer, prevCfg := container, cfg
	container, cfg = c, testCfg
	t.Cleanup(func() {
		container, cfg = prevContainer, prevCfg
	})
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func TestPrepareFallsBackToServiceDefaultBranch(t *testing.T) {
	runner := &stubRunner{responses: map[string]stubResponse{
		"checkout --force origin/HEAD": {err: gitops.NewGitError("checkout", "", 1, "", errors.New("exit status 1"))},
		"rev-parse HEAD":               {out: "7fc81f8aa9b1745a9dd2f53f0d95b22c4b7ba29e"},
	}}

	installStubContainer(t, stubConfig(t), runner, &stubProvider{branch: "trunk"})

	cmd, out := newTestCommand()
	if err := runPrepare(cmd, "https://github.com/owner/repo"); err != nil {
		t.Fatalf("runPrepare() error = %v", err)
	}

	if !slices.Contains(runner.calls, "checkout --force origin/trunk") {
		t.Errorf("expected a retry against origin/trunk, calls: %v", runner.calls)
	}
	if !strings.Contains(out.String(), "HEAD: 7fc81f8aa9b1745a9dd2f53f0d95b22c4b7ba29e") {
		t.Errorf("output = %q, want the resulting HEAD", out.String())
	}
}

func TestPrepareFallbackUnavailableStaysFailed(t *testing.T) {
	runner := &stubRunner{responses: map[string]stubResponse{
		"checkout --force origin/HEAD": {err: gitops.NewGitError("checkout", "", 1, "", errors.New("exit status 1"))},
		"rev-parse HEAD":               {out: "7fc81f8aa9b1745a9dd2f53f0d95b22c4b7ba29e"},
	}}

	// gitlab.com is allowed but has no hosting service provider wired, so
	// the fallback must not fire and the failure surfaces as-is.
	installStubContainer(t, stubConfig(t), runner, &stubProvider{branch: "trunk"})

	cmd, _ := newTestCommand()
	err := runPrepare(cmd, "https://gitlab.com/owner/repo")
	if err == nil {
		t.Fatal("runPrepare() expected checkout error")
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.Code != ExitCheckoutError {
		t.Errorf("error = %v, want checkout exit code", err)
	}
	if slices.Contains(runner.calls, "checkout --force origin/trunk") {
		t.Errorf("fallback must not run for non-GitHub hosts, calls: %v", runner.calls)
	}
}

func TestPrepareRejectsNonDigestCommit(t *testing.T) {
	testCfg := stubConfig(t)
	testCfg.Commit = "feature-branch"
	installStubContainer(t, testCfg, &stubRunner{}, &stubProvider{})

	cmd, _ := newTestCommand()
	err := runPrepare(cmd, "https://github.com/owner/repo")
	if err == nil {
		t.Fatal("runPrepare() accepted a non-digest commit target")
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.Code != ExitValidationError {
		t.Errorf("error = %v, want validation exit code", err)
	}
}

func TestTagsLatestRelease(t *testing.T) {
	runner := &stubRunner{}
	provider := &stubProvider{release: &gitservice.Release{
		TagName: "v1.4.0",
		Name:    "v1.4.0 release",
		URL:     "https://github.com/owner/repo/releases/tag/v1.4.0",
	}}
	installStubContainer(t, stubConfig(t), runner, provider)

	cmd, out := newTestCommand()
	if err := runTags(cmd, "https://github.com/owner/repo", false, true); err != nil {
		t.Fatalf("runTags() error = %v", err)
	}

	if !strings.Contains(out.String(), "v1.4.0") {
		t.Errorf("output = %q, want the release tag", out.String())
	}
	if len(runner.calls) != 0 {
		t.Errorf("release lookup must not invoke git, calls: %v", runner.calls)
	}
}

func TestTagsLatestReleaseRequiresGitHubHost(t *testing.T) {
	installStubContainer(t, stubConfig(t), &stubRunner{}, &stubProvider{})

	cmd, _ := newTestCommand()
	err := runTags(cmd, "https://gitlab.com/owner/repo", false, true)
	if err == nil {
		t.Fatal("runTags() expected validation error for a non-GitHub host")
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.Code != ExitValidationError {
		t.Errorf("error = %v, want validation exit code", err)
	}
}

func TestTagsLatestReleaseNone(t *testing.T) {
	installStubContainer(t, stubConfig(t), &stubRunner{}, &stubProvider{})

	cmd, _ := newTestCommand()
	err := runTags(cmd, "https://github.com/owner/repo", false, true)
	if err == nil {
		t.Fatal("runTags() expected error for a repository without releases")
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.Code != ExitValidationError {
		t.Errorf("error = %v, want validation exit code", err)
	}
}
