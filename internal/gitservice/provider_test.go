package gitservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-github/v66/github"
)

// fakeRoundTripper implements http.RoundTripper for testing.
type fakeRoundTripper struct {
	responses map[string]*http.Response
}

func (f *fakeRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s", req.Method, req.URL.Path)
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       http.NoBody,
		Header:     make(http.Header),
	}, nil
}

func newTestProvider(responses map[string]*http.Response) Provider {
	httpClient := &http.Client{
		Transport: &fakeRoundTripper{responses: responses},
	}
	return NewGitHubProvider(github.NewClient(httpClient))
}

func createJSONResponse(statusCode int, body any) *http.Response {
	data, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(string(data))),
		Header:     map[string][]string{"Content-Type": {"application/json"}},
	}
}

func TestGitHubProvider_DefaultBranch(t *testing.T) {
	responses := map[string]*http.Response{
		"GET /repos/owner/repo": createJSONResponse(200, &github.Repository{
			Name:          github.String("repo"),
			DefaultBranch: github.String("develop"),
		}),
	}

	provider := newTestProvider(responses)
	branch, err := provider.DefaultBranch(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("DefaultBranch failed: %v", err)
	}
	if branch != "develop" {
		t.Errorf("expected branch %q, got %q", "develop", branch)
	}
}

func TestGitHubProvider_DefaultBranch_Error(t *testing.T) {
	provider := newTestProvider(nil)

	_, err := provider.DefaultBranch(context.Background(), "owner", "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsAPIError(err) {
		t.Errorf("expected APIError, got %T", err)
	}
}

func TestGitHubProvider_LatestRelease(t *testing.T) {
	responses := map[string]*http.Response{
		"GET /repos/owner/repo/releases/latest": createJSONResponse(200, &github.RepositoryRelease{
			TagName: github.String("v1.4.0"),
			Name:    github.String("v1.4.0 release"),
			HTMLURL: github.String("https://github.com/owner/repo/releases/tag/v1.4.0"),
		}),
	}

	provider := newTestProvider(responses)
	release, err := provider.LatestRelease(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("LatestRelease failed: %v", err)
	}
	if release == nil {
		t.Fatal("expected release, got nil")
	}
	if release.TagName != "v1.4.0" {
		t.Errorf("expected tag %q, got %q", "v1.4.0", release.TagName)
	}
}

func TestGitHubProvider_LatestRelease_NoReleases(t *testing.T) {
	// The default response is a 404, which the API also returns for a
	// repository without releases.
	provider := newTestProvider(nil)

	release, err := provider.LatestRelease(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("LatestRelease failed: %v", err)
	}
	if release != nil {
		t.Errorf("expected nil release, got %+v", release)
	}
}

// recordingRoundTripper captures the Authorization header before delegating.
type recordingRoundTripper struct {
	lastAuth string
	inner    *fakeRoundTripper
}

func (r *recordingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r.lastAuth = req.Header.Get("Authorization")
	return r.inner.RoundTrip(req)
}

func TestNewClientUsesProvidedHTTPClient(t *testing.T) {
	rt := &recordingRoundTripper{
		inner: &fakeRoundTripper{responses: map[string]*http.Response{
			"GET /repos/owner/repo": createJSONResponse(200, &github.Repository{
				DefaultBranch: github.String("develop"),
			}),
		}},
	}

	client, err := NewClient(AuthConfig{
		Token:      "tok",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	provider := NewGitHubProvider(client)
	branch, err := provider.DefaultBranch(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("DefaultBranch failed: %v", err)
	}
	if branch != "develop" {
		t.Errorf("expected branch %q, got %q; the provided client was not used", "develop", branch)
	}
	if rt.lastAuth != "Bearer tok" {
		t.Errorf("expected the token layer over the provided transport, got Authorization %q", rt.lastAuth)
	}
}

func TestLoadToken(t *testing.T) {
	for _, envVar := range tokenEnvVars {
		t.Setenv(envVar, "")
	}
	if token := LoadToken(); token != "" {
		t.Errorf("expected empty token, got %q", token)
	}

	t.Setenv("GH_TOKEN", "gh-token")
	if token := LoadToken(); token != "gh-token" {
		t.Errorf("expected %q, got %q", "gh-token", token)
	}

	// Project-specific variable wins over the generic ones.
	t.Setenv("GITPREP_GITHUB_TOKEN", " project-token ")
	if token := LoadToken(); token != "project-token" {
		t.Errorf("expected %q, got %q", "project-token", token)
	}
}
