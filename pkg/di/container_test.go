package di

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/gitprep/pkg/config"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...any) {}
func (testLogger) Info(msg string, args ...any)  {}
func (testLogger) Warn(msg string, args ...any)  {}
func (testLogger) Error(msg string, args ...any) {}

type testRunner struct{}

func (testRunner) Run(_ context.Context, _ string, _ ...string) (string, error) {
	return "", nil
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Output.Path = "/tmp/gitprep-test"
	cfg.Git.Timeout = time.Minute
	cfg.GitServices = config.DefaultGitServices()
	return cfg
}

func TestNewContainerDefaults(t *testing.T) {
	c, err := New(WithConfig(testConfig()), WithLogger(testLogger{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if c.Config() == nil {
		t.Error("Config() = nil")
	}
	if c.Runner() == nil {
		t.Error("Runner() = nil")
	}
	if c.Fetcher() == nil {
		t.Error("Fetcher() = nil")
	}
	if c.Checkout() == nil {
		t.Error("Checkout() = nil")
	}
	if c.Metadata() == nil {
		t.Error("Metadata() = nil")
	}
	if c.GitService() == nil {
		t.Error("GitService() = nil")
	}
	if c.Locker() == nil {
		t.Error("Locker() = nil")
	}
	if c.HTTPClient() == nil {
		t.Error("HTTPClient() = nil")
	}
}

func TestNewContainerWithRunnerOverride(t *testing.T) {
	runner := testRunner{}

	c, err := New(WithConfig(testConfig()), WithLogger(testLogger{}), WithRunner(runner))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if c.Runner() != runner {
		t.Error("Runner() did not return the injected runner")
	}
}

func TestNewContainerNilOption(t *testing.T) {
	if _, err := New(WithConfig(nil)); err == nil {
		t.Error("New() accepted nil config")
	}
	if _, err := New(WithLogger(nil)); err == nil {
		t.Error("New() accepted nil logger")
	}
}
