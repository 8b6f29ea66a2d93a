package config

import (
	"strings"
	"testing"
	"time"
)

func envGetter(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestEnvParserParseEnv(t *testing.T) {
	parser := NewEnvParserWithGetter(envGetter(map[string]string{
		EnvOutputPath:     "/var/cache/gitprep",
		EnvAllowedHosts:   "git.example.com, internal.example.org",
		EnvGitTimeout:     "3m",
		EnvGitOffline:     "yes",
		EnvGitHubToken:    "token-value",
		EnvGitHubEndpoint: "https://ghe.example.com/api/v3",
		EnvLogLevel:       "debug",
		EnvLogFormat:      "json",
	}))

	cfg, err := parser.ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}

	if cfg.Output.Path != "/var/cache/gitprep" {
		t.Errorf("Output.Path = %q", cfg.Output.Path)
	}
	if len(cfg.GitServices) != 2 || cfg.GitServices[0].Hostname != "git.example.com" {
		t.Errorf("GitServices = %+v", cfg.GitServices)
	}
	if cfg.Git.Timeout != 3*time.Minute {
		t.Errorf("Git.Timeout = %v", cfg.Git.Timeout)
	}
	if !cfg.Git.Offline {
		t.Error("Git.Offline = false, want true")
	}
	if cfg.Integration.GitHub.Token != "token-value" {
		t.Errorf("GitHub.Token = %q", cfg.Integration.GitHub.Token)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestEnvParserEmptyEnvironment(t *testing.T) {
	parser := NewEnvParserWithGetter(envGetter(nil))

	cfg, err := parser.ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Output.Path != "" || len(cfg.GitServices) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestEnvParserInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantMsg string
	}{
		{
			name:    "bad timeout",
			values:  map[string]string{EnvGitTimeout: "not-a-duration"},
			wantMsg: EnvGitTimeout,
		},
		{
			name:    "bad offline flag",
			values:  map[string]string{EnvGitOffline: "maybe"},
			wantMsg: EnvGitOffline,
		},
		{
			name:    "bad log level",
			values:  map[string]string{EnvLogLevel: "loud"},
			wantMsg: EnvLogLevel,
		},
		{
			name:    "bad log format",
			values:  map[string]string{EnvLogFormat: "xml"},
			wantMsg: EnvLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewEnvParserWithGetter(envGetter(tt.values))
			_, err := parser.ParseEnv()
			if err == nil {
				t.Fatal("ParseEnv() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
