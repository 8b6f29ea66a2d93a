package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvParser provides functionality to parse configuration from environment
// variables. It handles type conversions, validation, and error reporting
// for all supported environment variables in the GITPREP_* namespace.
type EnvParser struct {
	// getEnv allows injection of environment variable retrieval for testing
	getEnv func(string) string
}

// NewEnvParser creates a new environment variable parser.
func NewEnvParser() *EnvParser {
	return &EnvParser{
		getEnv: os.Getenv,
	}
}

// NewEnvParserWithGetter creates a new environment variable parser with custom getter.
// This is primarily used for testing with mock environment variables.
func NewEnvParserWithGetter(getter func(string) string) *EnvParser {
	return &EnvParser{
		getEnv: getter,
	}
}

// ParseEnv parses all GITPREP environment variables and returns a populated Config.
// It returns an error if any environment variables contain invalid values.
func (p *EnvParser) ParseEnv() (*Config, error) {
	var errs []string
	config := New()

	p.parseOutput(config)
	p.parseGitServices(config)

	if err := p.parseGit(config); err != nil {
		errs = append(errs, err.Error())
	}

	p.parseIntegration(config)

	if err := p.parseLogging(config); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("environment variable parsing errors: %s", strings.Join(errs, "; "))
	}

	return config, nil
}

// parseOutput parses output-related environment variables
func (p *EnvParser) parseOutput(config *Config) {
	if path := p.getEnv(EnvOutputPath); path != "" {
		config.Output.Path = path
	}
}

// parseGitServices parses the allow-list environment variable
func (p *EnvParser) parseGitServices(config *Config) {
	for _, host := range p.parseStringList(p.getEnv(EnvAllowedHosts)) {
		config.GitServices = append(config.GitServices, GitServiceConfig{
			Name:     host,
			Hostname: host,
		})
	}
}

// parseGit parses git execution environment variables
func (p *EnvParser) parseGit(config *Config) error {
	var errs []string

	if timeoutStr := p.getEnv(EnvGitTimeout); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvGitTimeout, err))
		} else {
			config.Git.Timeout = timeout
		}
	}

	if offlineStr := p.getEnv(EnvGitOffline); offlineStr != "" {
		offline, err := p.parseBool(offlineStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvGitOffline, err))
		} else {
			config.setGitOffline(offline)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("git configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// parseIntegration parses integration-related environment variables
func (p *EnvParser) parseIntegration(config *Config) {
	if token := p.getEnv(EnvGitHubToken); token != "" {
		config.Integration.GitHub.Token = token
	}

	if endpoint := p.getEnv(EnvGitHubEndpoint); endpoint != "" {
		config.Integration.GitHub.Endpoint = endpoint
	}
}

// parseLogging parses logging-related environment variables
func (p *EnvParser) parseLogging(config *Config) error {
	var errs []string

	if level := p.getEnv(EnvLogLevel); level != "" {
		if !p.isValidLogLevel(level) {
			errs = append(errs, fmt.Sprintf("invalid %s: must be one of [debug, info, warn, error], got %q", EnvLogLevel, level))
		} else {
			config.Logging.Level = level
		}
	}

	if format := p.getEnv(EnvLogFormat); format != "" {
		if !p.isValidLogFormat(format) {
			errs = append(errs, fmt.Sprintf("invalid %s: must be one of [text, json], got %q", EnvLogFormat, format))
		} else {
			config.Logging.Format = format
		}
	}

	if verboseStr := p.getEnv(EnvVerbose); verboseStr != "" {
		verbose, err := p.parseBool(verboseStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvVerbose, err))
		} else {
			config.setLoggingVerbose(verbose)
		}
	}

	if quietStr := p.getEnv(EnvQuiet); quietStr != "" {
		quiet, err := p.parseBool(quietStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvQuiet, err))
		} else {
			config.setLoggingQuiet(quiet)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("logging configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// parseBool parses a boolean value from a string, supporting multiple formats
func (p *EnvParser) parseBool(value string) (bool, error) {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch lower {
	case "true", "1", "yes", "on", "enabled":
		return true, nil
	case "false", "0", "no", "off", "disabled", "":
		return false, nil
	default:
		return false, fmt.Errorf("must be one of [true, false, 1, 0, yes, no, on, off, enabled, disabled], got %q", value)
	}
}

// parseStringList parses a comma-separated list of strings
func (p *EnvParser) parseStringList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// isValidLogLevel checks if the given log level is valid
func (p *EnvParser) isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// isValidLogFormat checks if the given log format is valid
func (p *EnvParser) isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	default:
		return false
	}
}

// FromEnv is a convenience function that creates a new parser and parses the environment.
func FromEnv() (*Config, error) {
	parser := NewEnvParser()
	return parser.ParseEnv()
}
