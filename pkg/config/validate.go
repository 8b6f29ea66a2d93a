package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ValidationError represents a configuration validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("config validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate inspects the configuration for missing or invalid fields.
// It applies comprehensive validation rules and returns aggregated errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{
			Field:   "config",
			Value:   nil,
			Message: "configuration cannot be nil",
		}
	}

	var errors ValidationErrors

	errors = append(errors, validateOutput(&cfg.Output)...)
	errors = append(errors, validateGitServices(cfg.GitServices)...)
	errors = append(errors, validateGit(&cfg.Git)...)
	errors = append(errors, validateIntegration(&cfg.Integration)...)
	errors = append(errors, validateLogging(&cfg.Logging)...)

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// ApplyDefaults applies sensible defaults to the configuration.
// It should be called after parsing but before validation.
func ApplyDefaults(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{
			Field:   "config",
			Value:   nil,
			Message: "configuration cannot be nil",
		}
	}

	applyOutputDefaults(&cfg.Output)
	applyGitServiceDefaults(cfg)
	applyGitDefaults(&cfg.Git)
	applyIntegrationDefaults(&cfg.Integration)
	applyLoggingDefaults(&cfg.Logging)

	return nil
}

// validateOutput validates output configuration settings.
func validateOutput(out *OutputConfig) []ValidationError {
	var errors []ValidationError

	if out.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Value:   out.Path,
			Message: "output path is required",
		})
	} else if !filepath.IsAbs(out.Path) {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Value:   out.Path,
			Message: "output path must be absolute",
		})
	}

	return errors
}

// validateGitServices validates the git service allow-list.
func validateGitServices(services []GitServiceConfig) []ValidationError {
	var errors []ValidationError

	if len(services) == 0 {
		errors = append(errors, ValidationError{
			Field:   "git_services",
			Value:   services,
			Message: "at least one git service is required",
		})
	}

	for i, svc := range services {
		host := strings.TrimSpace(svc.Hostname)
		if host == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("git_services[%d].hostname", i),
				Value:   svc.Hostname,
				Message: "hostname is required",
			})
			continue
		}
		if strings.Contains(host, "://") || strings.ContainsAny(host, "/@") {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("git_services[%d].hostname", i),
				Value:   svc.Hostname,
				Message: "hostname must be a bare host, not a URL",
			})
		}
	}

	return errors
}

// validateGit validates git execution settings.
func validateGit(git *GitConfig) []ValidationError {
	var errors []ValidationError

	if git.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "git.timeout",
			Value:   git.Timeout,
			Message: "timeout must be positive",
		})
	} else if git.Timeout > 24*time.Hour {
		errors = append(errors, ValidationError{
			Field:   "git.timeout",
			Value:   git.Timeout,
			Message: "timeout cannot exceed 24 hours",
		})
	}

	return errors
}

// validateIntegration validates integration configuration settings.
func validateIntegration(integ *IntegrationConfig) []ValidationError {
	var errors []ValidationError

	// GitHub endpoint validation (if provided)
	if integ.GitHub.Endpoint != "" {
		if _, err := url.Parse(integ.GitHub.Endpoint); err != nil {
			errors = append(errors, ValidationError{
				Field:   "integration.github.endpoint",
				Value:   integ.GitHub.Endpoint,
				Message: fmt.Sprintf("invalid GitHub endpoint URL: %v", err),
			})
		}
	}

	return errors
}

// validateLogging validates logging configuration settings.
func validateLogging(log *LoggingConfig) []ValidationError {
	var errors []ValidationError

	validLevels := []string{"debug", "info", "warn", "error"}
	if log.Level != "" && !contains(validLevels, log.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   log.Level,
			Message: fmt.Sprintf("invalid log level, must be one of: %s", strings.Join(validLevels, ", ")),
		})
	}

	validFormats := []string{"text", "json"}
	if log.Format != "" && !contains(validFormats, log.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   log.Format,
			Message: fmt.Sprintf("invalid log format, must be one of: %s", strings.Join(validFormats, ", ")),
		})
	}

	// Mutual exclusivity check for verbose and quiet
	if log.Verbose && log.Quiet {
		errors = append(errors, ValidationError{
			Field:   "logging.verbose,logging.quiet",
			Value:   fmt.Sprintf("verbose=%t, quiet=%t", log.Verbose, log.Quiet),
			Message: "verbose and quiet modes are mutually exclusive",
		})
	}

	return errors
}

// applyOutputDefaults applies default values to output configuration.
func applyOutputDefaults(out *OutputConfig) {
	if out.Path == "" {
		out.Path = getDefaultOutputPath()
	}
}

// applyGitServiceDefaults fills in the built-in allow-list when
// configuration names no services.
func applyGitServiceDefaults(cfg *Config) {
	if len(cfg.GitServices) == 0 {
		cfg.GitServices = DefaultGitServices()
	}
}

// applyGitDefaults applies default values to git execution configuration.
func applyGitDefaults(git *GitConfig) {
	if git.Timeout == 0 {
		git.Timeout = 10 * time.Minute // Default: 10 minutes
	}
}

// applyIntegrationDefaults applies default values to integration configuration.
func applyIntegrationDefaults(integ *IntegrationConfig) {
	if integ.GitHub.Endpoint == "" {
		integ.GitHub.Endpoint = "https://api.github.com" // Default GitHub endpoint
	}
}

// applyLoggingDefaults applies default values to logging configuration.
func applyLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = "info" // Default log level
	}

	if log.Format == "" {
		log.Format = "text" // Default log format
	}

	// Handle verbose and quiet mode implications
	if log.Verbose {
		log.Level = "debug"
	}
	if log.Quiet {
		log.Level = "warn"
	}
}

// Helper functions

// getDefaultOutputPath returns the default output directory path.
func getDefaultOutputPath() string {
	// Follow XDG Base Directory specification
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "gitprep")
	}

	// Fallback to ~/.cache/gitprep
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".cache", "gitprep")
	}

	// Last resort fallback
	return filepath.Join(os.TempDir(), "gitprep")
}

// contains checks if a slice contains a specific string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
