package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagConfig represents flag parsing configuration and results
type FlagConfig struct {
	// Command-line flag values
	Output     string
	Branch     string
	Commit     string
	Offline    bool
	Timeout    time.Duration
	ConfigFile string

	// Git service allow-list flags
	AllowedHosts []string

	// GitHub integration flags
	GitHubToken    string
	GitHubEndpoint string

	// Logging flags
	Verbose   bool
	Quiet     bool
	LogLevel  string
	LogFormat string

	timeoutSet   bool
	offlineSet   bool
	verboseSet   bool
	quietSet     bool
	logLevelSet  bool
	logFormatSet bool
}

// AddFlags adds all configuration flags to the provided cobra command.
// This function defines all available command-line flags with their
// default values, help text, and validation rules.
func AddFlags(cmd *cobra.Command) *FlagConfig {
	fc := &FlagConfig{}

	// Output and basic operation flags (persistent flags are inherited by subcommands)
	cmd.PersistentFlags().StringVarP(&fc.Output, "output", "o", "",
		"Output directory for prepared repositories (default: $XDG_CACHE_HOME/gitprep)")
	cmd.PersistentFlags().StringVarP(&fc.ConfigFile, "config", "c", "",
		"Configuration file path")

	// Checkout target flags
	cmd.PersistentFlags().StringVarP(&fc.Branch, "branch", "b", "",
		"Branch to check out")
	cmd.PersistentFlags().StringVar(&fc.Commit, "commit", "",
		"Commit digest to check out")

	// Git execution flags
	cmd.PersistentFlags().BoolVar(&fc.Offline, "offline", false,
		"Skip network git operations and use the local clone as-is")
	cmd.PersistentFlags().DurationVar(&fc.Timeout, "timeout", 10*time.Minute,
		"Timeout for git child processes")

	// Allow-list flags
	cmd.PersistentFlags().StringSliceVar(&fc.AllowedHosts, "allowed-hosts", nil,
		"Additional git service hostnames to accept remotes from")

	// Logging control flags
	cmd.PersistentFlags().BoolVarP(&fc.Verbose, "verbose", "v", false,
		"Verbose logging output (equivalent to --log-level=debug)")
	cmd.PersistentFlags().BoolVarP(&fc.Quiet, "quiet", "q", false,
		"Suppress non-essential output (equivalent to --log-level=warn)")
	cmd.PersistentFlags().StringVar(&fc.LogLevel, "log-level", "",
		"Logging level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&fc.LogFormat, "log-format", "",
		"Log output format (text, json)")

	// GitHub integration flags
	cmd.PersistentFlags().StringVar(&fc.GitHubToken, "github-token", "",
		"GitHub authentication token")
	cmd.PersistentFlags().StringVar(&fc.GitHubEndpoint, "github-endpoint", "",
		"GitHub API endpoint URL")

	// Mark verbose and quiet as mutually exclusive
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("verbose", "log-level")
	cmd.MarkFlagsMutuallyExclusive("quiet", "log-level")

	return fc
}

// ValidateFlags validates flag combinations and values.
// Returns an error if any validation rules are violated.
func (fc *FlagConfig) ValidateFlags() error {
	var errors []string

	if fc.timeoutSet && fc.Timeout <= 0 {
		errors = append(errors, "timeout must be positive")
	}

	if fc.logLevelSet {
		validLevels := []string{"debug", "info", "warn", "error"}
		if !contains(validLevels, fc.LogLevel) {
			errors = append(errors, fmt.Sprintf("log-level must be one of: %s", strings.Join(validLevels, ", ")))
		}
	}

	if fc.logFormatSet {
		validFormats := []string{"text", "json"}
		if !contains(validFormats, fc.LogFormat) {
			errors = append(errors, fmt.Sprintf("log-format must be one of: %s", strings.Join(validFormats, ", ")))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("flag validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ToConfig converts flag configuration to a Config struct.
// It emits only the values explicitly set via flags; callers should merge
// this result with other configuration sources to honour precedence rules.
func (fc *FlagConfig) ToConfig() (*Config, error) {
	config := New()

	if fc.Output != "" {
		config.Output.Path = fc.Output
	}

	if fc.Branch != "" {
		config.Branch = fc.Branch
	}

	if fc.Commit != "" {
		config.Commit = fc.Commit
	}

	if fc.timeoutSet {
		config.Git.Timeout = fc.Timeout
	}

	if fc.offlineSet {
		config.setGitOffline(fc.Offline)
	}

	for _, host := range fc.AllowedHosts {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}
		config.GitServices = append(config.GitServices, GitServiceConfig{
			Name:     host,
			Hostname: host,
		})
	}

	if fc.verboseSet {
		config.setLoggingVerbose(fc.Verbose)
		if fc.Verbose {
			config.Logging.Level = "debug"
		}
	}
	if fc.quietSet {
		config.setLoggingQuiet(fc.Quiet)
		if fc.Quiet {
			config.Logging.Level = "warn"
		}
	}
	if fc.logLevelSet && fc.LogLevel != "" {
		config.Logging.Level = fc.LogLevel
	}

	if fc.logFormatSet && fc.LogFormat != "" {
		config.Logging.Format = fc.LogFormat
	}

	// GitHub integration flags
	if fc.GitHubToken != "" {
		config.Integration.GitHub.Token = fc.GitHubToken
	}

	if fc.GitHubEndpoint != "" {
		config.Integration.GitHub.Endpoint = fc.GitHubEndpoint
	}

	return config, nil
}

// LoadFromFlags loads configuration from command-line flags using cobra.
// This is the main entry point for flag-based configuration.
func LoadFromFlags(cmd *cobra.Command) (*Config, error) {
	if cmd == nil {
		return nil, fmt.Errorf("command cannot be nil")
	}

	// cmd.Flags() returns both local and inherited flags
	fc := extractFlagConfig(cmd.Flags())

	if err := fc.ValidateFlags(); err != nil {
		return nil, err
	}

	return fc.ToConfig()
}

// extractFlagConfig extracts flag values from a flag set into FlagConfig
func extractFlagConfig(flags *pflag.FlagSet) *FlagConfig {
	fc := &FlagConfig{}

	if flags.Changed("output") {
		fc.Output, _ = flags.GetString("output")
	}
	if flags.Changed("config") {
		fc.ConfigFile, _ = flags.GetString("config")
	}
	if flags.Changed("branch") {
		fc.Branch, _ = flags.GetString("branch")
	}
	if flags.Changed("commit") {
		fc.Commit, _ = flags.GetString("commit")
	}
	if flags.Changed("offline") {
		fc.Offline, _ = flags.GetBool("offline")
		fc.offlineSet = true
	}
	if flags.Changed("timeout") {
		fc.Timeout, _ = flags.GetDuration("timeout")
		fc.timeoutSet = true
	}
	if flags.Changed("allowed-hosts") {
		fc.AllowedHosts, _ = flags.GetStringSlice("allowed-hosts")
	}
	if flags.Changed("verbose") {
		fc.Verbose, _ = flags.GetBool("verbose")
		fc.verboseSet = true
	}
	if flags.Changed("quiet") {
		fc.Quiet, _ = flags.GetBool("quiet")
		fc.quietSet = true
	}
	if flags.Changed("log-level") {
		fc.LogLevel, _ = flags.GetString("log-level")
		fc.logLevelSet = true
	}
	if flags.Changed("log-format") {
		fc.LogFormat, _ = flags.GetString("log-format")
		fc.logFormatSet = true
	}
	if flags.Changed("github-token") {
		fc.GitHubToken, _ = flags.GetString("github-token")
	}
	if flags.Changed("github-endpoint") {
		fc.GitHubEndpoint, _ = flags.GetString("github-endpoint")
	}

	if !fc.timeoutSet {
		fc.Timeout = 0
	}

	return fc
}
