package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitprep/pkg/config"
	"github.com/goliatone/gitprep/pkg/di"
)

// Exit codes for different error types
const (
	ExitSuccess         = 0 // Successful execution
	ExitGenericError    = 1 // Generic error
	ExitConfigError     = 2 // Configuration error
	ExitValidationError = 3 // Input validation error
	ExitNetworkError    = 4 // Network/connectivity error
	ExitFileError       = 5 // File system error
	ExitCheckoutError   = 6 // Checkout resolution error
)

// CLIError carries an exit code alongside the failure description.
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) ExitCode() int {
	return e.Code
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Global variables for CLI state
var (
	container di.Container
	cfg       *config.Config
)

func main() {
	if err := execute(); err != nil {
		// Handle structured errors with appropriate exit codes
		if cliErr, ok := err.(*CLIError); ok {
			fmt.Fprintf(os.Stderr, "gitprep: %s\n", cliErr.Message)
			if cliErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "  Cause: %v\n", cliErr.Cause)
			}
			os.Exit(cliErr.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "gitprep: %v\n", err)
		os.Exit(ExitGenericError)
	}
}

// execute is the main entry point that sets up and runs the CLI
func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// newRootCommand creates the root cobra command with all subcommands
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitprep",
		Short: "Gitprep prepares local clones of remote git repositories for analysis",
		Long: `Gitprep resolves remote repository URLs against an allow-list of git
hosting services, maintains treeless partial clones under a shared output
directory, and checks out the requested branch or commit. It is built for
tooling that needs a repository's worktree at a known state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeContainer(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cleanupContainer()
		},
	}

	// Add configuration flags
	config.AddFlags(cmd)

	// Add subcommands
	cmd.AddCommand(
		newPrepareCommand(),
		newResolveCommand(),
		newTagsCommand(),
		newVersionCommand(),
	)

	return cmd
}

// initializeContainer sets up the dependency injection container with configuration
func initializeContainer(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	// Build configuration from file, environment, and flags
	builder := config.NewBuilder().
		FromFile(configFile).
		FromEnv().
		FromFlags(cmd) // Load from command flags (highest precedence)

	var err error
	cfg, err = builder.Build()
	if err != nil {
		return newConfigError("failed to build configuration", err)
	}

	container, err = di.New(di.WithConfig(cfg))
	if err != nil {
		return newConfigError("failed to initialize dependencies", err)
	}

	return nil
}

// cleanupContainer performs cleanup of container resources
func cleanupContainer() {
	if container != nil {
		if err := container.Close(); err != nil {
			if logger := container.Logger(); logger != nil {
				logger.Warn("Container cleanup errors", "error", err)
			} else {
				fmt.Fprintf(os.Stderr, "gitprep: container cleanup warning: %v\n", err)
			}
		}
	}
}

// Error creation helpers for structured error handling

func newConfigError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitConfigError, Message: message, Cause: cause}
}

func newValidationError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitValidationError, Message: message, Cause: cause}
}

func newNetworkError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitNetworkError, Message: message, Cause: cause}
}

func newFileError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitFileError, Message: message, Cause: cause}
}

func newCheckoutError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitCheckoutError, Message: message, Cause: cause}
}
