package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitprep/pkg/gitidentity"
	"github.com/goliatone/gitprep/pkg/workspace"
)

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve a repository URL to its canonical identity",
		Long: `Resolve parses the given URL in any supported dialect (https, ssh, or
scp-style) and prints the canonical identity gitprep would use for it,
without touching the network or the filesystem.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0])
		},
	}
}

func runResolve(cmd *cobra.Command, rawURL string) error {
	remote, ok := gitidentity.Normalize(rawURL, cfg.AllowedHosts())
	if !ok {
		return newValidationError(fmt.Sprintf("unsupported or disallowed repository URL %q", rawURL), nil)
	}

	outputRoot := workspace.Resolve("", cfg)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name:      %s\n", remote.CompleteName())
	fmt.Fprintf(out, "url:       %s\n", remote.URL())
	fmt.Fprintf(out, "host:      %s\n", remote.Host)
	fmt.Fprintf(out, "owner:     %s\n", remote.Owner)
	fmt.Fprintf(out, "repo:      %s\n", remote.Clean())
	fmt.Fprintf(out, "directory: %s\n", workspace.RepoDir(outputRoot, remote))
	return nil
}
