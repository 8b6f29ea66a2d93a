package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitprep/internal/tagrank"
	"github.com/goliatone/gitprep/pkg/gitidentity"
)

func newTagsCommand() *cobra.Command {
	var highest, latestRelease bool

	cmd := &cobra.Command{
		Use:   "tags <url>",
		Short: "List a remote repository's tags without cloning it",
		Long: `Tags queries the remote's tag references over the git protocol and
prints each tag with the commit it points at. Annotated tags are resolved
to their target commits. With --highest only the tag naming the largest
version is printed; with --latest-release the hosting service API is asked
for the latest published release instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(cmd, args[0], highest, latestRelease)
		},
	}

	cmd.Flags().BoolVar(&highest, "highest", false,
		"Print only the tag naming the highest version")
	cmd.Flags().BoolVar(&latestRelease, "latest-release", false,
		"Print the latest release published on the hosting service")
	cmd.MarkFlagsMutuallyExclusive("highest", "latest-release")

	return cmd
}

func runTags(cmd *cobra.Command, rawURL string, highest, latestRelease bool) error {
	remote, ok := gitidentity.Normalize(rawURL, cfg.AllowedHosts())
	if !ok {
		return newValidationError(fmt.Sprintf("unsupported or disallowed repository URL %q", rawURL), nil)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Git.Timeout)
	defer cancel()

	if latestRelease {
		return printLatestRelease(ctx, cmd, remote)
	}

	index := container.Metadata().TagsViaLsRemote(ctx, remote.URL())
	if index == nil {
		return newNetworkError(fmt.Sprintf("could not list tags for %s", remote.CompleteName()), nil)
	}
	if len(index) == 0 {
		return newValidationError(fmt.Sprintf("repository %s has no tags", remote.CompleteName()), nil)
	}

	out := cmd.OutOrStdout()

	if highest {
		tags := make([]string, 0, len(index))
		for tag := range index {
			tags = append(tags, tag)
		}
		best, err := tagrank.Highest(tags)
		if err != nil {
			return newValidationError(fmt.Sprintf("no version tag found in %s", remote.CompleteName()), err)
		}
		fmt.Fprintf(out, "%s\t%s\n", best, index[best])
		return nil
	}

	tags := make([]string, 0, len(index))
	for tag := range index {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(out, "%s\t%s\n", tag, index[tag])
	}
	return nil
}

func printLatestRelease(ctx context.Context, cmd *cobra.Command, remote gitidentity.Remote) error {
	if !githubHosted(remote) {
		return newValidationError(fmt.Sprintf("release lookup is not available for repositories on %s", remote.Host), nil)
	}

	release, err := container.GitService().LatestRelease(ctx, remote.Owner, gitidentity.Clean(remote.Name))
	if err != nil {
		return newNetworkError(fmt.Sprintf("could not query releases for %s", remote.CompleteName()), err)
	}
	if release == nil {
		return newValidationError(fmt.Sprintf("repository %s has no releases", remote.CompleteName()), nil)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", release.TagName, release.URL)
	return nil
}
