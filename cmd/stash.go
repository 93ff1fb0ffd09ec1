package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/repository"
)

var stashCmd = &cobra.Command{
	Use:   "stash",
	Short: "Save and restore staged changes",
	Long: `Stash saves the index, not working-tree files. Running 'kvcs stash' alone
is the same as 'kvcs stash push'. Entries are numbered from 0, newest first;
show and drop also accept an entry ID or a unique prefix of it.`,
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runStashPush,
}

var stashPushCmd = &cobra.Command{
	Use:          "push",
	Short:        "Save the index as a new stash entry and clear it",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runStashPush,
}

var stashPopCmd = &cobra.Command{
	Use:          "pop",
	Short:        "Restore the newest stash entry into the index and drop it",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runStashPop,
}

var stashListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List stash entries",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runStashList,
}

var stashShowCmd = &cobra.Command{
	Use:          "show [index|id]",
	Short:        "Show the files of a stash entry",
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runStashShow,
}

var stashDropCmd = &cobra.Command{
	Use:          "drop [index|id]",
	Short:        "Delete a stash entry",
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runStashDrop,
}

var stashMessage string

func init() {
	rootCmd.AddCommand(stashCmd)
	stashCmd.AddCommand(stashPushCmd, stashPopCmd, stashListCmd, stashShowCmd, stashDropCmd)

	for _, c := range []*cobra.Command{stashCmd, stashPushCmd} {
		c.Flags().StringVarP(&stashMessage, "message", "m", "", "Stash message")
	}
}

// stashIndex resolves an optional stash position or entry ID, defaulting to the newest entry.
func stashIndex(repo *repository.Repository, args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	return repo.StashResolve(args[0])
}

func runStashPush(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	entry, err := repo.StashPush(stashMessage)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved working directory and index state on %s: %s\n", entry.Branch, entry.Message)
	return nil
}

func runStashPop(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	entry, err := repo.StashPop()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dropped refs/stash@{0} (%s)\n", entry.Message)
	return nil
}

func runStashList(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	entries, err := repo.StashList()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No stash entries")
		return nil
	}
	for i, entry := range entries {
		fmt.Fprintf(out, "stash@{%d}: On %s: %s\n", i, entry.Branch, entry.Message)
	}
	return nil
}

func runStashShow(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	i, err := stashIndex(repo, args)
	if err != nil {
		return err
	}
	entry, err := repo.StashShow(i)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "stash@{%d}: %s\n", i, entry.Message)
	fmt.Fprintf(out, "ID: %s\n", entry.ID)
	fmt.Fprintf(out, "Date: %s\n", entry.Timestamp.Local().Format(logDateLayout))
	fmt.Fprintln(out)
	for _, p := range entry.Index.Paths() {
		fmt.Fprintf(out, "    %s\n", p)
	}
	return nil
}

func runStashDrop(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	i, err := stashIndex(repo, args)
	if err != nil {
		return err
	}
	entry, err := repo.StashDrop(i)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dropped stash@{%d} (%s)\n", i, entry.Message)
	return nil
}
