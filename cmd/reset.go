package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/repository"
	"github.com/KostasZigo/kvcs/utils"
)

var resetCmd = &cobra.Command{
	Use:   "reset [--hard | --soft] [commit]",
	Short: "Move the current branch to a commit",
	Long: `Move the current branch to the given commit, or to its current commit.
  --soft   only move the branch
  (none)   also rewrite the index to match the commit
  --hard   also replace the working tree with the commit's files`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runReset,
}

var (
	hardFlag bool
	softFlag bool
)

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&hardFlag, "hard", false, "Reset index and working tree")
	resetCmd.Flags().BoolVar(&softFlag, "soft", false, "Only move the branch pointer")
}

func runReset(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	opts := repository.ResetOptions{Hard: hardFlag, Soft: softFlag}
	if len(args) == 1 {
		opts.Commit = args[0]
	}
	target, err := repo.Reset(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "HEAD is now at %s\n", utils.ShortHash(target, constants.ShortHashLength))
	return nil
}
