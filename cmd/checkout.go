package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/utils"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch|commit>",
	Short: "Switch branches or restore the files of a commit",
	Long: `Switch to a branch, replacing the working tree with its latest commit.
A commit hash or a prefix of at least 8 characters checks out that commit
in a detached state: files are restored but no branch moves.`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	result, err := repo.Checkout(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Detached {
		fmt.Fprintf(out, "HEAD is now at %s (detached)\n", utils.ShortHash(result.Commit, constants.ShortHashLength))
		return nil
	}
	fmt.Fprintf(out, "Switched to branch '%s'\n", result.Branch)
	return nil
}
