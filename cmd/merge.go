package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Bring the files of another branch into the current branch",
	Long: `Overwrite the working tree with the files of the given branch, stage the
whole working tree and commit it on the current branch. There is no
three-way merge and no conflict detection.`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runMerge,
}

var noFFFlag bool

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().BoolVar(&noFFFlag, "no-ff", false, "Mark the merge commit message as no-fast-forward")
}

func runMerge(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	result, err := repo.Merge(args[0], noFFFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.UpToDate {
		fmt.Fprintln(out, "Already up to date.")
		return nil
	}
	fmt.Fprintf(out, "[%s %s] %s\n", result.Into, result.Commit.ShortHash, result.Commit.Message)
	fmt.Fprintf(out, "Merged branch '%s' into '%s'\n", result.Branch, result.Into)
	return nil
}
