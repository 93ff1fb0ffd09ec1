package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit -m <message>",
	Short: "Record the staged files as a new commit",
	Long: `Record the index as a new commit on the current branch. The index is
cleared afterwards.

Example:
  kvcs commit -m "Add parser"`,
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runCommit,
}

var commitMessage string

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message")
	_ = commitCmd.MarkFlagRequired("message")
}

func runCommit(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	result, err := repo.Commit(commitMessage)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[%s %s] %s\n", result.Branch, result.ShortHash, result.Message)
	fmt.Fprintf(out, " %d file(s) committed\n", result.Files)
	return nil
}
