package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/ui"
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "List branches or create a new one",
	Long: `Without arguments, list all branches and mark the current one.
With a name, create a branch pointing at the current commit.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runBranch,
}

func init() {
	rootCmd.AddCommand(branchCmd)
}

func runBranch(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		if err := repo.CreateBranch(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created branch '%s'\n", args[0])
		return nil
	}

	branches, err := repo.ListBranches()
	if err != nil {
		return err
	}
	palette := ui.NewPalette(out)
	for _, b := range branches {
		if b.Current {
			fmt.Fprintf(out, "* %s\n", palette.Current(b.Name))
		} else {
			fmt.Fprintf(out, "  %s\n", b.Name)
		}
	}
	return nil
}
