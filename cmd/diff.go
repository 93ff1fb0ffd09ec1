package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/diff"
	"github.com/KostasZigo/kvcs/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff [--cached] [path]...",
	Short: "Show changes between the index and the working tree or last commit",
	Long: `Without flags, show how working-tree files differ from what is staged.
With --cached, show how the staged files differ from the current commit.`,
	SilenceUsage: true,
	RunE:         runDiff,
}

var cachedFlag bool

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&cachedFlag, "cached", false, "Compare the index with the current commit")
}

func runDiff(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		p, err := repo.RelativePathspec(cwd, arg)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}

	var files []diff.File
	if cachedFlag {
		files, err = repo.DiffStaged(paths...)
	} else {
		files, err = repo.DiffWorking(paths...)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := ui.NewPalette(out)
	for _, f := range files {
		if err := diff.Write(out, f, palette); err != nil {
			return err
		}
	}
	return nil
}
