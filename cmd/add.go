package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add <pathspec>...",
	Short: "Stage file contents for the next commit",
	Long: `Stage files for the next commit. A pathspec may name a file, a directory
(staged recursively, "." for everything), or a pattern. Patterns containing
any of *?[{ are globs; anything else matches paths containing it.

Examples:
  kvcs add a.txt
  kvcs add .
  kvcs add "*.go"`,
	SilenceUsage: true,
	Args:         minimumArgs(1),
	RunE:         runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	pathspecs := make([]string, 0, len(args))
	for _, arg := range args {
		spec, err := repo.RelativePathspec(cwd, arg)
		if err != nil {
			return err
		}
		pathspecs = append(pathspecs, spec)
	}

	result, err := repo.Add(pathspecs...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := ui.NewPalette(out)
	for _, p := range result.Staged {
		fmt.Fprintf(out, "add '%s'\n", p)
	}
	for _, spec := range result.Unmatched {
		fmt.Fprintln(out, palette.Warn(fmt.Sprintf("warning: pathspec '%s' did not match any files", spec)))
	}
	return nil
}
