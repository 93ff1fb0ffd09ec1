package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/ui"
	"github.com/KostasZigo/kvcs/utils"
)

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show the working tree status",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	status, err := repo.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := ui.NewPalette(out)

	fmt.Fprintf(out, "On branch %s\n", status.Branch)
	if status.Head != "" {
		fmt.Fprintf(out, "Current commit: %s (%s)\n", utils.ShortHash(status.Head, constants.ShortHashLength), status.HeadMessage)
	} else {
		fmt.Fprintln(out, "No commits yet")
	}
	fmt.Fprintln(out)

	printSection(out, "Changes to be committed:",
		[]string{`(use "kvcs reset" to unstage)`},
		status.Staged, func(p string) string { return palette.Added("new file:   " + p) })
	printSection(out, "Changes not staged for commit:",
		[]string{`(use "kvcs add <file>..." to update what will be committed)`},
		status.Modified, func(p string) string { return palette.Removed("modified:   " + p) })
	printSection(out, "Deleted files:",
		[]string{`(use "kvcs add <file>..." to update what will be committed)`},
		status.Deleted, func(p string) string { return palette.Removed("deleted:    " + p) })
	printSection(out, "Untracked files:",
		[]string{`(use "kvcs add <file>..." to include in what will be committed)`},
		status.Untracked, palette.Removed)

	if status.IsClean() {
		fmt.Fprintln(out, "nothing to commit, working tree clean")
	}
	return nil
}

func printSection(out io.Writer, title string, hints, paths []string, render func(string) string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(out, title)
	for _, hint := range hints {
		fmt.Fprintf(out, "  %s\n", hint)
	}
	fmt.Fprintln(out)
	for _, p := range paths {
		fmt.Fprintf(out, "        %s\n", render(p))
	}
	fmt.Fprintln(out)
}
