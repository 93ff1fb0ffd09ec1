package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/ui"
	"github.com/KostasZigo/kvcs/utils"
)

// logDateLayout matches the classic "Mon Jan 2 15:04:05 2006 -0700" log header.
const logDateLayout = "Mon Jan 02 15:04:05 2006 -0700"

var logCmd = &cobra.Command{
	Use:          "log",
	Short:        "Show the commit history of the current branch",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runLog,
}

var onelineFlag bool

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().BoolVar(&onelineFlag, "oneline", false, "Show each commit on a single line")
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	history, err := repo.Log()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintln(out, "No commits found")
		return nil
	}

	palette := ui.NewPalette(out)
	for _, commit := range history {
		if onelineFlag {
			fmt.Fprintf(out, "%s %s\n", palette.Warn(utils.ShortHash(commit.Hash(), constants.OnelineHashLength)), commit.Message())
			continue
		}
		fmt.Fprintln(out, palette.Warn("commit "+commit.Hash()))
		fmt.Fprintf(out, "Author: %s\n", commit.Author())
		fmt.Fprintf(out, "Date: %s\n", commit.Timestamp().Format(logDateLayout))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "    %s\n", commit.Message())
		fmt.Fprintln(out)
	}
	return nil
}
