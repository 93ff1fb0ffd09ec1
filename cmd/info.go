package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/ui"
	"github.com/KostasZigo/kvcs/utils"
)

var infoCmd = &cobra.Command{
	Use:          "info",
	Short:        "Show repository statistics",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	info, err := repo.Info()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := ui.NewPalette(out)
	p := func(format string, a ...any) { fmt.Fprintf(out, format+"\n", a...) }

	p("%s", palette.Header("kvcs Repository Information"))
	p("===========================")
	p("")
	p("Repository path: %s", info.Root)
	p("kvcs directory: %s", info.KvcsDir)
	p("")

	p("Branch Information:")
	p("  Current branch: %s", info.CurrentBranch)
	p("  Total branches: %d", len(info.Branches))
	for _, b := range info.Branches {
		state := "(no commits)"
		if b.Head != "" {
			state = "(" + utils.ShortHash(b.Head, constants.ShortHashLength) + ")"
		}
		if b.Current {
			p("  * %s %s", palette.Current(b.Name), state)
		} else {
			p("    %s %s", b.Name, state)
		}
	}
	p("")

	p("Commit Information:")
	p("  Total commits: %d", info.CommitCount)
	if info.LatestCommit != "" {
		p("  Latest commit: %s (%s)", utils.ShortHash(info.LatestCommit, constants.ShortHashLength), info.LatestMsg)
		p("  Author: %s", info.LatestAuthor)
		p("  Date: %s", info.LatestDate.UTC().Format("2006-01-02 15:04:05 UTC"))
	} else {
		p("  Latest commit: None")
	}
	p("")

	p("File Statistics:")
	p("  Tracked files: %d", info.Tracked)
	p("  Modified files: %d", info.Modified)
	p("  Untracked files: %d", info.Untracked)
	p("  Staged files: %d", info.Staged)
	p("")

	p("Repository Size:")
	p("  .kvcs directory: %s", ui.FormatBytes(info.Size))
	p("  Objects stored: %d", info.Objects)
	p("")

	p("Stash Information:")
	p("  Stash entries: %d", info.StashCount)
	if info.StashCount > 0 {
		p("  Latest stash: %s", info.LatestStash)
	}
	p("")

	p("Configuration:")
	p("  User name: %s", info.UserName)
	p("  User email: %s", info.UserEmail)
	p("  Remotes: %d", info.RemotesCount)
	return nil
}
