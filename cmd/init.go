package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/repository"
	"github.com/KostasZigo/kvcs/utils"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new kvcs repository",
	Long: `The 'init' command sets up a new kvcs repository in the current directory, or in the
given directory. It creates the .kvcs directory holding objects, config and HEAD.
If a repository already exists, the command fails without touching existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	if _, err := repository.InitRepository(dirPath); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty kvcs repository in %s\n", utils.BuildDirPath(dirPath, constants.Kvcs))
	return nil
}
