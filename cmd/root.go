package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/repository"
)

// rootCmd defines the base command for the kvcs CLI.
// All subcommands (init, add, commit, etc.) register under this root.
var rootCmd = &cobra.Command{
	Use:   "kvcs",
	Short: "A minimal version control system",
	Long: `kvcs is a minimal, single-user version control system. It snapshots a directory
tree into a content-addressed object store and supports branches, checkout of
branches or commits, reset, a simplified merge, line diffs and a stash.`,
	PersistentPreRun: configureLogging,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
}

// configureLogging routes slog output to the command's error stream.
func configureLogging(cmd *cobra.Command, _ []string) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openRepository opens the repository containing the working directory.
func openRepository() (*repository.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return repository.Open(dir)
}
