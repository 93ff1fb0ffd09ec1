package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KostasZigo/kvcs/internal/repository"
	"github.com/KostasZigo/kvcs/testutils"
)

// createTestRootCmd creates a fresh root command holding cmd.
// Flag values left over from earlier executions are reset to their defaults.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	resetFlags(cmd)
	testRootCmd := &cobra.Command{Use: "kvcs"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// runCommand executes cmd with args under a fresh root and returns its stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)
	testRootCmd.SetArgs(args)

	err := testRootCmd.Execute()
	return stdout.String(), err
}

// mustRun executes cmd and fails the test on error.
func mustRun(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	out, err := runCommand(t, cmd, args...)
	if err != nil {
		t.Fatalf("kvcs %v failed: %v", args, err)
	}
	return out
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// setupRepoDir initializes a repository in a temp dir and changes into it.
func setupRepoDir(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if _, err := repository.InitRepository(repoPath); err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	changeToRepoDir(t, repoPath)
	return repoPath
}

// commitFile writes a file, stages it and commits it through the CLI.
func commitFile(t *testing.T, repoPath, name, content, message string) {
	t.Helper()

	testutils.CreateTestFile(t, repoPath, name, []byte(content))
	mustRun(t, addCmd, "add", name)
	mustRun(t, commitCmd, "commit", "-m", message)
}
