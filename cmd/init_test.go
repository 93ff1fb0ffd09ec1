package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiledragon/gomonkey/v2"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/testutils"
	"github.com/KostasZigo/kvcs/utils"
)

// TestInitCommand_Success verifies successful repository initialization in current directory.
func TestInitCommand_Success(t *testing.T) {
	repoPath := t.TempDir()
	changeToRepoDir(t, repoPath)

	out, err := runCommand(t, initCmd, constants.InitCmdName)
	if err != nil {
		t.Fatalf("Init command failed: %v", err)
	}

	expectedMsg := "Initialized empty kvcs repository in " + utils.BuildDirPath(".", constants.Kvcs) + "\n"
	if !strings.Contains(out, expectedMsg) {
		t.Errorf("Expected output to contain %q, got: %s", expectedMsg, out)
	}

	testutils.AssertRepositoryStructure(t, repoPath)
}

// TestInitCommand_WithDirectory_Success verifies initialization with explicit directory path.
func TestInitCommand_WithDirectory_Success(t *testing.T) {
	targetDirectory := filepath.Join(t.TempDir(), "my-project")

	if _, err := runCommand(t, initCmd, constants.InitCmdName, targetDirectory); err != nil {
		t.Fatalf("Init command with directory failed: %v", err)
	}

	testutils.AssertRepositoryStructure(t, targetDirectory)
}

// TestInitCommand_AlreadyExists verifies error when repository already exists.
func TestInitCommand_AlreadyExists(t *testing.T) {
	repoPath := t.TempDir()

	if _, err := runCommand(t, initCmd, constants.InitCmdName, repoPath); err != nil {
		t.Fatalf("First init failed: %v", err)
	}

	_, err := runCommand(t, initCmd, constants.InitCmdName, repoPath)
	if err == nil {
		t.Fatal("Expected error when repository already exists")
	}

	expectedErrorMsg := "failed to initialize repository - [ALREADY_EXISTS] repository already exists at " + filepath.Join(repoPath, constants.Kvcs)
	if !strings.Contains(err.Error(), expectedErrorMsg) {
		t.Errorf("Expected error to contain %q, got: %q", expectedErrorMsg, err.Error())
	}
}

// TestInitCommand_TooManyArguments verifies the argument limit.
func TestInitCommand_TooManyArguments(t *testing.T) {
	_, err := runCommand(t, initCmd, constants.InitCmdName, "dir1", "dir2")

	if err == nil {
		t.Fatal("Expected error for too many arguments")
	}
	if !strings.Contains(err.Error(), "init command accepts at most 1 argument(s), received 2") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestInitCommand_Fail verifies cleanup on initialization failure.
func TestInitCommand_Fail(t *testing.T) {
	repoPath := t.TempDir()

	mockError := errors.New("mocked mkdir failure")
	callCount := 0
	patches := gomonkey.ApplyFunc(os.MkdirAll, func(path string, perm os.FileMode) error {
		callCount++
		if callCount > 1 {
			return mockError
		}
		// First call creates .kvcs itself
		return os.Mkdir(path, perm)
	})
	defer patches.Reset()

	_, err := runCommand(t, initCmd, constants.InitCmdName, repoPath)

	if err == nil {
		t.Fatal("Expected error since InitRepository mocked to fail")
	}
	if !errors.Is(err, mockError) {
		t.Errorf("Expected error to wrap the mock error %v, but got: %v", mockError, err)
	}

	testutils.AssertFileNotExists(t, filepath.Join(repoPath, constants.Kvcs))
}
