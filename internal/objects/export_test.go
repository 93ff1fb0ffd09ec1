package objects

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/testutils"
	"github.com/KostasZigo/kvcs/utils"
)

// setupStore creates a repository directory with .kvcs/objects and returns its store.
func setupStore(t *testing.T) (string, *ObjectStore) {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithKvcsDir(t)
	return repoPath, NewObjectStore(repoPath)
}

// objectFilePath returns the sharded on-disk path for hash.
func objectFilePath(repoPath, hash string) string {
	return filepath.Join(repoPath, constants.Kvcs, constants.Objects, hash[:constants.HashDirPrefixLength], hash[constants.HashDirPrefixLength:])
}

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash := utils.ComputeHash(content)
	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// createTree creates tree from entries and fails test on error.
func createTree(t *testing.T, entries []TreeEntry) *Tree {
	t.Helper()

	tree, err := NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createTestAuthor returns a random test author.
func createTestAuthor() Author {
	return Author{
		Name:  testutils.RandomString(10),
		Email: testutils.RandomString(20),
	}
}

// createAndStoreCommit creates commit, stores it, and returns commit.
func createAndStoreCommit(t *testing.T, parentHash string, store *ObjectStore) *Commit {
	t.Helper()

	commit, err := NewCommit(testutils.RandomHash(), parentHash, testutils.RandomString(50), createTestAuthor(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	if err := store.WriteCommit(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// writeRawObject places an arbitrary file into the objects directory.
func writeRawObject(t *testing.T, repoPath, hash string, data []byte) {
	t.Helper()

	path := objectFilePath(repoPath, hash)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create shard directory: %v", err)
	}
	if err := os.WriteFile(path, data, constants.FilePerms); err != nil {
		t.Fatalf("Failed to write raw object: %v", err)
	}
}
