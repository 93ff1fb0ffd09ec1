package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KostasZigo/kvcs/internal/diff"
)

func TestDiffWorking_ModifiedStagedFilesOnly(t *testing.T) {
	repo := setupRepo(t)
	writeFile(t, repo, "a.txt", "one\ntwo\n")
	writeFile(t, repo, "same.txt", "same\n")
	writeFile(t, repo, "gone.txt", "x\n")
	_, err := repo.Add(".")
	require.NoError(t, err)

	writeFile(t, repo, "a.txt", "one\nTWO\n")
	writeFile(t, repo, "untracked.txt", "u\n")
	removeFile(t, repo, "gone.txt")

	files, err := repo.DiffWorking()

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.txt", files[0].Path)
	assert.False(t, files[0].NewFile)
	assert.Equal(t, []diff.Edit{
		{Op: diff.Equal, Line: "one"},
		{Op: diff.Delete, Line: "two"},
		{Op: diff.Insert, Line: "TWO"},
	}, files[0].Edits)

	files, err = repo.DiffWorking("same.txt", "untracked.txt")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiffStaged_AgainstHead(t *testing.T) {
	repo := setupRepo(t)
	commitFiles(t, repo, "base", map[string]string{"a.txt": "a\nb\n", "same.txt": "s\n"})

	writeFile(t, repo, "a.txt", "a\nb\nc\n")
	writeFile(t, repo, "new.txt", "fresh\n")
	_, err := repo.Add(".")
	require.NoError(t, err)

	files, err := repo.DiffStaged()

	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "a.txt", files[0].Path)
	assert.False(t, files[0].NewFile)
	assert.Equal(t, []diff.Edit{
		{Op: diff.Equal, Line: "a"},
		{Op: diff.Equal, Line: "b"},
		{Op: diff.Insert, Line: "c"},
	}, files[0].Edits)

	assert.Equal(t, "new.txt", files[1].Path)
	assert.True(t, files[1].NewFile)
	assert.Equal(t, "644", files[1].Mode)
	assert.Equal(t, []diff.Edit{{Op: diff.Insert, Line: "fresh"}}, files[1].Edits)
}

func TestDiffStaged_NoHeadTreatsEverythingAsNew(t *testing.T) {
	repo := setupRepo(t)
	writeFile(t, repo, "a.txt", "x\n")
	_, err := repo.Add("a.txt")
	require.NoError(t, err)

	files, err := repo.DiffStaged()

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, files[0].NewFile)
}

func TestDiff_DoesNotMutateState(t *testing.T) {
	repo := setupRepo(t)
	commitFiles(t, repo, "base", map[string]string{"a.txt": "1\n"})
	writeFile(t, repo, "a.txt", "2\n")
	_, err := repo.Add("a.txt")
	require.NoError(t, err)
	writeFile(t, repo, "a.txt", "3\n")
	head := currentHead(t, repo)

	_, err = repo.DiffWorking()
	require.NoError(t, err)
	_, err = repo.DiffStaged()
	require.NoError(t, err)

	assert.Equal(t, head, currentHead(t, repo))
	assert.Equal(t, []string{"a.txt"}, stagedPaths(t, repo))
	assert.Equal(t, "3\n", readFile(t, repo, "a.txt"))
}

func TestDiffWorking_ReadFailureIsReturned(t *testing.T) {
	repo := setupRepo(t)
	writeFile(t, repo, "a.txt", "one\n")
	_, err := repo.Add("a.txt")
	require.NoError(t, err)

	// a directory in place of the staged file cannot be read
	removeFile(t, repo, "a.txt")
	require.NoError(t, os.Mkdir(filepath.Join(repo.Root(), "a.txt"), 0755))

	_, err = repo.DiffWorking()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read a.txt")
}
