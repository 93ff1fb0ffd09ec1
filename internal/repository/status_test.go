package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Categories(t *testing.T) {
	repo := setupRepo(t)
	c1 := commitFiles(t, repo, "c1", map[string]string{"seed.txt": "s"})

	writeFile(t, repo, "staged.txt", "s")
	writeFile(t, repo, "modified.txt", "before")
	writeFile(t, repo, "deleted.txt", "d")
	_, err := repo.Add("staged.txt", "modified.txt", "deleted.txt")
	require.NoError(t, err)
	writeFile(t, repo, "modified.txt", "after")
	removeFile(t, repo, "deleted.txt")
	writeFile(t, repo, "dir/untracked.txt", "u")

	status, err := repo.Status()

	require.NoError(t, err)
	assert.Equal(t, "main", status.Branch)
	assert.Equal(t, c1.Hash, status.Head)
	assert.Equal(t, "c1", status.HeadMessage)
	assert.Equal(t, []string{"staged.txt"}, status.Staged)
	assert.Equal(t, []string{"modified.txt"}, status.Modified)
	assert.Equal(t, []string{"deleted.txt"}, status.Deleted)
	assert.Equal(t, []string{"dir/untracked.txt", "seed.txt"}, status.Untracked)
	assert.False(t, status.IsClean())
}

func TestStatus_EmptyRepository(t *testing.T) {
	repo := setupRepo(t)

	status, err := repo.Status()

	require.NoError(t, err)
	assert.Empty(t, status.Head)
	assert.True(t, status.IsClean())
}
