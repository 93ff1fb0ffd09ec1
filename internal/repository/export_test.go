package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/require"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/worktree"
	"github.com/KostasZigo/kvcs/testutils"
)

// setupRepo initializes a repository in a temp dir with a clock that
// advances one second per call, so consecutive commits never collide.
func setupRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := InitRepository(t.TempDir())
	require.NoError(t, err)

	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func writeFile(t *testing.T, repo *Repository, rel, content string) {
	t.Helper()
	testutils.CreateTestFile(t, repo.Root(), rel, []byte(content))
}

func readFile(t *testing.T, repo *Repository, rel string) string {
	t.Helper()
	return testutils.ReadTestFile(t, repo.Root(), rel)
}

func removeFile(t *testing.T, repo *Repository, rel string) {
	t.Helper()
	require.NoError(t, os.Remove(filepath.Join(repo.Root(), filepath.FromSlash(rel))))
}

// commitFiles writes files, stages everything and commits.
func commitFiles(t *testing.T, repo *Repository, message string, files map[string]string) *CommitResult {
	t.Helper()

	for rel, content := range files {
		writeFile(t, repo, rel, content)
	}
	_, err := repo.Add(".")
	require.NoError(t, err)

	result, err := repo.Commit(message)
	require.NoError(t, err)
	return result
}

// snapshot returns every working-tree file with its content.
func snapshot(t *testing.T, repo *Repository) map[string]string {
	t.Helper()

	files, err := repo.worktree.Files("")
	require.NoError(t, err)

	state := make(map[string]string, len(files))
	for _, f := range files {
		state[f] = readFile(t, repo, f)
	}
	return state
}

func currentHead(t *testing.T, repo *Repository) string {
	t.Helper()

	cfg, err := repo.loadConfig()
	require.NoError(t, err)
	return cfg.Head()
}

func stagedPaths(t *testing.T, repo *Repository) []string {
	t.Helper()

	idx, err := repo.loadIndex()
	require.NoError(t, err)
	return idx.Paths()
}

func writeMetadata(t *testing.T, repo *Repository, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(repo.KvcsDir(), name), []byte(content), constants.FilePerms))
}

var errUnlistable = errors.New("directory cannot be listed")

type unlistableFS struct {
	billy.Filesystem
	dir string
}

func (f *unlistableFS) ReadDir(path string) ([]os.FileInfo, error) {
	if filepath.ToSlash(path) == f.dir {
		return nil, errUnlistable
	}
	return f.Filesystem.ReadDir(path)
}

// makeUnlistable swaps the working tree for one where listing rel fails.
func makeUnlistable(repo *Repository, rel string) {
	repo.worktree = worktree.NewWithFS(&unlistableFS{Filesystem: osfs.New(repo.Root()), dir: "/" + rel})
}
