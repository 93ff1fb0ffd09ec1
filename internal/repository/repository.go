// Package repository implements the kvcs operations on top of the object
// store, index, branch registry, stash and working tree.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/KostasZigo/kvcs/internal/objects"
	"github.com/KostasZigo/kvcs/internal/refs"
	"github.com/KostasZigo/kvcs/internal/stash"
	"github.com/KostasZigo/kvcs/internal/worktree"
)

// Repository is an opened kvcs repository.
type Repository struct {
	root     string
	kvcsDir  string
	store    *objects.ObjectStore
	worktree *worktree.Worktree

	// now stamps commits and stash entries
	now func() time.Time
}

func newRepository(root string) *Repository {
	return &Repository{
		root:     root,
		kvcsDir:  filepath.Join(root, constants.Kvcs),
		store:    objects.NewObjectStore(root),
		worktree: worktree.New(root),
		now:      time.Now,
	}
}

// Root returns the absolute repository root.
func (r *Repository) Root() string {
	return r.root
}

// KvcsDir returns the absolute path of the metadata directory.
func (r *Repository) KvcsDir() string {
	return r.kvcsDir
}

// Store returns the repository's object store.
func (r *Repository) Store() *objects.ObjectStore {
	return r.store
}

// InitRepository creates the metadata directory in path and returns the opened repository.
func InitRepository(path string) (*Repository, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	kvcsDir := filepath.Join(root, constants.Kvcs)

	if err := checkRepositoryDoesNotExist(kvcsDir); err != nil {
		return nil, err
	}

	// Remove partially created metadata unless every step succeeded
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(kvcsDir)
		}
	}()

	directories := []string{
		kvcsDir,
		filepath.Join(kvcsDir, constants.Objects),
		filepath.Join(kvcsDir, constants.Refs),
		filepath.Join(kvcsDir, constants.Refs, constants.Heads),
		filepath.Join(kvcsDir, constants.Refs, constants.Tags),
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	repo := newRepository(root)
	if err := repo.writeHead(constants.DefaultBranch); err != nil {
		return nil, err
	}
	if err := repo.saveConfig(refs.Default()); err != nil {
		return nil, fmt.Errorf("failed to create config file: %w", err)
	}

	initSuccess = true
	return repo, nil
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return errs.New(errs.CodeAlreadyExists, "repository already exists at %s", path)
}

// Removes the entire .kvcs directory if it exists
func cleanupRepository(kvcsDir string) {
	if _, err := os.Stat(kvcsDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", kvcsDir)

		if err := os.RemoveAll(kvcsDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", kvcsDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", kvcsDir)
		}
	}
}

// Open locates the repository containing path by walking up the directory tree.
func Open(path string) (*Repository, error) {
	root, err := FindRoot(path)
	if err != nil {
		return nil, err
	}
	return newRepository(root), nil
}

// FindRoot returns the closest ancestor of path (path included) holding a .kvcs directory.
func FindRoot(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	for {
		kvcsPath := filepath.Join(dir, constants.Kvcs)
		if info, err := os.Stat(kvcsPath); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.New(errs.CodeNotInitialized, "not a kvcs repository (or any of the parent directories): %s", constants.Kvcs)
		}
		dir = parent
	}
}

func (r *Repository) metadataPath(name string) string {
	return filepath.Join(r.kvcsDir, name)
}

func (r *Repository) loadConfig() (*refs.Config, error) {
	return refs.Load(r.metadataPath(constants.Config))
}

func (r *Repository) saveConfig(cfg *refs.Config) error {
	return refs.Save(r.metadataPath(constants.Config), cfg)
}

func (r *Repository) loadIndex() (*index.Index, error) {
	return index.Load(r.metadataPath(constants.Index))
}

func (r *Repository) saveIndex(idx *index.Index) error {
	return index.Save(r.metadataPath(constants.Index), idx)
}

func (r *Repository) loadStash() (*stash.Stash, error) {
	return stash.Load(r.metadataPath(constants.Stash))
}

func (r *Repository) saveStash(s *stash.Stash) error {
	return stash.Save(r.metadataPath(constants.Stash), s)
}

// writeHead records branch as the symbolic ref in HEAD.
func (r *Repository) writeHead(branch string) error {
	content := constants.DefaultRefPrefix + branch + "\n"
	if err := os.WriteFile(r.metadataPath(constants.Head), []byte(content), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write HEAD file: %w", err)
	}
	return nil
}

// treeOf loads the tree of the commit stored under hash.
func (r *Repository) treeOf(commitHash string) (*objects.Commit, *objects.Tree, error) {
	commit, err := r.store.ReadCommit(commitHash)
	if err != nil {
		return nil, nil, err
	}
	tree, err := r.store.ReadTree(commit.TreeHash())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tree of commit %s: %w", commitHash, err)
	}
	return commit, tree, nil
}

// materialize replaces the working tree with the tree of commitHash.
func (r *Repository) materialize(commitHash string) error {
	_, tree, err := r.treeOf(commitHash)
	if err != nil {
		return err
	}
	if err := r.worktree.Clear(); err != nil {
		return err
	}
	return r.worktree.Restore(tree, r.store)
}

// indexFromTree builds an index matching every file entry of tree.
func indexFromTree(tree *objects.Tree) *index.Index {
	idx := index.New()
	for _, entry := range tree.Entries() {
		if entry.IsFile {
			idx.Add(entry.Path, entry.BlobHash, entry.Mode)
		}
	}
	return idx
}
