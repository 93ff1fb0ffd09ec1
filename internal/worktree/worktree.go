// Package worktree reads and rewrites the files of a repository's working
// directory. It never touches the metadata directory.
package worktree

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/objects"
)

// BlobReader loads blob content by hash.
type BlobReader interface {
	Get(hash string) ([]byte, error)
}

// Worktree is the working directory of a repository.
type Worktree struct {
	fs billy.Filesystem
}

// New opens the working directory rooted at root on the local filesystem.
func New(root string) *Worktree {
	return &Worktree{fs: osfs.New(root)}
}

// NewWithFS wraps an existing filesystem whose root is the repository root.
func NewWithFS(bfs billy.Filesystem) *Worktree {
	return &Worktree{fs: bfs}
}

// Filesystem exposes the underlying billy filesystem.
func (w *Worktree) Filesystem() billy.Filesystem {
	return w.fs
}

// IsMetadataPath reports whether the repository-relative path lies in the metadata directory.
func IsMetadataPath(rel string) bool {
	rel = path.Clean(strings.TrimPrefix(filepath.ToSlash(rel), "/"))
	return rel == constants.Kvcs || strings.HasPrefix(rel, constants.Kvcs+"/")
}

// toRelative converts a walk path ("/dir/a.txt") into a repository-relative path ("dir/a.txt").
func toRelative(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), "/")
}

func toFSPath(rel string) string {
	return "/" + strings.TrimPrefix(rel, "/")
}

// walk visits every entry below dir except dir itself and the metadata directory.
func (w *Worktree) walk(dir string, fn func(rel string, info os.FileInfo) error) error {
	start := toFSPath(dir)
	return util.Walk(w.fs, start, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := toRelative(p)
		if rel == "" || filepath.ToSlash(p) == start {
			return nil
		}
		if IsMetadataPath(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(rel, info)
	})
}

// Files returns every regular file under dir ("" or "." for the whole tree),
// as sorted repository-relative paths.
func (w *Worktree) Files(dir string) ([]string, error) {
	if dir == "." {
		dir = ""
	}
	var files []string
	err := w.walk(dir, func(rel string, info os.FileInfo) error {
		if info.Mode().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list working tree: %w", err)
	}
	slices.Sort(files)
	return files, nil
}

// Stat returns file information for a repository-relative path.
func (w *Worktree) Stat(rel string) (os.FileInfo, error) {
	return w.fs.Stat(toFSPath(rel))
}

// ReadFile returns the content of a repository-relative file.
func (w *Worktree) ReadFile(rel string) ([]byte, error) {
	return util.ReadFile(w.fs, toFSPath(rel))
}

// Mode returns the octal permission string recorded for a file.
func (w *Worktree) Mode(rel string) string {
	info, err := w.fs.Stat(toFSPath(rel))
	if err != nil {
		return constants.DefaultFileMode
	}
	return strconv.FormatUint(uint64(info.Mode().Perm()), 8)
}

// Clear deletes every file and directory except the metadata directory.
// A failure to list the tree is returned before anything is deleted.
// Individual removal failures are logged and skipped, so a file that cannot
// be removed survives.
func (w *Worktree) Clear() error {
	var files, dirs []string
	err := w.walk("", func(rel string, info os.FileInfo) error {
		if info.IsDir() {
			dirs = append(dirs, rel)
		} else {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to list working tree: %w", err)
	}

	for _, file := range files {
		if err := w.fs.Remove(toFSPath(file)); err != nil {
			slog.Debug("Failed to remove file", "path", file, "error", err)
		}
	}

	// deepest first
	slices.Sort(dirs)
	slices.Reverse(dirs)
	for _, dir := range dirs {
		if err := w.fs.Remove(toFSPath(dir)); err != nil {
			slog.Debug("Failed to remove directory", "path", dir, "error", err)
		}
	}
	return nil
}

// Restore writes every file entry of tree into the working directory,
// creating parent directories as needed. Files absent from tree are left alone.
func (w *Worktree) Restore(tree *objects.Tree, blobs BlobReader) error {
	for _, entry := range tree.Entries() {
		if !entry.IsFile {
			continue
		}
		if IsMetadataPath(entry.Path) {
			return fmt.Errorf("refusing to restore %s into the metadata directory", entry.Path)
		}

		content, err := blobs.Get(entry.BlobHash)
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", entry.Path, err)
		}

		target := toFSPath(entry.Path)
		if err := w.fs.MkdirAll(path.Dir(target), constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", entry.Path, err)
		}
		if err := util.WriteFile(w.fs, target, content, parseMode(entry.Mode)); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.Path, err)
		}
	}
	return nil
}

// parseMode converts a recorded octal permission string, falling back to the default file mode.
func parseMode(mode string) fs.FileMode {
	perm, err := strconv.ParseUint(mode, 8, 32)
	if err != nil || perm == 0 || perm > 0o777 {
		return constants.FilePerms
	}
	return fs.FileMode(perm)
}
