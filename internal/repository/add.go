package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/KostasZigo/kvcs/internal/worktree"
)

// AddResult lists the paths staged by Add and the pathspecs that matched nothing.
type AddResult struct {
	Staged    []string
	Unmatched []string
}

// Add stages files matching the repository-relative pathspecs. A pathspec names
// a file, a directory (recursed, "." for everything), or otherwise a pattern:
// glob syntax when it contains any of "*?[{", a substring of the path if not.
func (r *Repository) Add(pathspecs ...string) (*AddResult, error) {
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}

	result := &AddResult{}
	for _, spec := range pathspecs {
		paths, err := r.expandPathspec(spec)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			slog.Warn("Pathspec did not match any files", "pathspec", spec)
			result.Unmatched = append(result.Unmatched, spec)
			continue
		}
		for _, p := range paths {
			if err := r.stageFile(idx, p); err != nil {
				return nil, err
			}
			result.Staged = append(result.Staged, p)
		}
	}

	if err := r.saveIndex(idx); err != nil {
		return nil, err
	}
	return result, nil
}

// RelativePathspec rewrites spec, given relative to dir, as a repository-relative pathspec.
func (r *Repository) RelativePathspec(dir, spec string) (string, error) {
	if filepath.IsAbs(spec) {
		dir, spec = spec, "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	rel, err := filepath.Rel(r.root, absDir)
	if err != nil {
		return "", errs.Wrap(err, errs.CodeInvalidArgument, "pathspec '%s' is outside the repository", spec)
	}
	return path.Join(filepath.ToSlash(rel), filepath.ToSlash(spec)), nil
}

// cleanPathspec normalizes spec to a slash-separated repository-relative path.
func cleanPathspec(spec string) (string, error) {
	p := path.Clean(strings.TrimPrefix(filepath.ToSlash(spec), "/"))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", errs.New(errs.CodeInvalidArgument, "pathspec '%s' is outside the repository", spec)
	}
	if worktree.IsMetadataPath(p) {
		return "", errs.New(errs.CodeInvalidArgument, "cannot add metadata path '%s'", spec)
	}
	return p, nil
}

func (r *Repository) expandPathspec(spec string) ([]string, error) {
	p, err := cleanPathspec(spec)
	if err != nil {
		return nil, err
	}

	if p == "." {
		return r.worktree.Files("")
	}

	info, err := r.worktree.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return r.worktree.Files(p)
	case err == nil && info.Mode().IsRegular():
		return []string{p}, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}

	return r.matchPattern(p)
}

func (r *Repository) matchPattern(pattern string) ([]string, error) {
	match := func(name string) bool { return strings.Contains(name, pattern) }
	if strings.ContainsAny(pattern, "*?[{") {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errs.Wrap(err, errs.CodeInvalidArgument, "invalid pattern '%s'", pattern)
		}
		match = g.Match
	}

	files, err := r.worktree.Files("")
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, f := range files {
		if match(f) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// stageFile stores the current content of p and records it in idx.
func (r *Repository) stageFile(idx *index.Index, p string) error {
	content, err := r.worktree.ReadFile(p)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", p, err)
	}
	hash, err := r.store.Put(content)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", p, err)
	}
	idx.Add(p, hash, r.worktree.Mode(p))
	return nil
}

// stageAll replaces the index with every file of the working tree.
func (r *Repository) stageAll() (*index.Index, error) {
	files, err := r.worktree.Files("")
	if err != nil {
		return nil, err
	}
	idx := index.New()
	for _, f := range files {
		if err := r.stageFile(idx, f); err != nil {
			return nil, err
		}
	}
	return idx, nil
}
