package repository

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/KostasZigo/kvcs/internal/diff"
	"github.com/KostasZigo/kvcs/internal/objects"
)

// DiffWorking compares staged content with the working tree for the given
// paths, or for every staged path when none are given. Paths that are not
// staged or no longer exist in the working tree are skipped; other read
// failures are returned.
func (r *Repository) DiffWorking(paths ...string) ([]diff.File, error) {
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = idx.Paths()
	}

	var files []diff.File
	for _, p := range paths {
		entry, ok := idx.Get(p)
		if !ok {
			continue
		}
		current, err := r.worktree.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		staged, err := r.store.Get(entry.Hash)
		if err != nil {
			return nil, err
		}
		if string(current) == string(staged) {
			continue
		}
		files = append(files, diff.File{Path: p, Edits: diff.Text(string(staged), string(current))})
	}
	return files, nil
}

// DiffStaged compares the head commit's tree with the index. Staged paths
// missing from the head tree are reported as new files; without a head commit
// every staged path is new.
func (r *Repository) DiffStaged(paths ...string) ([]diff.File, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = idx.Paths()
	}

	var headTree *objects.Tree
	if head := cfg.Head(); head != "" {
		if _, headTree, err = r.treeOf(head); err != nil {
			return nil, err
		}
	}

	var files []diff.File
	for _, p := range paths {
		entry, ok := idx.Get(p)
		if !ok {
			continue
		}
		staged, err := r.store.Get(entry.Hash)
		if err != nil {
			return nil, err
		}

		var committed *objects.TreeEntry
		if headTree != nil {
			committed, _ = headTree.FindEntry(p)
		}
		if committed == nil {
			files = append(files, diff.File{
				Path:    p,
				NewFile: true,
				Mode:    entry.Mode,
				Edits:   diff.Text("", string(staged)),
			})
			continue
		}

		if committed.BlobHash == entry.Hash {
			continue
		}
		old, err := r.store.Get(committed.BlobHash)
		if err != nil {
			return nil, err
		}
		files = append(files, diff.File{Path: p, Edits: diff.Text(string(old), string(staged))})
	}
	return files, nil
}
