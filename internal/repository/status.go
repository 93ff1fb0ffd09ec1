package repository

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/KostasZigo/kvcs/utils"
)

// Status classifies working-tree files against the index.
type Status struct {
	Branch      string
	Head        string
	HeadMessage string

	// Staged files match their index entry; Modified files differ from it.
	Staged    []string
	Modified  []string
	Deleted   []string
	Untracked []string
}

// IsClean reports whether there is nothing staged, changed or untracked.
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0 && len(s.Untracked) == 0
}

// Status reports the current branch and the state of every file.
func (r *Repository) Status() (*Status, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}

	status := &Status{Branch: cfg.CurrentBranch, Head: cfg.Head()}
	if status.Head != "" {
		commit, err := r.store.ReadCommit(status.Head)
		if err != nil {
			return nil, err
		}
		status.HeadMessage = commit.Message()
	}

	if err := r.classify(idx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (r *Repository) classify(idx *index.Index, status *Status) error {
	for _, p := range idx.Paths() {
		entry, _ := idx.Get(p)
		content, err := r.worktree.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			status.Deleted = append(status.Deleted, p)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if utils.ComputeHash(content) == entry.Hash {
			status.Staged = append(status.Staged, p)
		} else {
			status.Modified = append(status.Modified, p)
		}
	}

	files, err := r.worktree.Files("")
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, ok := idx.Get(f); !ok {
			status.Untracked = append(status.Untracked, f)
		}
	}
	return nil
}
