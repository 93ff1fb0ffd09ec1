package repository

import (
	"fmt"

	"github.com/KostasZigo/kvcs/internal/errs"
)

// MergeResult reports the outcome of Merge. UpToDate means nothing was written
// and Commit is nil.
type MergeResult struct {
	Branch   string
	Into     string
	UpToDate bool
	Commit   *CommitResult
}

// Merge overwrites the working tree with the files of branch, stages the whole
// working tree and commits it on the current branch. There is no content merge
// and the new commit records only the current head as its parent.
func (r *Repository) Merge(branch string, noFF bool) (*MergeResult, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}

	if branch == cfg.CurrentBranch {
		return nil, errs.New(errs.CodeInvalidArgument, "cannot merge branch '%s' into itself", branch)
	}
	target := cfg.Branches[branch]
	if target == "" {
		return nil, errs.New(errs.CodeRefNotFound, "branch '%s' not found or has no commits", branch)
	}
	current := cfg.Head()
	if current == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "current branch '%s' has no commits", cfg.CurrentBranch)
	}

	result := &MergeResult{Branch: branch, Into: cfg.CurrentBranch}
	if target == current {
		result.UpToDate = true
		return result, nil
	}

	_, tree, err := r.treeOf(target)
	if err != nil {
		return nil, err
	}
	if err := r.worktree.Restore(tree, r.store); err != nil {
		return nil, fmt.Errorf("failed to apply branch '%s': %w", branch, err)
	}

	idx, err := r.stageAll()
	if err != nil {
		return nil, err
	}
	if err := r.saveIndex(idx); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Merge branch '%s'", branch)
	if noFF {
		message += " (no-ff)"
	}
	result.Commit, err = r.Commit(message)
	if err != nil {
		return nil, err
	}
	return result, nil
}
