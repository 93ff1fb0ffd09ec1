package repository

import (
	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
)

// ResetOptions selects the reset mode and target. With neither Hard nor Soft
// the reset is mixed. An empty Commit means the current head.
type ResetOptions struct {
	Hard   bool
	Soft   bool
	Commit string
}

// Reset moves the current branch to the target commit. Soft leaves the index
// and working tree alone, mixed rewrites the index, hard also rewrites the
// working tree. It returns the resolved target hash.
func (r *Repository) Reset(opts ResetOptions) (string, error) {
	if opts.Hard && opts.Soft {
		return "", errs.New(errs.CodeInvalidArgument, "cannot use both --hard and --soft")
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return "", err
	}

	target := cfg.Head()
	switch {
	case opts.Commit != "":
		if len(opts.Commit) < constants.MinPrefixLength {
			return "", errs.New(errs.CodeCommitNotFound, "commit '%s' not found", opts.Commit)
		}
		target, err = r.resolveCommitPrefix(opts.Commit)
		if err != nil {
			return "", err
		}
	case target == "":
		return "", errs.New(errs.CodeCommitNotFound, "no commits to reset to")
	}

	_, tree, err := r.treeOf(target)
	if err != nil {
		return "", err
	}

	cfg.SetHead(target)
	if err := r.saveConfig(cfg); err != nil {
		return "", err
	}

	if opts.Soft {
		return target, nil
	}

	if opts.Hard {
		if err := r.worktree.Clear(); err != nil {
			return "", err
		}
		if err := r.worktree.Restore(tree, r.store); err != nil {
			return "", err
		}
	}

	if err := r.saveIndex(indexFromTree(tree)); err != nil {
		return "", err
	}
	return target, nil
}
