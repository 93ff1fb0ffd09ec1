package repository

import (
	"log/slog"
	"slices"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
)

// Branch is one entry of the branch registry.
type Branch struct {
	Name    string
	Head    string
	Current bool
}

// CreateBranch adds a branch pointing at the current head without switching to it.
func (r *Repository) CreateBranch(name string) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.CreateBranch(name); err != nil {
		return err
	}
	return r.saveConfig(cfg)
}

// ListBranches returns all branches sorted by name.
func (r *Repository) ListBranches() ([]Branch, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	names := cfg.BranchNames()
	branches := make([]Branch, 0, len(names))
	for _, name := range names {
		branches = append(branches, Branch{
			Name:    name,
			Head:    cfg.Branches[name],
			Current: name == cfg.CurrentBranch,
		})
	}
	return branches, nil
}

// CheckoutResult reports where Checkout left the working tree.
// Detached is set when a commit was checked out by hash; no branch moves then.
type CheckoutResult struct {
	Branch   string
	Commit   string
	Detached bool
}

// Checkout switches to the branch named target, or materializes the commit
// whose hash starts with target (at least MinPrefixLength characters).
func (r *Repository) Checkout(target string) (*CheckoutResult, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.HasBranch(target) {
		if err := cfg.Switch(target); err != nil {
			return nil, err
		}
		if err := r.saveConfig(cfg); err != nil {
			return nil, err
		}
		if err := r.writeHead(target); err != nil {
			return nil, err
		}

		head := cfg.Head()
		if head != "" {
			if err := r.materialize(head); err != nil {
				return nil, err
			}
		}
		return &CheckoutResult{Branch: target, Commit: head}, nil
	}

	if len(target) >= constants.MinPrefixLength {
		hash, err := r.resolveCommitPrefix(target)
		if err == nil {
			if err := r.materialize(hash); err != nil {
				return nil, err
			}
			return &CheckoutResult{Commit: hash, Detached: true}, nil
		}
		if !errs.Is(err, errs.CodeCommitNotFound) {
			return nil, err
		}
	}

	return nil, errs.New(errs.CodeRefNotFound, "branch or commit '%s' not found", target)
}

// resolveCommitPrefix returns the first commit, in lexical hash order, whose
// hash starts with prefix. Objects that are not commits are skipped.
func (r *Repository) resolveCommitPrefix(prefix string) (string, error) {
	if len(prefix) > constants.HashStringLength {
		return "", errs.New(errs.CodeCommitNotFound, "commit '%s' not found", prefix)
	}
	candidates, err := r.store.FindByPrefix(prefix)
	if err != nil {
		return "", err
	}
	slices.Sort(candidates)

	var commits []string
	for _, hash := range candidates {
		if _, err := r.store.ReadCommit(hash); err != nil {
			slog.Debug("Skipping non-commit object", "hash", hash, "error", err)
			continue
		}
		commits = append(commits, hash)
	}

	if len(commits) == 0 {
		return "", errs.New(errs.CodeCommitNotFound, "commit '%s' not found", prefix)
	}
	if len(commits) > 1 {
		slog.Warn("Ambiguous commit prefix, using the first match",
			"prefix", prefix,
			"matches", len(commits),
			"using", commits[0])
	}
	return commits[0], nil
}
