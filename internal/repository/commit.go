package repository

import (
	"fmt"
	"strings"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/KostasZigo/kvcs/internal/objects"
	"github.com/KostasZigo/kvcs/utils"
)

// CommitResult describes a newly created commit.
type CommitResult struct {
	Hash      string
	ShortHash string
	Branch    string
	Message   string
	Files     int
}

// Commit snapshots the index as a new commit on the current branch and clears the index.
func (r *Repository) Commit(message string) (*CommitResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "commit message must not be empty")
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if idx.IsEmpty() {
		return nil, errs.New(errs.CodeNoChanges, "nothing to commit")
	}

	entries := make([]objects.TreeEntry, 0, idx.Len())
	for _, p := range idx.Paths() {
		entry, _ := idx.Get(p)
		entries = append(entries, objects.NewFileEntry(p, entry.Hash, entry.Mode))
	}
	tree, err := objects.NewTree(entries)
	if err != nil {
		return nil, err
	}
	if err := r.store.WriteTree(tree); err != nil {
		return nil, fmt.Errorf("failed to store tree: %w", err)
	}

	author := objects.Author{Name: cfg.UserName, Email: cfg.UserEmail}
	commit, err := objects.NewCommit(tree.Hash(), cfg.Head(), message, author, r.now())
	if err != nil {
		return nil, err
	}
	if err := r.store.WriteCommit(commit); err != nil {
		return nil, fmt.Errorf("failed to store commit: %w", err)
	}

	cfg.SetHead(commit.Hash())
	if err := r.saveConfig(cfg); err != nil {
		return nil, err
	}
	if err := r.saveIndex(index.New()); err != nil {
		return nil, err
	}

	return &CommitResult{
		Hash:      commit.Hash(),
		ShortHash: utils.ShortHash(commit.Hash(), constants.ShortHashLength),
		Branch:    cfg.CurrentBranch,
		Message:   message,
		Files:     tree.Len(),
	}, nil
}

// Log returns the commits reachable from the current head, newest first.
func (r *Repository) Log() ([]*objects.Commit, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	return r.history(cfg.Head())
}

func (r *Repository) history(head string) ([]*objects.Commit, error) {
	var commits []*objects.Commit
	for hash := head; hash != ""; {
		commit, err := r.store.ReadCommit(hash)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
		hash = commit.ParentHash()
	}
	return commits, nil
}
