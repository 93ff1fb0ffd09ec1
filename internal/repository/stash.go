package repository

import (
	"fmt"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/KostasZigo/kvcs/internal/stash"
	"github.com/KostasZigo/kvcs/utils"
)

// StashPush saves the index as the newest stash entry and clears it.
// An empty message is replaced by "WIP on <branch>: <short head>".
// Working-tree files are not saved.
func (r *Repository) StashPush(message string) (*stash.Entry, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if idx.IsEmpty() {
		return nil, errs.New(errs.CodeNoChanges, "no changes to stash")
	}
	s, err := r.loadStash()
	if err != nil {
		return nil, err
	}

	head := cfg.Head()
	if message == "" {
		base := "initial commit"
		if head != "" {
			base = utils.ShortHash(head, constants.ShortHashLength)
		}
		message = fmt.Sprintf("WIP on %s: %s", cfg.CurrentBranch, base)
	}

	entry := stash.NewEntry(message, cfg.CurrentBranch, head, idx, r.now())
	s.Push(entry)
	if err := r.saveStash(s); err != nil {
		return nil, err
	}
	if err := r.saveIndex(index.New()); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StashPop removes the newest entry and makes its snapshot the index.
// The entry's branch and commit are reported, not checked.
func (r *Repository) StashPop() (*stash.Entry, error) {
	s, err := r.loadStash()
	if err != nil {
		return nil, err
	}
	entry, err := s.Pop()
	if err != nil {
		return nil, err
	}
	if err := r.saveIndex(entry.Index); err != nil {
		return nil, err
	}
	if err := r.saveStash(s); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StashList returns all entries, newest first.
func (r *Repository) StashList() ([]stash.Entry, error) {
	s, err := r.loadStash()
	if err != nil {
		return nil, err
	}
	return s.Entries, nil
}

// StashResolve turns a stash position or entry ID into a position.
func (r *Repository) StashResolve(ref string) (int, error) {
	s, err := r.loadStash()
	if err != nil {
		return 0, err
	}
	return s.Resolve(ref)
}

// StashShow returns entry i, counting from the newest.
func (r *Repository) StashShow(i int) (*stash.Entry, error) {
	s, err := r.loadStash()
	if err != nil {
		return nil, err
	}
	entry, err := s.Get(i)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// StashDrop deletes entry i without touching the index.
func (r *Repository) StashDrop(i int) (*stash.Entry, error) {
	s, err := r.loadStash()
	if err != nil {
		return nil, err
	}
	entry, err := s.Drop(i)
	if err != nil {
		return nil, err
	}
	if err := r.saveStash(s); err != nil {
		return nil, err
	}
	return &entry, nil
}
