package repository

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"
)

// Info summarizes a repository for the info report.
type Info struct {
	Root    string
	KvcsDir string

	CurrentBranch string
	Branches      []Branch

	CommitCount  int
	LatestCommit string
	LatestMsg    string
	LatestAuthor string
	LatestDate   time.Time

	Tracked   int
	Modified  int
	Untracked int
	Staged    int

	Size    int64
	Objects int

	StashCount   int
	LatestStash  string
	UserName     string
	UserEmail    string
	RemotesCount int
}

// Info collects branch, history, file, size, stash and identity statistics.
func (r *Repository) Info() (*Info, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}

	info := &Info{
		Root:          r.root,
		KvcsDir:       r.kvcsDir,
		CurrentBranch: cfg.CurrentBranch,
		UserName:      cfg.UserName,
		UserEmail:     cfg.UserEmail,
		RemotesCount:  len(cfg.Remotes),
		Tracked:       idx.Len(),
		Staged:        idx.Len(),
	}

	if info.Branches, err = r.ListBranches(); err != nil {
		return nil, err
	}

	history, err := r.history(cfg.Head())
	if err != nil {
		return nil, err
	}
	info.CommitCount = len(history)
	if len(history) > 0 {
		latest := history[0]
		info.LatestCommit = latest.Hash()
		info.LatestMsg = latest.Message()
		info.LatestAuthor = latest.Author()
		info.LatestDate = latest.Timestamp()
	}

	status := &Status{}
	if err := r.classify(idx, status); err != nil {
		return nil, err
	}
	info.Modified = len(status.Modified)
	info.Untracked = len(status.Untracked)

	if info.Size, err = dirSize(r.kvcsDir); err != nil {
		return nil, err
	}
	if info.Objects, err = r.store.Count(); err != nil {
		return nil, err
	}

	s, err := r.loadStash()
	if err != nil {
		return nil, err
	}
	info.StashCount = s.Len()
	if s.Len() > 0 {
		info.LatestStash = s.Entries[0].Message
	}
	return info, nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			fi, err := d.Info()
			if err != nil {
				return err
			}
			total += fi.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to measure %s: %w", dir, err)
	}
	return total, nil
}
