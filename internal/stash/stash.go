// Package stash persists saved index snapshots, most recent first.
package stash

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/KostasZigo/kvcs/utils"
)

// Entry is one saved index snapshot with the branch context it was taken on.
type Entry struct {
	ID         string       `yaml:"id"`
	Message    string       `yaml:"message"`
	Branch     string       `yaml:"branch"`
	CommitHash string       `yaml:"commit_hash"`
	Index      *index.Index `yaml:"index"`
	Timestamp  time.Time    `yaml:"timestamp"`
}

func NewEntry(message, branch, commitHash string, idx *index.Index, timestamp time.Time) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Message:    message,
		Branch:     branch,
		CommitHash: commitHash,
		Index:      idx.Clone(),
		Timestamp:  timestamp.UTC(),
	}
}

// Stash is the ordered entry list; position 0 is the most recent push.
type Stash struct {
	Entries []Entry `yaml:"entries"`
}

func (s *Stash) Len() int {
	return len(s.Entries)
}

// Push prepends entry.
func (s *Stash) Push(entry Entry) {
	s.Entries = append([]Entry{entry}, s.Entries...)
}

// Pop removes and returns the most recent entry.
func (s *Stash) Pop() (Entry, error) {
	if len(s.Entries) == 0 {
		return Entry{}, errs.New(errs.CodeEmptyStash, "no stash entries found")
	}
	entry := s.Entries[0]
	s.Entries = s.Entries[1:]
	return entry, nil
}

// Get returns the entry at i, counting from the most recent.
func (s *Stash) Get(i int) (Entry, error) {
	if i < 0 || i >= len(s.Entries) {
		return Entry{}, errs.New(errs.CodeInvalidStashIndex, "invalid stash index %d", i)
	}
	return s.Entries[i], nil
}

// MinIDPrefixLength is the shortest entry ID prefix Resolve accepts.
const MinIDPrefixLength = 8

// Resolve returns the position named by ref, which is either a position
// counted from the most recent entry or an entry ID. An ID may be shortened
// to a unique prefix of at least MinIDPrefixLength characters.
func (s *Stash) Resolve(ref string) (int, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if _, err := s.Get(i); err != nil {
			return 0, err
		}
		return i, nil
	}

	if len(ref) < MinIDPrefixLength {
		return 0, errs.New(errs.CodeInvalidStashIndex, "invalid stash reference %q", ref)
	}
	if _, err := uuid.Parse(ref); err == nil {
		ref = strings.ToLower(ref)
	}

	found := -1
	for i, entry := range s.Entries {
		if !strings.HasPrefix(entry.ID, ref) {
			continue
		}
		if found >= 0 {
			return 0, errs.New(errs.CodeAmbiguous, "stash reference %q matches more than one entry", ref)
		}
		found = i
	}
	if found < 0 {
		return 0, errs.New(errs.CodeInvalidStashIndex, "no stash entry with id %q", ref)
	}
	return found, nil
}

// Drop removes and returns the entry at i.
func (s *Stash) Drop(i int) (Entry, error) {
	entry, err := s.Get(i)
	if err != nil {
		return Entry{}, err
	}
	s.Entries = append(s.Entries[:i:i], s.Entries[i+1:]...)
	return entry, nil
}

// Load reads the stash file at path. A missing or blank file is an empty stash.
func Load(path string) (*Stash, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Stash{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stash: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Stash{}, nil
	}

	var s Stash
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errs.Wrap(err, errs.CodeCorruptState, "stash file %s is unreadable", path)
	}
	for i := range s.Entries {
		if s.Entries[i].Index == nil {
			s.Entries[i].Index = index.New()
		}
		if s.Entries[i].Index.Files == nil {
			s.Entries[i].Index.Files = make(map[string]index.Entry)
		}
	}
	return &s, nil
}

// Save replaces the stash file at path atomically.
func Save(path string, s *Stash) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("write stash: marshal: %w", err)
	}
	return utils.WriteFileAtomic(path, data, constants.FilePerms)
}
