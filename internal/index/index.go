// Package index persists the staging area: a total snapshot mapping
// repository-relative paths to stored blobs.
package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/utils"
)

// Entry records the staged blob for one path.
// Stage is reserved for conflict representation and is always 0.
type Entry struct {
	Hash  string `json:"hash" yaml:"hash"`
	Mode  string `json:"mode" yaml:"mode"`
	Stage uint8  `json:"stage" yaml:"stage"`
}

// Index is the staging area.
type Index struct {
	Files map[string]Entry `json:"files" yaml:"files"`
}

func New() *Index {
	return &Index{Files: make(map[string]Entry)}
}

// Add records or overwrites the entry for path.
func (idx *Index) Add(path, hash, mode string) {
	idx.Files[path] = Entry{Hash: hash, Mode: mode}
}

func (idx *Index) Get(path string) (Entry, bool) {
	entry, ok := idx.Files[path]
	return entry, ok
}

func (idx *Index) Len() int {
	return len(idx.Files)
}

func (idx *Index) IsEmpty() bool {
	return len(idx.Files) == 0
}

// Paths returns the staged paths in lexical order.
func (idx *Index) Paths() []string {
	return slices.Sorted(maps.Keys(idx.Files))
}

// Clone returns an independent copy.
func (idx *Index) Clone() *Index {
	return &Index{Files: maps.Clone(idx.Files)}
}

// Load reads the index file at path. A missing or blank file is an empty index;
// a file that cannot be parsed is reported as corrupt.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	idx := New()
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, errs.Wrap(err, errs.CodeCorruptState, "index file %s is unreadable", path)
	}
	if idx.Files == nil {
		idx.Files = make(map[string]Entry)
	}
	return idx, nil
}

// Save replaces the index file at path atomically.
func Save(path string, idx *Index) error {
	if idx == nil || idx.Files == nil {
		idx = New()
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("write index: marshal: %w", err)
	}
	return utils.WriteFileAtomic(path, data, constants.FilePerms)
}
