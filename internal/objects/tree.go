package objects

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/utils"
)

// TreeEntry maps one repository-relative path to the blob holding its content.
type TreeEntry struct {
	Path     string `json:"path"`
	BlobHash string `json:"blob_hash"`
	IsFile   bool   `json:"is_file"`
	Mode     string `json:"mode"`
}

func NewFileEntry(path, blobHash, mode string) TreeEntry {
	return TreeEntry{
		Path:     path,
		BlobHash: blobHash,
		IsFile:   true,
		Mode:     mode,
	}
}

// Tree is the flat list of files recorded by a commit.
// Paths are full forward-slash relative paths; there are no nested subtrees.
type Tree struct {
	entries []TreeEntry
	content []byte
	hash    string
}

// NewTree builds a tree from entries. Entries are sorted by path so the same
// file set always yields the same tree hash.
func NewTree(treeEntries []TreeEntry) (*Tree, error) {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	slices.SortStableFunc(entries, func(a, b TreeEntry) int {
		return strings.Compare(a.Path, b.Path)
	})

	for i, entry := range entries {
		if entry.Path == "" {
			return nil, errs.New(errs.CodeInvalidArgument, "tree entry with empty path")
		}
		if i > 0 && entries[i-1].Path == entry.Path {
			return nil, errs.New(errs.CodeInvalidArgument, "duplicate tree entry %q", entry.Path)
		}
	}

	content, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tree: %w", err)
	}

	return &Tree{
		entries: entries,
		content: content,
		hash:    utils.ComputeHash(content),
	}, nil
}

// ParseTree decodes stored tree content.
func ParseTree(content []byte) (*Tree, error) {
	var entries []TreeEntry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, errs.Wrap(err, errs.CodeCorruptState, "invalid tree object")
	}
	return &Tree{
		entries: entries,
		content: content,
		hash:    utils.ComputeHash(content),
	}, nil
}

// Hash returns the SHA-256 of the serialized tree
func (t *Tree) Hash() string {
	return t.hash
}

// Entries returns all tree entries
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Content returns the serialized tree
func (t *Tree) Content() []byte {
	return t.content
}

func (t *Tree) Len() int {
	return len(t.entries)
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree{hash: %s, entries: %d}", t.hash, len(t.entries))
}

// FindEntry finds an entry by path
func (t *Tree) FindEntry(path string) (*TreeEntry, bool) {
	for i := range t.entries {
		if t.entries[i].Path == path {
			return &t.entries[i], true
		}
	}
	return nil, false
}
