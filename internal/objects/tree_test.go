package objects

import (
	"testing"

	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/utils"
)

func TestNewFileEntry(t *testing.T) {
	entry := NewFileEntry("docs/readme.md", "abc123", "644")

	if !entry.IsFile {
		t.Error("Expected file entry")
	}
	if entry.Path != "docs/readme.md" || entry.BlobHash != "abc123" || entry.Mode != "644" {
		t.Errorf("Unexpected entry %+v", entry)
	}
}

func TestNewTree_EmptyTree(t *testing.T) {
	tree := createTree(t, []TreeEntry{})

	if string(tree.Content()) != "[]" {
		t.Errorf("Expected empty tree content [], got %s", tree.Content())
	}
	if tree.Hash() != utils.ComputeHash([]byte("[]")) {
		t.Errorf("Unexpected empty tree hash %s", tree.Hash())
	}
}

func TestNewTree_SortsEntries(t *testing.T) {
	entries := []TreeEntry{
		NewFileEntry("z.txt", "hash1", "644"),
		NewFileEntry("a.txt", "hash2", "644"),
		NewFileEntry("dir/m.txt", "hash3", "755"),
	}

	tree := createTree(t, entries)

	expected := []string{"a.txt", "dir/m.txt", "z.txt"}
	for i, entry := range tree.Entries() {
		if entry.Path != expected[i] {
			t.Errorf("Entry %d: expected %s, got %s", i, expected[i], entry.Path)
		}
	}
}

// TestNewTree_OrderIndependentHash verifies the same file set always hashes identically.
func TestNewTree_OrderIndependentHash(t *testing.T) {
	a := NewFileEntry("a.txt", "hash1", "644")
	b := NewFileEntry("b.txt", "hash2", "644")

	first := createTree(t, []TreeEntry{a, b})
	second := createTree(t, []TreeEntry{b, a})

	if first.Hash() != second.Hash() {
		t.Errorf("Expected identical hashes, got %s and %s", first.Hash(), second.Hash())
	}
}

func TestNewTree_DuplicatePath(t *testing.T) {
	_, err := NewTree([]TreeEntry{
		NewFileEntry("a.txt", "hash1", "644"),
		NewFileEntry("a.txt", "hash2", "644"),
	})

	if !errs.Is(err, errs.CodeInvalidArgument) {
		t.Fatalf("Expected invalid argument error, got %v", err)
	}
}

func TestNewTree_DoesNotAliasInput(t *testing.T) {
	entries := []TreeEntry{NewFileEntry("a.txt", "hash1", "644")}
	tree := createTree(t, entries)

	entries[0].Path = "changed.txt"

	if tree.Entries()[0].Path != "a.txt" {
		t.Error("Tree entries should be a copy of the input")
	}
}

func TestParseTree_RoundTrip(t *testing.T) {
	tree := createTree(t, []TreeEntry{
		NewFileEntry("src/main.go", "hash1", "644"),
		NewFileEntry("run.sh", "hash2", "755"),
	})

	parsed, err := ParseTree(tree.Content())
	if err != nil {
		t.Fatalf("Failed to parse tree: %v", err)
	}

	if parsed.Hash() != tree.Hash() {
		t.Errorf("Hash mismatch: expected %s, got %s", tree.Hash(), parsed.Hash())
	}
	entry, ok := parsed.FindEntry("run.sh")
	if !ok {
		t.Fatal("Expected run.sh entry")
	}
	if entry.Mode != "755" || entry.BlobHash != "hash2" {
		t.Errorf("Unexpected entry %+v", entry)
	}
}

func TestParseTree_Corrupt(t *testing.T) {
	_, err := ParseTree([]byte("{not a tree"))

	if !errs.Is(err, errs.CodeCorruptState) {
		t.Fatalf("Expected corrupt state error, got %v", err)
	}
}

func TestTree_FindEntry_Missing(t *testing.T) {
	tree := createTree(t, []TreeEntry{NewFileEntry("a.txt", "hash1", "644")})

	if _, ok := tree.FindEntry("b.txt"); ok {
		t.Error("Expected missing entry")
	}
}
