package stash

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(message string, files ...string) Entry {
	idx := index.New()
	for _, f := range files {
		idx.Add(f, "hash-"+f, "644")
	}
	return NewEntry(message, "main", "", idx, time.Now())
}

func TestStash_PushPopLIFO(t *testing.T) {
	s := &Stash{}
	s.Push(newTestEntry("first", "a.txt"))
	s.Push(newTestEntry("second", "b.txt"))

	top, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "second", top.Message)

	next, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "first", next.Message)

	_, err = s.Pop()
	assert.True(t, errs.Is(err, errs.CodeEmptyStash), "got %v", err)
}

func TestNewEntry_SnapshotIsIndependent(t *testing.T) {
	idx := index.New()
	idx.Add("a.txt", "h", "644")

	entry := NewEntry("m", "main", "", idx, time.Now())
	idx.Add("b.txt", "h", "644")

	assert.Equal(t, 1, entry.Index.Len())
	assert.NotEmpty(t, entry.ID)
}

func TestStash_GetDrop(t *testing.T) {
	s := &Stash{}
	s.Push(newTestEntry("zero"))
	s.Push(newTestEntry("one"))
	s.Push(newTestEntry("two"))

	entry, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "one", entry.Message)

	dropped, err := s.Drop(1)
	require.NoError(t, err)
	assert.Equal(t, "one", dropped.Message)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "two", s.Entries[0].Message)
	assert.Equal(t, "zero", s.Entries[1].Message)

	for _, i := range []int{-1, 2, 10} {
		_, err := s.Get(i)
		assert.True(t, errs.Is(err, errs.CodeInvalidStashIndex), "index %d: got %v", i, err)
		_, err = s.Drop(i)
		assert.True(t, errs.Is(err, errs.CodeInvalidStashIndex), "index %d: got %v", i, err)
	}
}

func TestStash_Resolve(t *testing.T) {
	s := &Stash{}
	s.Push(newTestEntry("zero"))
	s.Push(newTestEntry("one"))
	s.Entries[0].ID = "11111111-aaaa-4aaa-8aaa-000000000001"
	s.Entries[1].ID = "11111111-bbbb-4bbb-8bbb-000000000002"

	tests := []struct {
		ref  string
		want int
	}{
		{"0", 0},
		{"1", 1},
		{"11111111-bbbb-4bbb-8bbb-000000000002", 1},
		{"11111111-BBBB-4BBB-8BBB-000000000002", 1},
		{"11111111-a", 0},
	}
	for _, tt := range tests {
		got, err := s.Resolve(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}

	_, err := s.Resolve("11111111")
	assert.True(t, errs.Is(err, errs.CodeAmbiguous), "got %v", err)

	for _, ref := range []string{"2", "-1", "x", "1111", "22222222"} {
		_, err := s.Resolve(ref)
		assert.True(t, errs.Is(err, errs.CodeInvalidStashIndex), "%s: got %v", ref, err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stash")
	s := &Stash{}
	s.Push(newTestEntry("older", "a.txt"))
	s.Push(newTestEntry("newer", "b.txt", "dir/c.txt"))

	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "newer", loaded.Entries[0].Message)
	assert.Equal(t, s.Entries[0].Index.Files, loaded.Entries[0].Index.Files)
	assert.Equal(t, s.Entries[1].ID, loaded.Entries[1].ID)
	assert.True(t, s.Entries[0].Timestamp.Equal(loaded.Entries[0].Timestamp))
}

func TestLoad_MissingAndBlank(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(filepath.Join(dir, "stash"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	blank := filepath.Join(dir, "blank")
	require.NoError(t, os.WriteFile(blank, []byte("\n"), 0644))
	s, err = Load(blank)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stash")
	require.NoError(t, os.WriteFile(path, []byte("entries: [unterminated"), 0644))

	_, err := Load(path)

	assert.True(t, errs.Is(err, errs.CodeCorruptState), "got %v", err)
}
