package objects

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/utils"
)

var objectsRelativeFilePath string = filepath.Join(constants.Kvcs, constants.Objects)

// ObjectStore manages the content-addressed objects of a repository
type ObjectStore struct {
	repoPath string // Path to repository root
}

func NewObjectStore(repoPath string) *ObjectStore {
	return &ObjectStore{
		repoPath: repoPath,
	}
}

// objectPath returns .kvcs/objects/<first 2 chars>/<rest> for hash.
func (store *ObjectStore) objectPath(hash string) (string, error) {
	if len(hash) < constants.HashDirPrefixLength {
		return "", errs.New(errs.CodeInvalidArgument, "invalid hash %q: too short to shard", hash)
	}
	prefix := hash[:constants.HashDirPrefixLength]
	return filepath.Join(store.repoPath, objectsRelativeFilePath, prefix, hash[constants.HashDirPrefixLength:]), nil
}

// Put stores content under its digest and returns the digest.
// Storing identical content again is a no-op.
func (store *ObjectStore) Put(content []byte) (string, error) {
	hash := utils.ComputeHash(content)
	if err := store.write(hash, content); err != nil {
		return "", err
	}
	return hash, nil
}

// Store saves obj under obj.Hash().
func (store *ObjectStore) Store(obj Object) error {
	return store.write(obj.Hash(), obj.Content())
}

func (store *ObjectStore) write(hash string, content []byte) error {
	objectFile, err := store.objectPath(hash)
	if err != nil {
		return err
	}

	// Objects are immutable; an existing file already holds these bytes
	_, err = os.Stat(objectFile)
	if err == nil {
		slog.Debug("Object with this hash already exists",
			"hash", hash)
		return nil
	}
	if !(errors.Is(err, fs.ErrNotExist)) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(objectFile), constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	compressedData, err := compressObject(content)
	if err != nil {
		return fmt.Errorf("failed to compress object: %w", err)
	}

	if err := utils.WriteFileAtomic(objectFile, compressedData, constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write object file: %w", err)
	}

	return nil
}

// Get returns the content stored under hash.
func (store *ObjectStore) Get(hash string) ([]byte, error) {
	objectFile, err := store.objectPath(hash)
	if err != nil {
		return nil, err
	}

	compressedData, err := os.ReadFile(objectFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.New(errs.CodeObjectNotFound, "object %s not found", hash)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read object file %s: %w", hash, err)
	}

	content, err := decompressObject(compressedData)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeCorruptState, "failed to decompress object %s", hash)
	}
	return content, nil
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(hash string) bool {
	objectFile, err := store.objectPath(hash)
	if err != nil {
		return false
	}
	_, err = os.Stat(objectFile)
	return err == nil
}

// FindByPrefix lists stored hashes starting with prefix, in directory order.
func (store *ObjectStore) FindByPrefix(prefix string) ([]string, error) {
	if len(prefix) < constants.HashDirPrefixLength {
		return nil, errs.New(errs.CodeInvalidArgument, "invalid hash prefix %q: too short to shard", prefix)
	}
	shard := prefix[:constants.HashDirPrefixLength]

	entries, err := os.ReadDir(filepath.Join(store.repoPath, objectsRelativeFilePath, shard))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan objects/%s: %w", shard, err)
	}

	var matches []string
	for _, entry := range entries {
		// skip in-flight temporary files
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullHash := shard + entry.Name()
		if strings.HasPrefix(fullHash, prefix) {
			matches = append(matches, fullHash)
		}
	}
	return matches, nil
}

// Count returns the number of stored objects.
func (store *ObjectStore) Count() (int, error) {
	root := filepath.Join(store.repoPath, objectsRelativeFilePath)
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			count++
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count objects: %w", err)
	}
	return count, nil
}

// ReadBlob reads a blob and verifies its content matches hash.
func (store *ObjectStore) ReadBlob(hash string) (*Blob, error) {
	content, err := store.Get(hash)
	if err != nil {
		return nil, err
	}

	blob := NewBlob(content)
	if blob.Hash() != hash {
		return nil, errs.New(errs.CodeCorruptState, "hash mismatch: expected %s, got %s", hash, blob.Hash())
	}
	return blob, nil
}

func (store *ObjectStore) WriteTree(tree *Tree) error {
	return store.Store(tree)
}

func (store *ObjectStore) ReadTree(hash string) (*Tree, error) {
	content, err := store.Get(hash)
	if err != nil {
		return nil, err
	}
	return ParseTree(content)
}

func (store *ObjectStore) WriteCommit(commit *Commit) error {
	return store.Store(commit)
}

// ReadCommit loads a commit, reporting CommitNotFound when nothing is stored under hash.
func (store *ObjectStore) ReadCommit(hash string) (*Commit, error) {
	content, err := store.Get(hash)
	if errs.Is(err, errs.CodeObjectNotFound) {
		return nil, errs.New(errs.CodeCommitNotFound, "commit %s not found", hash)
	}
	if err != nil {
		return nil, err
	}
	return ParseCommit(content)
}
