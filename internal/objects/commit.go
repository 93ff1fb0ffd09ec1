package objects

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/utils"
)

// Author renders the commit author line.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>",
		a.Name,
		a.Email)
}

// commitRecord is the serialized form of a commit.
type commitRecord struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Parent    *string   `json:"parent"`
	Tree      string    `json:"tree"`
}

// Commit is an immutable snapshot naming a tree and at most one parent.
type Commit struct {
	record  commitRecord
	content []byte
}

// NewCommit builds a commit. The hash is the digest of the commit serialized
// with an empty hash field; the stored content then embeds that hash.
func NewCommit(treeHash, parentHash, message string, author Author, timestamp time.Time) (*Commit, error) {
	record := commitRecord{
		Message:   message,
		Author:    author.String(),
		Timestamp: timestamp.UTC(),
		Tree:      treeHash,
	}
	if parentHash != "" {
		record.Parent = &parentHash
	}

	unhashed, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize commit: %w", err)
	}
	record.Hash = utils.ComputeHash(unhashed)

	content, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize commit: %w", err)
	}

	return &Commit{record: record, content: content}, nil
}

func NewInitialCommit(treeHash, message string, author Author, timestamp time.Time) (*Commit, error) {
	return NewCommit(treeHash, "", message, author, timestamp)
}

// ParseCommit decodes stored commit content.
func ParseCommit(content []byte) (*Commit, error) {
	var record commitRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, errs.Wrap(err, errs.CodeCorruptState, "invalid commit object")
	}
	if record.Hash == "" || record.Tree == "" {
		return nil, errs.New(errs.CodeCorruptState, "invalid commit object: missing hash or tree")
	}
	return &Commit{record: record, content: content}, nil
}

func (c *Commit) Hash() string {
	return c.record.Hash
}

func (c *Commit) Content() []byte {
	return c.content
}

func (c *Commit) TreeHash() string {
	return c.record.Tree
}

// ParentHash returns the parent commit hash, or "" for an initial commit.
func (c *Commit) ParentHash() string {
	if c.record.Parent == nil {
		return ""
	}
	return *c.record.Parent
}

func (c *Commit) Message() string {
	return c.record.Message
}

func (c *Commit) Author() string {
	return c.record.Author
}

func (c *Commit) Timestamp() time.Time {
	return c.record.Timestamp
}

func (c *Commit) IsInitialCommit() bool {
	return c.ParentHash() == ""
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parent: %s, author: %s, message: %q}",
		c.Hash(), c.TreeHash(), c.ParentHash(), c.Author(), c.Message())
}
