package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	AddCmdName        = "add"
	StatusCmdName     = "status"
	CommitCmdName     = "commit"
	LogCmdName        = "log"
	BranchCmdName     = "branch"
	CheckoutCmdName   = "checkout"
	DiffCmdName       = "diff"
	MergeCmdName      = "merge"
	ResetCmdName      = "reset"
	StashCmdName      = "stash"
	ConfigCmdName     = "config"
	InfoCmdName       = "info"
)

// Repository directory and file names define the kvcs metadata structure.
const (
	// Kvcs is the repository metadata directory.
	Kvcs = ".kvcs"

	// Objects stores content-addressable objects (blobs, trees, commits).
	Objects = "objects"

	// Refs is a reserved namespace for branch and tag references.
	Refs = "refs"

	// Heads is reserved for branch pointers under refs/.
	Heads = "heads"

	// Tags is reserved for tag pointers under refs/.
	Tags = "tags"

	// Head holds the symbolic ref of the checked-out branch.
	Head = "HEAD"

	// Index is the staging area snapshot.
	Index = "index"

	// Config holds branches, the current branch, identity and remotes.
	Config = "config"

	// Stash holds the ordered list of saved index snapshots.
	Stash = "stash"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"

	// DefaultUserName is the author name used until user.name is set.
	DefaultUserName = "User"

	// DefaultUserEmail is the author email used until user.email is set.
	DefaultUserEmail = "user@example.com"

	// DefaultFileMode is recorded for files whose permissions cannot be read.
	DefaultFileMode = "644"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of a SHA-256 digest (32 bytes).
	HashByteLength = 32

	// HashStringLength is hex string length of a SHA-256 digest (64 characters).
	HashStringLength = 64

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2

	// ShortHashLength is the abbreviated hash shown to users.
	ShortHashLength = 8

	// OnelineHashLength is the abbreviated hash used by log --oneline.
	OnelineHashLength = 7

	// MinPrefixLength is the shortest hash prefix accepted for commit lookup.
	MinPrefixLength = 8
)

// DiffLookahead bounds how far the diff engine searches for a resynchronization line.
const DiffLookahead = 5
