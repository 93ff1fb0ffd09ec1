// Package refs persists the branch registry together with the user identity
// and remotes in the repository config file.
package refs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/KostasZigo/kvcs/internal/constants"
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/utils"
)

// Config maps branch names to commit hashes. An empty hash means the branch
// exists but has no commits yet. CurrentBranch is always a key of Branches.
type Config struct {
	CurrentBranch string            `toml:"current_branch"`
	Branches      map[string]string `toml:"branches"`
	UserName      string            `toml:"user_name"`
	UserEmail     string            `toml:"user_email"`
	Remotes       map[string]string `toml:"remotes"`
}

// Default returns the configuration of a freshly initialized repository.
func Default() *Config {
	return &Config{
		CurrentBranch: constants.DefaultBranch,
		Branches:      map[string]string{constants.DefaultBranch: ""},
		UserName:      constants.DefaultUserName,
		UserEmail:     constants.DefaultUserEmail,
		Remotes:       make(map[string]string),
	}
}

// Head returns the commit hash of the current branch, or "" when it has no commits.
func (c *Config) Head() string {
	return c.Branches[c.CurrentBranch]
}

// SetHead points the current branch at hash.
func (c *Config) SetHead(hash string) {
	c.Branches[c.CurrentBranch] = hash
}

func (c *Config) HasBranch(name string) bool {
	_, ok := c.Branches[name]
	return ok
}

// CreateBranch adds name pointing at the current head.
func (c *Config) CreateBranch(name string) error {
	if name == "" {
		return errs.New(errs.CodeInvalidArgument, "branch name must not be empty")
	}
	if c.HasBranch(name) {
		return errs.New(errs.CodeAlreadyExists, "branch '%s' already exists", name)
	}
	c.Branches[name] = c.Head()
	return nil
}

// Switch makes name the current branch.
func (c *Config) Switch(name string) error {
	if !c.HasBranch(name) {
		return errs.New(errs.CodeRefNotFound, "branch '%s' not found", name)
	}
	c.CurrentBranch = name
	return nil
}

// BranchNames returns all branch names in lexical order.
func (c *Config) BranchNames() []string {
	return slices.Sorted(maps.Keys(c.Branches))
}

func (c *Config) validate() error {
	if c.Branches == nil {
		c.Branches = make(map[string]string)
	}
	if c.Remotes == nil {
		c.Remotes = make(map[string]string)
	}
	if !c.HasBranch(c.CurrentBranch) {
		return errs.New(errs.CodeCorruptState, "current branch %q is not a known branch", c.CurrentBranch)
	}
	return nil
}

// Load reads the config file at path. A missing or blank file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errs.Wrap(err, errs.CodeCorruptState, "config file %s is unreadable", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save replaces the config file at path atomically.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	return utils.WriteFileAtomic(path, buf.Bytes(), constants.FilePerms)
}
