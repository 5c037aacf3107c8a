package vcs

import "time"

// Repository is an opened host repository
type Repository struct {
	// Root is the absolute path of the working tree root
	Root string
}

// Commit identifies the checked out revision of a working tree
type Commit struct {
	Hash string    `json:"hash" yaml:"hash"`
	Time time.Time `json:"time" yaml:"time"`
}

// ShortHash returns the abbreviated commit hash
func (c *Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Host performs the version control operations the reconciler needs
type Host interface {
	// OpenRepository finds the repository containing path
	OpenRepository(path string) (*Repository, error)

	// CreateSubmodule registers url as a submodule named identity checked
	// out at path, optionally pinned to branch
	CreateSubmodule(repo *Repository, identity, path, url, branch string) error

	// CloneLocal rebuilds the working tree at storageDir from an existing
	// internal git directory without touching the network
	CloneLocal(internalDir, storageDir string) error

	// CurrentCommit fails if path is not the root of a valid checkout
	CurrentCommit(path string) (*Commit, error)

	// CurrentBranch returns "" for a detached HEAD
	CurrentBranch(path string) (string, error)

	// HasLocalChanges reports modified, staged or untracked files
	HasLocalChanges(path string) (bool, error)

	// FastForward pulls upstream changes into path; branch may be empty. A
	// detached HEAD is moved onto branch, or the remote default branch.
	FastForward(path, branch string) error

	// DiscardLocalChanges resets tracked files and removes untracked ones
	DiscardLocalChanges(path string) error

	// RemoveSubmoduleRegistration drops the registry section of identity
	RemoveSubmoduleRegistration(repo *Repository, identity string) error

	// HasSubmoduleRegistration reports whether the registry has a section
	// for identity
	HasSubmoduleRegistration(repo *Repository, identity string) (bool, error)

	// SubmoduleBranch returns the branch recorded in the registry for
	// identity, "" when none is
	SubmoduleBranch(repo *Repository, identity string) (string, error)

	// RemoveFromIndex drops path from the host repository's index
	RemoveFromIndex(repo *Repository, path string) error
}
