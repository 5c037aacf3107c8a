// Package vcstest provides an in-memory vcs.Host for unit tests that do
// not need a real git binary.
package vcstest

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// Host is a scriptable vcs.Host. Unset entries behave like a missing
// checkout.
type Host struct {
	mu sync.Mutex

	Root          string
	Branches      map[string]string
	Commits       map[string]*vcs.Commit
	Dirty         map[string]bool
	Registrations map[string]bool

	// RegisteredBranches holds the registry branch per identity
	RegisteredBranches map[string]string

	// Calls records every method invocation as "Method arg..."
	Calls []string
}

var _ vcs.Host = (*Host)(nil)

// New creates a fake host for a repository rooted at root
func New(root string) *Host {
	return &Host{
		Root:          root,
		Branches:      make(map[string]string),
		Commits:       make(map[string]*vcs.Commit),
		Dirty:         make(map[string]bool),
		Registrations: make(map[string]bool),

		RegisteredBranches: make(map[string]string),
	}
}

func (h *Host) record(format string, args ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, fmt.Sprintf(format, args...))
}

func (h *Host) OpenRepository(path string) (*vcs.Repository, error) {
	h.record("OpenRepository %s", path)
	return &vcs.Repository{Root: h.Root}, nil
}

func (h *Host) CreateSubmodule(repo *vcs.Repository, identity, path, url, branch string) error {
	h.record("CreateSubmodule %s %s %s %s", identity, path, url, branch)
	h.Registrations[identity] = true
	h.RegisteredBranches[identity] = branch
	h.Branches[path] = branch
	return nil
}

func (h *Host) CloneLocal(internalDir, storageDir string) error {
	h.record("CloneLocal %s %s", internalDir, storageDir)
	return nil
}

func (h *Host) CurrentCommit(path string) (*vcs.Commit, error) {
	h.record("CurrentCommit %s", path)
	if c, ok := h.Commits[path]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%s is not a checkout", path)
}

func (h *Host) CurrentBranch(path string) (string, error) {
	h.record("CurrentBranch %s", path)
	if b, ok := h.Branches[path]; ok {
		return b, nil
	}
	return "", fmt.Errorf("%s is not a checkout", path)
}

func (h *Host) HasLocalChanges(path string) (bool, error) {
	h.record("HasLocalChanges %s", path)
	return h.Dirty[path], nil
}

func (h *Host) FastForward(path, branch string) error {
	h.record("FastForward %s %s", path, branch)
	return nil
}

func (h *Host) DiscardLocalChanges(path string) error {
	h.record("DiscardLocalChanges %s", path)
	h.Dirty[path] = false
	return nil
}

func (h *Host) RemoveSubmoduleRegistration(repo *vcs.Repository, identity string) error {
	h.record("RemoveSubmoduleRegistration %s", identity)
	delete(h.Registrations, identity)
	delete(h.RegisteredBranches, identity)
	return nil
}

func (h *Host) HasSubmoduleRegistration(repo *vcs.Repository, identity string) (bool, error) {
	h.record("HasSubmoduleRegistration %s", identity)
	return h.Registrations[identity], nil
}

func (h *Host) SubmoduleBranch(repo *vcs.Repository, identity string) (string, error) {
	h.record("SubmoduleBranch %s", identity)
	return h.RegisteredBranches[identity], nil
}

func (h *Host) RemoveFromIndex(repo *vcs.Repository, path string) error {
	h.record("RemoveFromIndex %s", path)
	return nil
}
