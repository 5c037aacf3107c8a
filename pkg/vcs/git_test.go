// TEST TYPE: Integration Test
// DEPENDENCIES: git binary, temp directories
// PURPOSE: Test GitCLI against real repositories

package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/testutil"
)

const testIdentity = "0123456789abcdef0123456789abcdef"

type fixture struct {
	host    *GitCLI
	repo    *Repository
	source  *testutil.BareRepo
	storage string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	testutil.RequireGit(t)
	testutil.IsolateGit(t)

	root := testutil.NewHostRepo(t)
	host := NewGitCLI("", nil)

	repo, err := host.OpenRepository(root)
	require.NoError(t, err)

	return &fixture{
		host: host,
		repo: repo,
		source: testutil.NewBareRepo(t, "depA", map[string]string{
			"README.md":   "depA\n",
			"src/lib.txt": "library\n",
		}),
		storage: filepath.Join(root, ".gitpkgs", testIdentity),
	}
}

// addSubmodule registers the fixture source at the storage slot
func (f *fixture) addSubmodule(t *testing.T, branch string) {
	t.Helper()
	require.NoError(t, f.host.CreateSubmodule(f.repo, testIdentity, f.storage, f.source.URL(), branch))
}

func TestOpenRepository(t *testing.T) {
	testutil.RequireGit(t)
	testutil.IsolateGit(t)

	root := testutil.NewHostRepo(t)
	host := NewGitCLI("", nil)

	t.Run("root", func(t *testing.T) {
		repo, err := host.OpenRepository(root)
		require.NoError(t, err)
		assert.Equal(t, root, repo.Root)
	})

	t.Run("walks up from a subdirectory", func(t *testing.T) {
		sub := testutil.CreateDir(t, root, "a/b")
		repo, err := host.OpenRepository(sub)
		require.NoError(t, err)
		assert.Equal(t, root, repo.Root)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := host.OpenRepository(filepath.Join(root, "missing"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotAGitRepository))
	})

	t.Run("not a repository", func(t *testing.T) {
		plain := testutil.RealPath(t, t.TempDir())
		t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(plain))
		_, err := host.OpenRepository(plain)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotAGitRepository))
	})
}

func TestCreateSubmodule(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")

	testutil.AssertFileContent(t, filepath.Join(f.storage, "src", "lib.txt"), "library\n")
	assert.True(t, testutil.DirExists(t, filepath.Join(f.repo.Root, ".git", "modules", testIdentity)))

	registered, err := f.host.HasSubmoduleRegistration(f.repo, testIdentity)
	require.NoError(t, err)
	assert.True(t, registered)

	commit, err := f.host.CurrentCommit(f.storage)
	require.NoError(t, err)
	assert.Equal(t, f.source.Head(), commit.Hash)
	assert.False(t, commit.Time.IsZero())
	assert.Len(t, commit.ShortHash(), 7)

	branch, err := f.host.CurrentBranch(f.storage)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestCreateSubmodule_Branch(t *testing.T) {
	f := setup(t)
	devHead := f.source.Branch(t, "dev", map[string]string{"dev.txt": "dev\n"})

	f.addSubmodule(t, "dev")

	branch, err := f.host.CurrentBranch(f.storage)
	require.NoError(t, err)
	assert.Equal(t, "dev", branch)

	commit, err := f.host.CurrentCommit(f.storage)
	require.NoError(t, err)
	assert.Equal(t, devHead, commit.Hash)
}

func TestCreateSubmodule_MissingTrackedRegistry(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")
	testutil.Git(t, f.repo.Root, "commit", "-q", "-m", "add submodule")

	// Simulate a user deleting every trace except the tracked .gitmodules
	require.NoError(t, os.Remove(filepath.Join(f.repo.Root, ".gitmodules")))
	require.NoError(t, os.RemoveAll(f.storage))
	require.NoError(t, os.RemoveAll(filepath.Join(f.repo.Root, ".git", "modules", testIdentity)))
	require.NoError(t, f.host.RemoveFromIndex(f.repo, f.storage))

	f.addSubmodule(t, "")
	testutil.AssertFileContent(t, filepath.Join(f.storage, "README.md"), "depA\n")
}

func TestCloneLocal(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")
	before := testutil.TreeChecksums(t, f.storage, ".git")

	require.NoError(t, os.RemoveAll(f.storage))

	internal := filepath.Join(f.repo.Root, ".git", "modules", testIdentity)
	require.NoError(t, f.host.CloneLocal(internal, f.storage))

	assert.Equal(t, before, testutil.TreeChecksums(t, f.storage, ".git"))
	testutil.AssertFileContains(t, filepath.Join(f.storage, ".git"), "gitdir: ")

	commit, err := f.host.CurrentCommit(f.storage)
	require.NoError(t, err)
	assert.Equal(t, f.source.Head(), commit.Hash)

	dirty, err := f.host.HasLocalChanges(f.storage)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestCurrentCommit_NotACheckout(t *testing.T) {
	f := setup(t)

	plain := testutil.CreateDir(t, f.repo.Root, "plain")
	_, err := f.host.CurrentCommit(plain)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitCommand))

	_, err = f.host.CurrentCommit(filepath.Join(f.repo.Root, "missing"))
	assert.Error(t, err)

	// A working tree whose git directory is gone
	f.addSubmodule(t, "")
	require.NoError(t, os.RemoveAll(filepath.Join(f.repo.Root, ".git", "modules", testIdentity)))
	_, err = f.host.CurrentCommit(f.storage)
	assert.Error(t, err)
}

func TestLocalChanges(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")

	dirty, err := f.host.HasLocalChanges(f.storage)
	require.NoError(t, err)
	assert.False(t, dirty)

	testutil.CreateFile(t, f.storage, "README.md", "edited\n")
	testutil.CreateFile(t, f.storage, "untracked.txt", "new\n")

	dirty, err = f.host.HasLocalChanges(f.storage)
	require.NoError(t, err)
	assert.True(t, dirty)

	require.NoError(t, f.host.DiscardLocalChanges(f.storage))

	dirty, err = f.host.HasLocalChanges(f.storage)
	require.NoError(t, err)
	assert.False(t, dirty)
	testutil.AssertFileContent(t, filepath.Join(f.storage, "README.md"), "depA\n")
	testutil.AssertNoFile(t, filepath.Join(f.storage, "untracked.txt"))
}

func TestFastForward(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")

	newHead := f.source.Commit(t, map[string]string{"NEWS.md": "news\n"}, "news")

	require.NoError(t, f.host.FastForward(f.storage, ""))

	commit, err := f.host.CurrentCommit(f.storage)
	require.NoError(t, err)
	assert.Equal(t, newHead, commit.Hash)
	testutil.AssertFileContent(t, filepath.Join(f.storage, "NEWS.md"), "news\n")
}

func TestFastForward_PinnedBranch(t *testing.T) {
	f := setup(t)
	f.source.Branch(t, "dev", map[string]string{"dev.txt": "one\n"})
	f.addSubmodule(t, "dev")

	testutil.Git(t, f.source.WorkDir, "checkout", "-q", "dev")
	newHead := f.source.Commit(t, map[string]string{"dev.txt": "two\n"}, "dev work")

	require.NoError(t, f.host.FastForward(f.storage, "dev"))

	commit, err := f.host.CurrentCommit(f.storage)
	require.NoError(t, err)
	assert.Equal(t, newHead, commit.Hash)
}

func TestFastForward_DetachedHead(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")
	testutil.Git(t, f.storage, "checkout", "-q", "--detach")

	newHead := f.source.Commit(t, map[string]string{"NEWS.md": "news\n"}, "news")

	require.NoError(t, f.host.FastForward(f.storage, ""))

	commit, err := f.host.CurrentCommit(f.storage)
	require.NoError(t, err)
	assert.Equal(t, newHead, commit.Hash)

	branch, err := f.host.CurrentBranch(f.storage)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestSubmoduleBranch(t *testing.T) {
	f := setup(t)

	branch, err := f.host.SubmoduleBranch(f.repo, testIdentity)
	require.NoError(t, err)
	assert.Empty(t, branch)

	f.source.Branch(t, "dev", map[string]string{"dev.txt": "one\n"})
	f.addSubmodule(t, "dev")

	branch, err = f.host.SubmoduleBranch(f.repo, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, "dev", branch)

	other := "fedcba9876543210fedcba9876543210"
	require.NoError(t, f.host.CreateSubmodule(f.repo, other,
		filepath.Join(f.repo.Root, ".gitpkgs", other), f.source.URL(), ""))

	branch, err = f.host.SubmoduleBranch(f.repo, other)
	require.NoError(t, err)
	assert.Empty(t, branch)
}

func TestRemoveSubmoduleRegistration(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")

	require.NoError(t, f.host.RemoveSubmoduleRegistration(f.repo, testIdentity))

	registered, err := f.host.HasSubmoduleRegistration(f.repo, testIdentity)
	require.NoError(t, err)
	assert.False(t, registered)
	testutil.AssertNoFile(t, filepath.Join(f.repo.Root, ".gitmodules"))

	// Second call is a no-op
	require.NoError(t, f.host.RemoveSubmoduleRegistration(f.repo, testIdentity))
}

func TestRemoveSubmoduleRegistration_KeepsOtherSections(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")

	other := "fedcba9876543210fedcba9876543210"
	require.NoError(t, f.host.CreateSubmodule(f.repo, other,
		filepath.Join(f.repo.Root, ".gitpkgs", other), f.source.URL(), ""))

	require.NoError(t, f.host.RemoveSubmoduleRegistration(f.repo, testIdentity))

	registered, err := f.host.HasSubmoduleRegistration(f.repo, other)
	require.NoError(t, err)
	assert.True(t, registered)
	testutil.AssertFileContains(t, filepath.Join(f.repo.Root, ".gitmodules"), other)
}

func TestRemoveFromIndex(t *testing.T) {
	f := setup(t)
	f.addSubmodule(t, "")

	rel := ".gitpkgs/" + testIdentity
	assert.NotEmpty(t, testutil.Git(t, f.repo.Root, "ls-files", "--", rel))

	require.NoError(t, f.host.RemoveFromIndex(f.repo, f.storage))
	assert.Empty(t, testutil.Git(t, f.repo.Root, "ls-files", "--", rel))

	// Absent entries are ignored
	require.NoError(t, f.host.RemoveFromIndex(f.repo, f.storage))
}

func TestHasSubmoduleRegistration_NoRegistry(t *testing.T) {
	f := setup(t)

	registered, err := f.host.HasSubmoduleRegistration(f.repo, testIdentity)
	require.NoError(t, err)
	assert.False(t, registered)
}
