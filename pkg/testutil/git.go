package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// RequireGit skips the test if the git binary is not available
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("Test requires the git binary")
	}
}

// IsolateGit shields git from the user's global and system configuration
// and provides a commit identity
func IsolateGit(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	globalConfig := filepath.Join(home, ".gitconfig")
	if err := os.WriteFile(globalConfig, []byte("[init]\n\tdefaultBranch = main\n"), 0644); err != nil {
		t.Fatalf("Failed to write git config: %v", err)
	}

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", globalConfig)
	t.Setenv("GIT_AUTHOR_NAME", "gitpkg test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@gitpkg.invalid")
	t.Setenv("GIT_COMMITTER_NAME", "gitpkg test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@gitpkg.invalid")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")
}

// Git runs git in dir and returns its trimmed output, failing the test on
// error
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s (in %s) failed: %v\n%s", strings.Join(args, " "), dir, err, out)
	}
	return strings.TrimSpace(string(out))
}

// RealPath resolves symlinks in path so it compares equal to what git
// reports (temp directories are symlinked on some platforms)
func RealPath(t *testing.T, path string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", path, err)
	}
	return resolved
}

// NewHostRepo creates an empty git repository and returns its resolved root
func NewHostRepo(t *testing.T) string {
	t.Helper()

	root := RealPath(t, t.TempDir())
	Git(t, root, "init", "-q")
	return root
}

// BareRepo is a local bare repository used as a package source. WorkDir is
// a clone with the bare repository as origin, used to push new commits.
type BareRepo struct {
	Path    string
	WorkDir string
	Commits []string
}

// URL returns the location to pass as a package url
func (r *BareRepo) URL() string {
	return r.Path
}

// Head returns the most recent commit pushed to main
func (r *BareRepo) Head() string {
	return r.Commits[len(r.Commits)-1]
}

// NewBareRepo creates a bare repository whose main branch holds two
// commits: the first adds files, the second adds CHANGELOG.md
func NewBareRepo(t *testing.T, name string, files map[string]string) *BareRepo {
	t.Helper()

	base := RealPath(t, t.TempDir())
	r := &BareRepo{
		Path:    filepath.Join(base, name+".git"),
		WorkDir: filepath.Join(base, name+"-work"),
	}

	Git(t, base, "init", "-q", "--bare", r.Path)
	Git(t, r.Path, "symbolic-ref", "HEAD", "refs/heads/main")
	Git(t, base, "clone", "-q", r.Path, r.WorkDir)
	Git(t, r.WorkDir, "symbolic-ref", "HEAD", "refs/heads/main")

	r.Commit(t, files, "initial import")
	r.Commit(t, map[string]string{"CHANGELOG.md": "# Changelog\n\n- initial import\n"}, "add changelog")

	return r
}

// Commit writes files into the work clone, commits them and pushes the
// current branch. The new commit hash is returned.
func (r *BareRepo) Commit(t *testing.T, files map[string]string, message string) string {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		CreateFile(t, r.WorkDir, name, files[name])
	}
	Git(t, r.WorkDir, "add", "-A")
	Git(t, r.WorkDir, "commit", "-q", "-m", message)

	branch := Git(t, r.WorkDir, "rev-parse", "--abbrev-ref", "HEAD")
	Git(t, r.WorkDir, "push", "-q", "origin", branch)

	hash := Git(t, r.WorkDir, "rev-parse", "HEAD")
	if branch == "main" {
		r.Commits = append(r.Commits, hash)
	}
	return hash
}

// Branch creates branch from main with one extra commit and pushes it
func (r *BareRepo) Branch(t *testing.T, branch string, files map[string]string) string {
	t.Helper()

	Git(t, r.WorkDir, "checkout", "-q", "-B", branch, "main")
	hash := r.Commit(t, files, "work on "+branch)
	Git(t, r.WorkDir, "checkout", "-q", "main")
	return hash
}
