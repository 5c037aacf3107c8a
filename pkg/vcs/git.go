package vcs

import (
	"bytes"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
)

// DefaultBinary is used when no git binary is configured
const DefaultBinary = "git"

// GitCLI implements Host by running the git command line tool
type GitCLI struct {
	binary string
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewGitCLI creates a Host that runs binary, or "git" when empty
func NewGitCLI(binary string, fsys filesystem.FS) *GitCLI {
	if binary == "" {
		binary = DefaultBinary
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &GitCLI{
		binary: binary,
		fs:     fsys,
		logger: logging.GetLogger("vcs.git"),
	}
}

// gitError is returned by exec when git ran and exited non-zero
type gitError struct {
	exitCode int
	stderr   string
}

func (e *gitError) Error() string {
	if e.stderr == "" {
		return "exit status " + strconv.Itoa(e.exitCode)
	}
	return e.stderr
}

// exec runs git in dir and returns its trimmed stdout
func (g *GitCLI) exec(dir string, args ...string) (string, error) {
	logging.LogCommand(g.logger, g.binary, args)

	cmd := exec.Command(g.binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return "", &gitError{
				exitCode: exitErr.ExitCode(),
				stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// run is exec with failures coded as GIT_COMMAND
func (g *GitCLI) run(dir string, args ...string) (string, error) {
	out, err := g.exec(dir, args...)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGitCommand, "git %s failed", strings.Join(args, " ")).
			WithDetail(errors.DetailPath, dir)
	}
	return out, nil
}

// exitCode returns git's exit status, or -1 when git did not run
func exitCode(err error) int {
	var gerr *gitError
	if stderrors.As(err, &gerr) {
		return gerr.exitCode
	}
	return -1
}

func (g *GitCLI) OpenRepository(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", path)
	}
	if !filesystem.IsDir(g.fs, abs) {
		return nil, errors.NotAGitRepository(abs)
	}

	root, err := g.exec(abs, "rev-parse", "--show-toplevel")
	if err != nil || root == "" {
		g.logger.Debug().Err(err).Str("path", abs).Msg("rev-parse failed")
		return nil, errors.NotAGitRepository(abs)
	}

	return &Repository{Root: filepath.Clean(root)}, nil
}

func (g *GitCLI) CreateSubmodule(repo *Repository, identity, path, url, branch string) error {
	rel, err := paths.RelativePath(repo.Root, path)
	if err != nil {
		return err
	}

	// submodule add refuses to write a registry that is tracked but
	// missing from the working tree
	gitmodules := filepath.Join(repo.Root, paths.GitModulesFileName)
	if !filesystem.Exists(g.fs, gitmodules) {
		if err := g.fs.WriteFile(gitmodules, nil, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", gitmodules)
		}
	}

	args := []string{"-c", "protocol.file.allow=always", "submodule", "add", "--force", "--name", identity}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	args = append(args, "--", url, paths.ToSlash(rel))

	if _, err := g.run(repo.Root, args...); err != nil {
		return err
	}

	g.logger.Debug().
		Str("identity", identity).
		Str("url", url).
		Str("branch", branch).
		Msg("Submodule created")
	return nil
}

func (g *GitCLI) CloneLocal(internalDir, storageDir string) error {
	if err := g.fs.MkdirAll(filepath.Dir(storageDir), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", filepath.Dir(storageDir))
	}

	if _, err := g.run("", "clone", "-q", internalDir, storageDir); err != nil {
		return err
	}

	// Point the fresh working tree back at the internal git directory
	dotGit := filepath.Join(storageDir, paths.GitDirName)
	if err := g.fs.RemoveAll(dotGit); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", dotGit)
	}

	rel, err := filepath.Rel(storageDir, internalDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot relate %s to %s", internalDir, storageDir)
	}
	content := "gitdir: " + filepath.ToSlash(rel) + "\n"
	if err := g.fs.WriteFile(dotGit, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", dotGit)
	}

	g.logger.Debug().Str("from", internalDir).Str("to", storageDir).Msg("Working tree rebuilt")
	return nil
}

// checkout verifies that path is itself the root of a working tree and not
// merely a directory inside some enclosing repository
func (g *GitCLI) checkout(path string) error {
	if !filesystem.IsDir(g.fs, path) {
		return errors.Newf(errors.ErrGitCommand, "%s is not a directory", path).
			WithDetail(errors.DetailPath, path)
	}

	top, err := g.run(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return err
	}

	want, err := filepath.EvalSymlinks(path)
	if err != nil {
		want = path
	}
	got, err := filepath.EvalSymlinks(top)
	if err != nil {
		got = top
	}
	if filepath.Clean(want) != filepath.Clean(got) {
		return errors.Newf(errors.ErrGitCommand, "%s is not the root of a checkout", path).
			WithDetail(errors.DetailPath, path)
	}
	return nil
}

func (g *GitCLI) CurrentCommit(path string) (*Commit, error) {
	if err := g.checkout(path); err != nil {
		return nil, err
	}

	out, err := g.run(path, "log", "-1", "--format=%H%x00%ct")
	if err != nil {
		return nil, err
	}

	hash, ts, ok := strings.Cut(out, "\x00")
	if !ok || hash == "" {
		return nil, errors.Newf(errors.ErrGitCommand, "unexpected git log output %q", out).
			WithDetail(errors.DetailPath, path)
	}
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitCommand, "invalid commit timestamp %q", ts)
	}

	return &Commit{Hash: hash, Time: time.Unix(secs, 0).UTC()}, nil
}

func (g *GitCLI) CurrentBranch(path string) (string, error) {
	if err := g.checkout(path); err != nil {
		return "", err
	}

	out, err := g.run(path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if out == "HEAD" {
		return "", nil
	}
	return out, nil
}

func (g *GitCLI) HasLocalChanges(path string) (bool, error) {
	if err := g.checkout(path); err != nil {
		return false, err
	}

	out, err := g.run(path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (g *GitCLI) FastForward(path, branch string) error {
	current, err := g.CurrentBranch(path)
	if err != nil {
		return err
	}

	// submodule update leaves the checkout on a detached HEAD
	if current == "" {
		if branch == "" {
			if branch, err = g.defaultBranch(path); err != nil {
				return err
			}
		}
		g.logger.Debug().Str("path", path).Str("branch", branch).Msg("Attaching detached HEAD")
		if _, err := g.run(path, "checkout", "-q", branch); err != nil {
			return err
		}
	}

	args := []string{"pull", "-q", "--ff-only"}
	if branch != "" {
		args = append(args, "origin", branch)
	}
	_, err = g.run(path, args...)
	return err
}

// defaultBranch returns the branch origin/HEAD points at, asking the remote
// when the clone did not record it
func (g *GitCLI) defaultBranch(path string) (string, error) {
	ref, err := g.exec(path, "symbolic-ref", "--short", "refs/remotes/origin/HEAD")
	if err != nil {
		if _, err := g.run(path, "remote", "set-head", "origin", "--auto"); err != nil {
			return "", err
		}
		if ref, err = g.run(path, "symbolic-ref", "--short", "refs/remotes/origin/HEAD"); err != nil {
			return "", err
		}
	}
	return strings.TrimPrefix(ref, "origin/"), nil
}

func (g *GitCLI) DiscardLocalChanges(path string) error {
	if err := g.checkout(path); err != nil {
		return err
	}

	if _, err := g.run(path, "reset", "-q", "--hard"); err != nil {
		return err
	}
	_, err := g.run(path, "clean", "-q", "-fd")
	return err
}

func (g *GitCLI) RemoveSubmoduleRegistration(repo *Repository, identity string) error {
	section := "submodule." + identity

	// Local config entries written by submodule add, absent after a fresh clone
	if _, err := g.exec(repo.Root, "config", "--remove-section", section); err != nil {
		g.logger.Trace().Str("section", section).Msg("No local config section")
	}

	registered, err := g.HasSubmoduleRegistration(repo, identity)
	if err != nil || !registered {
		return err
	}

	gitmodules := filepath.Join(repo.Root, paths.GitModulesFileName)
	if _, err := g.run(repo.Root, "config", "-f", gitmodules, "--remove-section", section); err != nil {
		return err
	}

	data, err := g.fs.ReadFile(gitmodules)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", gitmodules)
	}
	if strings.TrimSpace(string(data)) == "" {
		if err := g.fs.Remove(gitmodules); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", gitmodules)
		}
		g.logger.Debug().Msg("Removed empty .gitmodules")
	}

	return nil
}

func (g *GitCLI) HasSubmoduleRegistration(repo *Repository, identity string) (bool, error) {
	gitmodules := filepath.Join(repo.Root, paths.GitModulesFileName)
	if !filesystem.Exists(g.fs, gitmodules) {
		return false, nil
	}

	_, err := g.exec(repo.Root, "config", "-f", gitmodules, "--get", "submodule."+identity+".path")
	if err == nil {
		return true, nil
	}
	// 1 is "key not found"
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrGitCommand, "failed to read %s", gitmodules)
}

func (g *GitCLI) SubmoduleBranch(repo *Repository, identity string) (string, error) {
	gitmodules := filepath.Join(repo.Root, paths.GitModulesFileName)
	if !filesystem.Exists(g.fs, gitmodules) {
		return "", nil
	}

	out, err := g.exec(repo.Root, "config", "-f", gitmodules, "--get", "submodule."+identity+".branch")
	if err == nil {
		return out, nil
	}
	if exitCode(err) == 1 {
		return "", nil
	}
	return "", errors.Wrapf(err, errors.ErrGitCommand, "failed to read %s", gitmodules)
}

func (g *GitCLI) RemoveFromIndex(repo *Repository, path string) error {
	rel, err := paths.RelativePath(repo.Root, path)
	if err != nil {
		return err
	}
	// update-index is used instead of rm --cached: rm refuses to drop a
	// submodule while .gitmodules has unstaged edits
	_, err = g.run(repo.Root, "update-index", "--force-remove", "--", paths.ToSlash(rel))
	return err
}
