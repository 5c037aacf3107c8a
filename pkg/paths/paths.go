package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gitpkg/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Project layout names. These are shared with the git submodule machinery
// and must not change between releases.
const (
	// ConfigFileName is the declarative configuration at the project root
	ConfigFileName = ".gitpkg.toml"

	// StorageDirName holds one storage slot per installed package
	StorageDirName = ".gitpkgs"

	// GitDirName is the host repository's git directory
	GitDirName = ".git"

	// ModulesDirName is the submodule storage directory inside GitDirName
	ModulesDirName = "modules"

	// GitModulesFileName is the submodule registry
	GitModulesFileName = ".gitmodules"

	// DefaultPackageRoot is the package root used when none is declared
	DefaultPackageRoot = "."
)

// Paths resolves every location gitpkg reads or writes for one project
type Paths interface {
	ProjectRoot() string
	ConfigPath() string
	StorageDir() string
	StorageSlot(identity string) string
	InternalGitDir(identity string) string
	GitModulesPath() string
	DestinationPath(relPath string) string
	InstallPath(destRelPath, packageName string) string
	PackageRootPath(identity, packageRoot string) string
	NormalizePath(path string) (string, error)
	IsInProject(path string) (bool, error)
	IsReserved(path string) bool
	RelativeToRoot(path string) (string, error)
}

type paths struct {
	root string
}

// New creates a Paths instance rooted at projectRoot. The root is made
// absolute and cleaned.
func New(projectRoot string) (Paths, error) {
	if projectRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "project root cannot be empty")
	}

	abs, err := filepath.Abs(expandHome(projectRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}

	return &paths{root: filepath.Clean(abs)}, nil
}

// ProjectRoot returns the absolute root of the host repository
func (p *paths) ProjectRoot() string {
	return p.root
}

// ConfigPath returns the path of the declarative config document
func (p *paths) ConfigPath() string {
	return filepath.Join(p.root, ConfigFileName)
}

// StorageDir returns the directory containing all storage slots
func (p *paths) StorageDir() string {
	return filepath.Join(p.root, StorageDirName)
}

// StorageSlot returns the working tree location for a package identity
func (p *paths) StorageSlot(identity string) string {
	return filepath.Join(p.StorageDir(), identity)
}

// InternalGitDir returns where git keeps the submodule's object store
func (p *paths) InternalGitDir(identity string) string {
	return filepath.Join(p.root, GitDirName, ModulesDirName, identity)
}

// GitModulesPath returns the path of the submodule registry
func (p *paths) GitModulesPath() string {
	return filepath.Join(p.root, GitModulesFileName)
}

// DestinationPath resolves a stored destination path against the root
func (p *paths) DestinationPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return filepath.Clean(relPath)
	}
	return filepath.Join(p.root, relPath)
}

// InstallPath returns the artifact location of a package
func (p *paths) InstallPath(destRelPath, packageName string) string {
	return filepath.Join(p.DestinationPath(destRelPath), packageName)
}

// PackageRootPath returns the directory inside the storage slot that the
// artifact exposes.
func (p *paths) PackageRootPath(identity, packageRoot string) string {
	if packageRoot == "" {
		packageRoot = DefaultPackageRoot
	}
	return filepath.Join(p.StorageSlot(identity), packageRoot)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// IsInProject checks if a path is within the project root
func (p *paths) IsInProject(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}
	return ContainsPath(p.root, normalized), nil
}

// IsReserved reports whether path is, or lies inside, one of the locations
// at the project root that git or gitpkg own
func (p *paths) IsReserved(path string) bool {
	owned := []string{
		filepath.Join(p.root, GitDirName),
		p.StorageDir(),
		p.GitModulesPath(),
		p.ConfigPath(),
	}
	for _, o := range owned {
		if ContainsPath(o, path) {
			return true
		}
	}
	return false
}

// RelativeToRoot converts a user supplied path into the form stored in the
// config. The path must lie inside the project root.
func (p *paths) RelativeToRoot(path string) (string, error) {
	in, err := p.IsInProject(path)
	if err != nil {
		return "", err
	}
	if !in {
		return "", errors.Newf(errors.ErrInvalidInput,
			"path '%s' is outside of the project root '%s'", path, p.root).
			WithDetail(errors.DetailPath, path)
	}

	normalized, err := p.NormalizePath(path)
	if err != nil {
		return "", err
	}
	return RelativePath(p.root, normalized)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// ToSlash normalizes separators for values persisted in the config
func ToSlash(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}
