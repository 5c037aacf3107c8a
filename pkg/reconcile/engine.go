package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/drift"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/identity"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// Engine runs the reconciliation operations for one project
type Engine struct {
	store    *config.Store
	paths    paths.Paths
	fs       filesystem.FS
	vcs      vcs.Host
	detector *drift.Detector
	logger   zerolog.Logger
}

// New creates an Engine. A nil fsys uses the OS filesystem.
func New(store *config.Store, p paths.Paths, fsys filesystem.FS, host vcs.Host) *Engine {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Engine{
		store:    store,
		paths:    p,
		fs:       fsys,
		vcs:      host,
		detector: drift.New(store, p, fsys, host),
		logger:   logging.GetLogger("reconcile"),
	}
}

// Store returns the config store the engine records into
func (e *Engine) Store() *config.Store {
	return e.store
}

// location gathers every path derived from a package's identity
type location struct {
	id          identity.Identity
	slot        string
	internalDir string
	artifact    string
	root        string
}

func (e *Engine) locate(dest config.Destination, spec config.PackageSpec) location {
	id := identity.For(e.paths.ProjectRoot(), dest.Path, spec.Name)
	return location{
		id:          id,
		slot:        e.paths.StorageSlot(id.String()),
		internalDir: e.paths.InternalGitDir(id.String()),
		artifact:    e.paths.InstallPath(dest.Path, spec.Name),
		root:        e.paths.PackageRootPath(id.String(), spec.EffectivePackageRoot()),
	}
}

func (e *Engine) scoped(dest config.Destination, name string) zerolog.Logger {
	return e.logger.With().Str("destination", dest.Name).Str("package", name).Logger()
}

// IsInstalled reports whether every piece of an install is present: the
// artifact, the storage slot, the internal git directory and the registry
// section.
func (e *Engine) IsInstalled(dest config.Destination, spec config.PackageSpec) (bool, error) {
	loc := e.locate(dest, spec)

	for _, p := range []string{loc.artifact, loc.slot, loc.internalDir} {
		if !filesystem.Exists(e.fs, p) {
			return false, nil
		}
	}

	repo, err := e.vcs.OpenRepository(e.paths.ProjectRoot())
	if err != nil {
		return false, err
	}
	return e.vcs.HasSubmoduleRegistration(repo, loc.id.String())
}

// Stats returns the checked out commit of an installed package, or nil
// when the package is not installed
func (e *Engine) Stats(dest config.Destination, spec config.PackageSpec) (*vcs.Commit, error) {
	installed, err := e.IsInstalled(dest, spec)
	if err != nil || !installed {
		return nil, err
	}
	return e.vcs.CurrentCommit(e.locate(dest, spec).slot)
}
