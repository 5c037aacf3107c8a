package reconcile

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// Install records spec under dest when it is new and brings its install up
// to date. It returns an AlreadyInstalled error when nothing had to change.
//
// A PackageRootNotFound error leaves the package recorded and checked out;
// callers that just registered it are expected to Uninstall it.
func (e *Engine) Install(dest config.Destination, spec config.PackageSpec) error {
	logger := e.scoped(dest, spec.Name)
	defer logging.LogOperationStart(logger, "install")()

	if err := paths.ValidateName("package", spec.Name); err != nil {
		return err
	}
	if _, ok := e.store.Destination(dest.Name); !ok {
		return errors.UnknownDestination(dest.Name)
	}

	artifact := e.paths.InstallPath(dest.Path, spec.Name)
	if e.paths.IsReserved(artifact) {
		return errors.ReservedInstallPath(dest.Name, spec.Name, artifact)
	}

	recorded, known := e.store.FindPackage(dest.Name, spec.Name)
	if !e.ownsArtifact(artifact, recorded, known) {
		return errors.InstallPathOccupied(dest.Name, spec.Name, artifact)
	}

	if !known {
		if err := e.store.AddPackage(dest.Name, spec); err != nil {
			return err
		}
	}

	reason, err := e.detector.Check(dest, spec)
	if err != nil {
		return err
	}
	if reason != "" {
		logger.Info().Str("reason", string(reason)).Msg("Package changed, reinstalling")
		if err := e.store.ReplacePackage(dest.Name, spec); err != nil {
			return err
		}
	} else {
		installed, err := e.IsInstalled(dest, spec)
		if err != nil {
			return err
		}
		if installed {
			return errors.AlreadyInstalled(dest.Name, spec.Name)
		}
	}

	repo, err := e.vcs.OpenRepository(e.paths.ProjectRoot())
	if err != nil {
		return err
	}

	loc := e.locate(dest, spec)
	if err := e.repair(repo, loc, spec, logger); err != nil {
		return err
	}

	if err := e.checkPackageRoot(dest, spec, loc); err != nil {
		return err
	}

	if err := e.materialize(loc, spec); err != nil {
		return err
	}

	logger.Info().Str("artifact", loc.artifact).Msg("Package installed")
	return nil
}

// repair leaves a valid checkout of spec in the storage slot, backed by the
// internal git directory and registered in .gitmodules
func (e *Engine) repair(repo *vcs.Repository, loc location, spec config.PackageSpec, logger zerolog.Logger) error {
	id := loc.id.String()

	registered, err := e.vcs.HasSubmoduleRegistration(repo, id)
	if err != nil {
		return err
	}

	// A git dir without its registry section cannot be reused
	if filesystem.Exists(e.fs, loc.internalDir) && !registered {
		logger.Debug().Msg("Discarding orphaned internal git directory")
		if err := e.discard(loc.internalDir, loc.slot); err != nil {
			return err
		}
	}

	// The registry keeps tracking the branch the submodule was added with,
	// so pinning or unpinning needs a fresh submodule
	if registered {
		branch, err := e.vcs.SubmoduleBranch(repo, id)
		if err != nil {
			return err
		}
		if branch != spec.Branch {
			logger.Debug().
				Str("registered", branch).
				Str("branch", spec.Branch).
				Msg("Discarding submodule registered for another branch")
			if err := e.discard(loc.slot, loc.internalDir); err != nil {
				return err
			}
		}
	}

	if filesystem.Exists(e.fs, loc.slot) {
		switch e.checkSlot(loc.slot, spec) {
		case slotBroken:
			logger.Debug().Msg("Discarding storage slot, not a checkout")
			if err := e.discard(loc.slot); err != nil {
				return err
			}
		case slotWrongBranch:
			logger.Debug().Str("branch", spec.Branch).Msg("Discarding checkout of another branch")
			if err := e.discard(loc.slot, loc.internalDir); err != nil {
				return err
			}
		}
	}

	switch {
	case filesystem.Exists(e.fs, loc.slot):
		logger.Debug().Msg("Keeping storage slot")
		return nil

	case filesystem.Exists(e.fs, loc.internalDir):
		logger.Debug().Msg("Rebuilding storage slot from internal git directory")
		return e.vcs.CloneLocal(loc.internalDir, loc.slot)

	default:
		logger.Debug().Str("url", spec.URL).Str("branch", spec.Branch).Msg("Creating submodule")
		if err := e.vcs.RemoveFromIndex(repo, loc.slot); err != nil {
			return err
		}
		if err := e.vcs.RemoveSubmoduleRegistration(repo, id); err != nil {
			return err
		}
		return e.vcs.CreateSubmodule(repo, id, loc.slot, spec.URL, spec.Branch)
	}
}

type slotState int

const (
	slotValid slotState = iota
	slotBroken
	slotWrongBranch
)

// checkSlot classifies an existing storage slot. A checkout of another
// branch than the pinned one has to be recreated together with its git
// directory since the registry records the branch too.
func (e *Engine) checkSlot(slot string, spec config.PackageSpec) slotState {
	if _, err := e.vcs.CurrentCommit(slot); err != nil {
		return slotBroken
	}
	if spec.Branch == "" {
		return slotValid
	}
	current, err := e.vcs.CurrentBranch(slot)
	if err != nil || current != spec.Branch {
		return slotWrongBranch
	}
	return slotValid
}

func (e *Engine) discard(targets ...string) error {
	for _, t := range targets {
		if _, err := filesystem.RemoveIfExists(e.fs, t); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) checkPackageRoot(dest config.Destination, spec config.PackageSpec, loc location) error {
	if err := paths.ValidatePackageRoot(spec.EffectivePackageRoot()); err != nil {
		return errors.PackageRootNotFound(dest.Name, spec.Name, loc.root)
	}
	if !filesystem.IsDir(e.fs, loc.root) {
		return errors.PackageRootNotFound(dest.Name, spec.Name, loc.root)
	}
	return nil
}

// ownsArtifact reports whether whatever sits at artifact may be replaced.
// Links are always ours to replace, real files and directories only when
// the package was recorded as a copy.
func (e *Engine) ownsArtifact(artifact string, recorded config.PackageSpec, known bool) bool {
	if !filesystem.Exists(e.fs, artifact) || filesystem.IsSymlink(e.fs, artifact) {
		return true
	}
	return known && recorded.EffectiveMethod() == config.MethodCopy
}

// materialize replaces the artifact with a relative link to, or a copy of,
// the package root. Install has already checked the artifact is ours.
func (e *Engine) materialize(loc location, spec config.PackageSpec) error {
	if _, err := filesystem.RemoveIfExists(e.fs, loc.artifact); err != nil {
		return err
	}

	parent := filepath.Dir(loc.artifact)
	if err := e.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", parent).
			WithDetail(errors.DetailPath, parent)
	}

	if spec.EffectiveMethod() == config.MethodCopy {
		return filesystem.CopyTree(e.fs, loc.root, loc.artifact, paths.GitDirName)
	}

	target, err := paths.RelativePath(parent, loc.root)
	if err != nil {
		return err
	}
	if err := e.fs.Symlink(target, loc.artifact); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to link %s", loc.artifact).
			WithDetail(errors.DetailPath, loc.artifact)
	}
	return nil
}
