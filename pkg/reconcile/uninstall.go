package reconcile

import (
	"go.uber.org/multierr"

	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/logging"
)

// Uninstall removes every trace of a package: artifact, storage slot,
// index entry, registry section, internal git directory and config entry.
// Pieces already gone are skipped. All steps run even when one fails; the
// failures are returned together.
func (e *Engine) Uninstall(dest config.Destination, name string) error {
	logger := e.scoped(dest, name)
	defer logging.LogOperationStart(logger, "uninstall")()

	loc := e.locate(dest, config.PackageSpec{Name: name})
	var errs error

	recorded, known := e.store.FindPackage(dest.Name, name)
	targets := []string{loc.slot}
	if e.ownsArtifact(loc.artifact, recorded, known) {
		targets = append(targets, loc.artifact)
	} else {
		logger.Warn().Str("path", loc.artifact).Msg("Leaving files gitpkg did not create")
		errs = multierr.Append(errs, errors.InstallPathOccupied(dest.Name, name, loc.artifact))
	}

	for _, p := range targets {
		removed, err := filesystem.RemoveIfExists(e.fs, p)
		errs = multierr.Append(errs, err)
		if removed {
			logger.Debug().Str("path", p).Msg("Removed")
		}
	}

	repo, err := e.vcs.OpenRepository(e.paths.ProjectRoot())
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		errs = multierr.Append(errs, e.vcs.RemoveFromIndex(repo, loc.slot))
		errs = multierr.Append(errs, e.vcs.RemoveSubmoduleRegistration(repo, loc.id.String()))
	}

	removed, err := filesystem.RemoveIfExists(e.fs, loc.internalDir)
	errs = multierr.Append(errs, err)
	if removed {
		logger.Debug().Str("path", loc.internalDir).Msg("Removed internal git directory")
	}

	if e.store.HasPackage(dest.Name, name) {
		errs = multierr.Append(errs, e.store.RemovePackage(dest.Name, name))
	}

	if errs != nil {
		logger.Warn().Err(errs).Msg("Uninstall finished with errors")
		return errs
	}
	logger.Info().Msg("Package uninstalled")
	return nil
}
