package reconcile

import (
	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// UpdateStatus is the outcome of updating one package
type UpdateStatus string

const (
	StatusDisabled UpdateStatus = "disabled"
	StatusSkipped  UpdateStatus = "skipped"
	StatusUpdated  UpdateStatus = "updated"
	StatusUpToDate UpdateStatus = "up-to-date"
)

// UpdateResult reports what Update did to a package
type UpdateResult struct {
	Destination string       `json:"destination" yaml:"destination"`
	Package     string       `json:"package" yaml:"package"`
	Status      UpdateStatus `json:"status" yaml:"status"`
	Before      *vcs.Commit  `json:"before,omitempty" yaml:"before,omitempty"`
	After       *vcs.Commit  `json:"after,omitempty" yaml:"after,omitempty"`
}

// Update fast-forwards an installed package to its upstream. Packages with
// updates disabled or with local modifications are left alone unless force
// is set; force discards the local modifications.
func (e *Engine) Update(dest config.Destination, spec config.PackageSpec, force bool) (*UpdateResult, error) {
	logger := e.scoped(dest, spec.Name)
	defer logging.LogOperationStart(logger, "update")()

	result := &UpdateResult{Destination: dest.Name, Package: spec.Name}

	if spec.UpdatesDisabled && !force {
		logger.Info().Msg("Updates disabled, skipping")
		result.Status = StatusDisabled
		return result, nil
	}

	installed, err := e.IsInstalled(dest, spec)
	if err != nil {
		return nil, err
	}
	if !installed {
		return nil, errors.NotInstalled(dest.Name, spec.Name)
	}

	loc := e.locate(dest, spec)

	dirty, err := e.vcs.HasLocalChanges(loc.slot)
	if err != nil {
		return nil, err
	}
	if dirty {
		if !force {
			logger.Warn().Msg("Package has local modifications, skipping")
			result.Status = StatusSkipped
			return result, nil
		}
		logger.Info().Msg("Discarding local modifications")
		if err := e.vcs.DiscardLocalChanges(loc.slot); err != nil {
			return nil, err
		}
	}

	if result.Before, err = e.vcs.CurrentCommit(loc.slot); err != nil {
		return nil, err
	}
	if err := e.vcs.FastForward(loc.slot, spec.Branch); err != nil {
		return nil, err
	}
	if result.After, err = e.vcs.CurrentCommit(loc.slot); err != nil {
		return nil, err
	}

	result.Status = StatusUpToDate
	if result.Before.Hash != result.After.Hash {
		result.Status = StatusUpdated
	}

	if spec.EffectiveMethod() == config.MethodCopy && (result.Status == StatusUpdated || force) {
		if err := e.materialize(loc, spec); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("status", string(result.Status)).
		Str("commit", result.After.ShortHash()).
		Msg("Package updated")
	return result, nil
}
