// Package drift decides whether a declared package needs a reinstall.
//
// Two kinds of drift are detected. Config drift: the declared package
// differs from the recorded one in a mutable setting. Artifact drift: the
// live install no longer matches the recorded entry (wrong branch checked
// out, link replaced by a regular directory, link pointing elsewhere).
//
// A changed URL is never drift. It is reported as URL_CHANGED and the
// recorded entry is left untouched.
package drift

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/identity"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// Reason explains why a package was found changed
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonConfig      Reason = "config"
	ReasonBranch      Reason = "branch"
	ReasonNotSymlink  Reason = "not-a-symlink"
	ReasonWrongTarget Reason = "wrong-link-target"
)

// Recorded gives access to the recorded specs
type Recorded interface {
	FindPackage(dest, name string) (config.PackageSpec, bool)
}

// Detector compares declared specs with recorded specs and live artifacts
type Detector struct {
	recorded Recorded
	paths    paths.Paths
	fs       filesystem.FS
	vcs      vcs.Host
	logger   zerolog.Logger
}

// New creates a Detector
func New(recorded Recorded, p paths.Paths, fsys filesystem.FS, host vcs.Host) *Detector {
	return &Detector{
		recorded: recorded,
		paths:    p,
		fs:       fsys,
		vcs:      host,
		logger:   logging.GetLogger("drift"),
	}
}

// HasChanged reports whether declared requires a reinstall
func (d *Detector) HasChanged(dest config.Destination, declared config.PackageSpec) (bool, error) {
	reason, err := d.Check(dest, declared)
	return reason != ReasonNone, err
}

// Check is HasChanged returning the reason
func (d *Detector) Check(dest config.Destination, declared config.PackageSpec) (Reason, error) {
	recorded, ok := d.recorded.FindPackage(dest.Name, declared.Name)
	if !ok {
		return ReasonNone, errors.UnknownPackage(dest.Name, declared.Name)
	}

	if recorded.URL != declared.URL {
		return ReasonNone, errors.URLChanged(dest.Name, declared.Name, recorded.URL, declared.URL)
	}

	logger := d.logger.With().Str("destination", dest.Name).Str("package", declared.Name).Logger()

	if !recorded.SameSettings(declared) {
		logger.Debug().Msg("Package settings changed")
		return ReasonConfig, nil
	}

	id := identity.For(d.paths.ProjectRoot(), dest.Path, declared.Name)
	slot := d.paths.StorageSlot(id.String())

	if declared.Branch != "" {
		current, err := d.vcs.CurrentBranch(slot)
		if err == nil && current != declared.Branch {
			logger.Debug().
				Str("checkedOut", current).
				Str("wanted", declared.Branch).
				Msg("Checked out branch differs from pinned branch")
			return ReasonBranch, nil
		}
	}

	if declared.EffectiveMethod() != config.MethodLink {
		return ReasonNone, nil
	}

	artifact := d.paths.InstallPath(dest.Path, declared.Name)
	if !filesystem.IsSymlink(d.fs, artifact) {
		logger.Debug().Str("artifact", artifact).Msg("Artifact is not a symlink")
		return ReasonNotSymlink, nil
	}

	expected := d.paths.PackageRootPath(id.String(), declared.EffectivePackageRoot())
	if !LinkPointsTo(d.fs, artifact, expected) {
		logger.Debug().Str("artifact", artifact).Str("expected", expected).Msg("Artifact points elsewhere")
		return ReasonWrongTarget, nil
	}

	return ReasonNone, nil
}

// LinkPointsTo reports whether the symlink at link resolves to target.
// Relative link targets are resolved against the link's directory.
func LinkPointsTo(fsys filesystem.FS, link, target string) bool {
	dest, err := fsys.Readlink(link)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	if filepath.Clean(dest) == filepath.Clean(target) {
		return true
	}

	// Compare fully resolved paths when either side crosses a symlink
	resolvedDest, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return false
	}
	resolvedTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return false
	}
	return resolvedDest == resolvedTarget
}
