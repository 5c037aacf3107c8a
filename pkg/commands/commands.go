// Package commands provides high-level command implementations for gitpkg.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the reconciliation engine.
//
// Each command is implemented in its own subdirectory:
//   - dest/     - ListDestinations and AddDestination
//   - add/      - AddPackage command
//   - list/     - ListPackages command
//   - remove/   - RemovePackage command
//   - install/  - InstallPackages command
//   - update/   - UpdatePackages command
//   - internal/ - Project discovery and package lookup
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"github.com/arthur-debert/gitpkg/pkg/commands/add"
	"github.com/arthur-debert/gitpkg/pkg/commands/dest"
	"github.com/arthur-debert/gitpkg/pkg/commands/install"
	"github.com/arthur-debert/gitpkg/pkg/commands/list"
	"github.com/arthur-debert/gitpkg/pkg/commands/remove"
	"github.com/arthur-debert/gitpkg/pkg/commands/update"
	"github.com/arthur-debert/gitpkg/pkg/reconcile"
)

// ListDestinations returns the registered destinations.
type ListDestinationsOptions = dest.ListOptions
type DestinationInfo = dest.DestinationInfo

func ListDestinations(opts ListDestinationsOptions) ([]DestinationInfo, error) {
	return dest.ListDestinations(opts)
}

// AddDestination registers a directory inside the project as a destination.
type AddDestinationOptions = dest.AddOptions

func AddDestination(opts AddDestinationOptions) (*DestinationInfo, error) {
	return dest.AddDestination(opts)
}

// AddPackage records a package and installs it.
type AddPackageOptions = add.AddOptions
type AddPackageResult = add.AddResult

func AddPackage(opts AddPackageOptions) (*AddPackageResult, error) {
	return add.AddPackage(opts)
}

// ListPackages reports every declared package.
type ListPackagesOptions = list.ListOptions
type ListPackagesResult = list.ListResult

func ListPackages(opts ListPackagesOptions) (*ListPackagesResult, error) {
	return list.ListPackages(opts)
}

// RemovePackage uninstalls a package and drops it from the config.
type RemovePackageOptions = remove.RemoveOptions
type RemovePackageResult = remove.RemoveResult

func RemovePackage(opts RemovePackageOptions) (*RemovePackageResult, error) {
	return remove.RemovePackage(opts)
}

// InstallPackages installs every declared package.
type InstallPackagesOptions = install.InstallOptions
type InstallPackagesResult = install.InstallResult

func InstallPackages(opts InstallPackagesOptions) (*InstallPackagesResult, error) {
	return install.InstallPackages(opts)
}

// UpdatePackages fast-forwards installed packages.
type UpdatePackagesOptions = update.UpdateOptions

func UpdatePackages(opts UpdatePackagesOptions) ([]*reconcile.UpdateResult, error) {
	return update.UpdatePackages(opts)
}
