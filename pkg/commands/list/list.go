package list

import (
	"github.com/arthur-debert/gitpkg/pkg/commands/internal"
	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// ListOptions defines the options for ListPackages
type ListOptions struct {
	Dir       string
	GitBinary string
}

// PackageInfo is one row of the listing
type PackageInfo struct {
	Name            string               `json:"name" yaml:"name"`
	URL             string               `json:"url" yaml:"url"`
	PackageRoot     string               `json:"package-root" yaml:"package-root"`
	Branch          string               `json:"branch,omitempty" yaml:"branch,omitempty"`
	InstallMethod   config.InstallMethod `json:"install-method" yaml:"install-method"`
	UpdatesDisabled bool                 `json:"updates-disabled" yaml:"updates-disabled"`
	Installed       bool                 `json:"installed" yaml:"installed"`
	Location        string               `json:"location" yaml:"location"`
	Commit          *vcs.Commit          `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// DestinationInfo groups the packages of one destination
type DestinationInfo struct {
	Name     string        `json:"name" yaml:"name"`
	Path     string        `json:"path" yaml:"path"`
	Packages []PackageInfo `json:"packages" yaml:"packages"`
}

// ListResult holds the listing in registration order
type ListResult struct {
	Destinations []DestinationInfo `json:"destinations" yaml:"destinations"`
}

// PackageCount returns the number of packages across all destinations
func (r *ListResult) PackageCount() int {
	n := 0
	for _, d := range r.Destinations {
		n += len(d.Packages)
	}
	return n
}

// ListPackages reports every declared package with its install state and
// checked out commit
func ListPackages(opts ListOptions) (*ListResult, error) {
	log := internal.Logger("list")
	log.Debug().Str("command", "ListPackages").Msg("Executing command")

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	result := &ListResult{Destinations: []DestinationInfo{}}
	for _, d := range project.Store.Destinations() {
		info := DestinationInfo{Name: d.Name, Path: d.Path, Packages: []PackageInfo{}}

		for _, spec := range project.Store.Packages(d.Name) {
			commit, err := project.Engine.Stats(d, spec)
			if err != nil {
				log.Debug().Err(err).Str("package", spec.Name).Msg("Could not read commit")
				commit = nil
			}

			info.Packages = append(info.Packages, PackageInfo{
				Name:            spec.Name,
				URL:             spec.URL,
				PackageRoot:     spec.EffectivePackageRoot(),
				Branch:          spec.Branch,
				InstallMethod:   spec.EffectiveMethod(),
				UpdatesDisabled: spec.UpdatesDisabled,
				Installed:       commit != nil,
				Location:        project.Rel(project.Paths.InstallPath(d.Path, spec.Name)),
				Commit:          commit,
			})
		}
		result.Destinations = append(result.Destinations, info)
	}

	log.Info().
		Str("command", "ListPackages").
		Int("packageCount", result.PackageCount()).
		Msg("Command finished")
	return result, nil
}
