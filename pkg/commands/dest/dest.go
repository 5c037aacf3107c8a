package dest

import (
	"github.com/arthur-debert/gitpkg/pkg/commands/internal"
)

// DestinationInfo describes a registered destination
type DestinationInfo struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Packages int    `json:"packages" yaml:"packages"`
}

// ListOptions defines the options for ListDestinations
type ListOptions struct {
	Dir       string
	GitBinary string
}

// ListDestinations returns the destinations in registration order
func ListDestinations(opts ListOptions) ([]DestinationInfo, error) {
	log := internal.Logger("dest")
	log.Debug().Str("command", "ListDestinations").Msg("Executing command")

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	dests := project.Store.Destinations()
	infos := make([]DestinationInfo, len(dests))
	for i, d := range dests {
		infos[i] = DestinationInfo{
			Name:     d.Name,
			Path:     d.Path,
			Packages: len(project.Store.Packages(d.Name)),
		}
	}
	return infos, nil
}

// AddOptions defines the options for AddDestination
type AddOptions struct {
	Dir       string
	GitBinary string

	// Path is the destination directory, relative to Dir or absolute
	Path string

	// Name defaults to the base name of Path
	Name string
}

// AddDestination registers a directory inside the project as a destination
func AddDestination(opts AddOptions) (*DestinationInfo, error) {
	log := internal.Logger("dest")
	log.Debug().
		Str("command", "AddDestination").
		Str("path", opts.Path).
		Str("name", opts.Name).
		Msg("Executing command")

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	d, err := project.AddDestination(opts.Name, opts.Path)
	if err != nil {
		return nil, err
	}

	log.Info().Str("destination", d.Name).Str("path", d.Path).Msg("Destination added")
	return &DestinationInfo{Name: d.Name, Path: d.Path}, nil
}
