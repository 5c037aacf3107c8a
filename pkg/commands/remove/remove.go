package remove

import (
	"github.com/arthur-debert/gitpkg/pkg/commands/internal"
)

// RemoveOptions defines the options for RemovePackage
type RemoveOptions struct {
	Dir       string
	GitBinary string

	// Ref is "name" or "destination/name"
	Ref      string
	DestName string
}

// RemoveResult names the removed package
type RemoveResult struct {
	Destination string `json:"destination" yaml:"destination"`
	Package     string `json:"package" yaml:"package"`
}

// RemovePackage uninstalls a package and drops it from the config
func RemovePackage(opts RemoveOptions) (*RemoveResult, error) {
	log := internal.Logger("remove")
	log.Debug().
		Str("command", "RemovePackage").
		Str("ref", opts.Ref).
		Str("destName", opts.DestName).
		Msg("Executing command")

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	found, err := project.FindPackage(opts.Ref, opts.DestName)
	if err != nil {
		return nil, err
	}

	if err := project.Engine.Uninstall(found.Destination, found.Package.Name); err != nil {
		return nil, err
	}

	return &RemoveResult{Destination: found.Destination.Name, Package: found.Package.Name}, nil
}
