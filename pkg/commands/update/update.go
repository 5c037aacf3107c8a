package update

import (
	"go.uber.org/multierr"

	"github.com/arthur-debert/gitpkg/pkg/commands/internal"
	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/reconcile"
)

// UpdateOptions defines the options for UpdatePackages
type UpdateOptions struct {
	Dir       string
	GitBinary string

	// Ref selects one package, "name" or "destination/name". Empty updates
	// every package.
	Ref   string
	Force bool

	OnPackage func(dest, name string)
}

// UpdatePackages fast-forwards installed packages to their upstream
func UpdatePackages(opts UpdateOptions) ([]*reconcile.UpdateResult, error) {
	log := internal.Logger("update")
	log.Debug().
		Str("command", "UpdatePackages").
		Str("ref", opts.Ref).
		Bool("force", opts.Force).
		Msg("Executing command")

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	targets := project.Store.All()
	if opts.Ref != "" {
		found, err := project.FindPackage(opts.Ref, "")
		if err != nil {
			return nil, err
		}
		targets = []config.Located{found}
	}

	var results []*reconcile.UpdateResult
	var errs error
	for _, l := range targets {
		if opts.OnPackage != nil {
			opts.OnPackage(l.Destination.Name, l.Package.Name)
		}
		res, err := project.Engine.Update(l.Destination, l.Package, opts.Force)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, res)
	}

	return results, errs
}
