package install

import (
	"go.uber.org/multierr"

	"github.com/arthur-debert/gitpkg/pkg/commands/internal"
	"github.com/arthur-debert/gitpkg/pkg/errors"
)

// InstallOptions defines the options for InstallPackages
type InstallOptions struct {
	Dir       string
	GitBinary string

	// OnPackage is called before each package is processed
	OnPackage func(dest, name string)
}

// InstallResult lists packages by outcome, as dest/name
type InstallResult struct {
	Installed []string `json:"installed" yaml:"installed"`
	Unchanged []string `json:"unchanged" yaml:"unchanged"`
	Failed    []string `json:"failed" yaml:"failed"`
}

// InstallPackages installs every declared package, destinations in
// registration order and packages in config order. Packages that are
// already installed are left alone. A failing package does not stop the
// others; all failures are returned together.
func InstallPackages(opts InstallOptions) (*InstallResult, error) {
	log := internal.Logger("install")
	log.Debug().Str("command", "InstallPackages").Msg("Executing command")

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	result := &InstallResult{}
	var errs error

	for _, l := range project.Store.All() {
		ref := l.Destination.Name + "/" + l.Package.Name
		if opts.OnPackage != nil {
			opts.OnPackage(l.Destination.Name, l.Package.Name)
		}

		err := project.Engine.Install(l.Destination, l.Package)
		switch {
		case err == nil:
			result.Installed = append(result.Installed, ref)
		case errors.IsErrorCode(err, errors.ErrAlreadyInstalled):
			result.Unchanged = append(result.Unchanged, ref)
		default:
			log.Error().Err(err).Str("package", ref).Msg("Install failed")
			result.Failed = append(result.Failed, ref)
			errs = multierr.Append(errs, err)
		}
	}

	log.Info().
		Int("installed", len(result.Installed)).
		Int("unchanged", len(result.Unchanged)).
		Int("failed", len(result.Failed)).
		Msg("Command finished")
	return result, errs
}
