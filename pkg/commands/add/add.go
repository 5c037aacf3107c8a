package add

import (
	"strings"

	"github.com/arthur-debert/gitpkg/pkg/commands/internal"
	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
)

// AddOptions defines the options for AddPackage
type AddOptions struct {
	Dir       string
	GitBinary string

	URL string

	// Name defaults to the repository name parsed from URL
	Name string

	// DestName selects the destination. When empty the destination is
	// inferred, see AddPackage.
	DestName string

	PackageRoot string

	// PackageRootWithName sets the package root and names the package
	// after its last segment
	PackageRootWithName string

	Branch         string
	DisableUpdates bool
	InstallMethod  config.InstallMethod
}

// AddResult describes an installed package
type AddResult struct {
	Destination string `json:"destination" yaml:"destination"`
	Package     string `json:"package" yaml:"package"`
	// Location is the artifact path relative to the project root
	Location string `json:"location" yaml:"location"`
}

// AddPackage records a package and installs it.
//
// Without a destination name the only destination is used, or the one
// containing the invocation directory. A project with no destinations at
// all gets the invocation directory registered as one. If the package root
// does not exist in the repository the package is removed again.
func AddPackage(opts AddOptions) (*AddResult, error) {
	log := internal.Logger("add")
	log.Debug().
		Str("command", "AddPackage").
		Str("url", opts.URL).
		Str("name", opts.Name).
		Str("destName", opts.DestName).
		Msg("Executing command")

	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a repository url is required")
	}

	spec := config.PackageSpec{
		Name:            opts.Name,
		URL:             opts.URL,
		PackageRoot:     opts.PackageRoot,
		UpdatesDisabled: opts.DisableUpdates,
		Branch:          opts.Branch,
		InstallMethod:   opts.InstallMethod,
	}
	if opts.PackageRootWithName != "" {
		root := strings.TrimRight(opts.PackageRootWithName, "/")
		spec.PackageRoot = root
		spec.Name = root[strings.LastIndex(root, "/")+1:]
	}
	if spec.Name == "" {
		spec.Name = RepositoryName(opts.URL)
	}
	if spec.Name == "" {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"cannot derive a package name from '%s', please pass --name", opts.URL)
	}

	project, err := internal.OpenProject(internal.ProjectOptions{Dir: opts.Dir, GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	dest, err := project.ResolveDestination(opts.DestName, true)
	if err != nil {
		return nil, err
	}

	registered := project.Store.HasPackage(dest.Name, spec.Name)

	if err := project.Engine.Install(dest, spec); err != nil {
		if errors.IsErrorCode(err, errors.ErrPackageRootNotFound) && !registered {
			log.Warn().Str("package", spec.Name).Msg("Package root not found, removing package")
			if rbErr := project.Engine.Uninstall(dest, spec.Name); rbErr != nil {
				log.Error().Err(rbErr).Msg("Rollback failed")
			}
		}
		return nil, err
	}

	return &AddResult{
		Destination: dest.Name,
		Package:     spec.Name,
		Location:    project.Rel(project.Paths.InstallPath(dest.Path, spec.Name)),
	}, nil
}
