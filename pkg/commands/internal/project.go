package internal

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
	"github.com/arthur-debert/gitpkg/pkg/reconcile"
	"github.com/arthur-debert/gitpkg/pkg/vcs"
)

// maxSuggestions caps the "did you mean" list of unknown package errors
const maxSuggestions = 3

// ProjectOptions locates the project a command operates on
type ProjectOptions struct {
	// Dir is the directory the command was invoked from. The project root
	// is the root of the git repository containing it.
	Dir string

	// GitBinary overrides the git executable
	GitBinary string
}

// Project bundles everything a command needs
type Project struct {
	Dir    string
	Paths  paths.Paths
	Store  *config.Store
	Host   vcs.Host
	Engine *reconcile.Engine
	FS     filesystem.FS
}

// OpenProject discovers the project root from opts.Dir and loads its config
func OpenProject(opts ProjectOptions) (*Project, error) {
	logger := logging.GetLogger("commands.project")

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", opts.Dir)
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	fsys := filesystem.NewOS()
	host := vcs.NewGitCLI(opts.GitBinary, fsys)

	repo, err := host.OpenRepository(dir)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(repo.Root)
	if err != nil {
		return nil, err
	}

	store, err := config.Open(fsys, p.ConfigPath())
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("dir", dir).
		Str("root", p.ProjectRoot()).
		Int("destinations", len(store.Destinations())).
		Msg("Project opened")

	return &Project{
		Dir:    dir,
		Paths:  p,
		Store:  store,
		Host:   host,
		Engine: reconcile.New(store, p, fsys, host),
		FS:     fsys,
	}, nil
}

// Abs resolves a user supplied path against the invocation directory
func (p *Project) Abs(path string) string {
	path = paths.ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Dir, path)
}

// Rel renders an absolute path relative to the project root for messages
func (p *Project) Rel(path string) string {
	rel, err := paths.RelativePath(p.Paths.ProjectRoot(), path)
	if err != nil {
		return path
	}
	return paths.ToSlash(rel)
}

// AddDestination registers dir, which must lie inside the project, as a
// destination named name and creates the directory
func (p *Project) AddDestination(name, dir string) (config.Destination, error) {
	abs := p.Abs(dir)
	rel, err := p.Paths.RelativeToRoot(abs)
	if err != nil {
		return config.Destination{}, err
	}
	if name == "" {
		name = filepath.Base(abs)
	}

	dest, err := p.Store.AddDestination(name, rel)
	if err != nil {
		return config.Destination{}, err
	}

	if err := p.FS.MkdirAll(abs, 0755); err != nil {
		return config.Destination{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", abs).
			WithDetail(errors.DetailPath, abs)
	}
	return dest, nil
}

// ResolveDestination picks the destination a new package goes to: the named
// one, the only one, or the one containing the invocation directory. With
// autoRegister set and no destinations at all, the invocation directory
// becomes one.
func (p *Project) ResolveDestination(name string, autoRegister bool) (config.Destination, error) {
	if name != "" {
		dest, ok := p.Store.Destination(name)
		if !ok {
			return config.Destination{}, errors.UnknownDestination(name)
		}
		return dest, nil
	}

	dests := p.Store.Destinations()
	switch len(dests) {
	case 0:
		if !autoRegister {
			return config.Destination{}, errors.AmbiguousDestination(nil)
		}
		logger := logging.GetLogger("commands.project")
		logger.Debug().
			Str("dir", p.Dir).
			Msg("Registering invocation directory as destination")
		return p.AddDestination("", p.Dir)
	case 1:
		return dests[0], nil
	}

	for _, d := range dests {
		if paths.ContainsPath(p.Paths.DestinationPath(d.Path), p.Dir) {
			return d, nil
		}
	}

	names := make([]string, len(dests))
	for i, d := range dests {
		names[i] = d.Name
	}
	return config.Destination{}, errors.AmbiguousDestination(names)
}

// FindPackage resolves a package reference, either "name" or
// "destination/name". destName, when set, restricts the lookup.
func (p *Project) FindPackage(ref, destName string) (config.Located, error) {
	name := ref
	if d, n, ok := strings.Cut(ref, "/"); ok && destName == "" {
		if _, known := p.Store.Destination(d); known {
			destName, name = d, n
		}
	}

	if destName != "" {
		dest, ok := p.Store.Destination(destName)
		if !ok {
			return config.Located{}, errors.UnknownDestination(destName)
		}
		spec, ok := p.Store.FindPackage(destName, name)
		if !ok {
			return config.Located{}, errors.UnknownPackage(destName, name, p.suggest(name)...)
		}
		return config.Located{Destination: dest, Package: spec}, nil
	}

	found := p.Store.FindPackageEverywhere(name)
	switch len(found) {
	case 0:
		return config.Located{}, errors.UnknownPackage("", name, p.suggest(name)...)
	case 1:
		return found[0], nil
	}

	candidates := make([]string, len(found))
	for i, l := range found {
		candidates[i] = l.Destination.Name
	}
	return config.Located{}, errors.AmbiguousDestination(candidates)
}

// suggest returns the recorded package names closest to name
func (p *Project) suggest(name string) []string {
	names := p.Store.Config().PackageNames()
	matches := fuzzy.Find(name, names)

	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Logger returns a command scoped logger
func Logger(command string) zerolog.Logger {
	return logging.GetLogger("commands." + command)
}
