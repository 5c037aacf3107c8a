package config

import (
	"path/filepath"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
)

// Store binds a Config to the file it is persisted in. Every successful
// mutation is written out before the method returns; a failed write leaves
// the in-memory Config unchanged.
type Store struct {
	fs   filesystem.FS
	path string
	cfg  *Config
}

// Open loads the document at path
func Open(fsys filesystem.FS, path string) (*Store, error) {
	cfg, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	return &Store{fs: fsys, path: path, cfg: cfg}, nil
}

// NewStore wraps an existing Config without reading the file
func NewStore(fsys filesystem.FS, path string, cfg *Config) *Store {
	if cfg == nil {
		cfg = New()
	}
	return &Store{fs: fsys, path: path, cfg: cfg}
}

// Path returns the document location
func (s *Store) Path() string {
	return s.path
}

// Config returns a copy of the current declared intent
func (s *Store) Config() *Config {
	return s.cfg.Clone()
}

// Destinations returns the destinations in registration order
func (s *Store) Destinations() []Destination {
	return append([]Destination(nil), s.cfg.Destinations...)
}

// Destination looks up a destination by name
func (s *Store) Destination(name string) (Destination, bool) {
	return s.cfg.Destination(name)
}

// Packages returns the packages of a destination in config order
func (s *Store) Packages(dest string) []PackageSpec {
	return s.cfg.PackagesOf(dest)
}

// FindPackage looks up the recorded spec of a package
func (s *Store) FindPackage(dest, name string) (PackageSpec, bool) {
	return s.cfg.FindPackage(dest, name)
}

// HasPackage reports whether a destination declares a package
func (s *Store) HasPackage(dest, name string) bool {
	return s.cfg.HasPackage(dest, name)
}

// FindPackageEverywhere returns every destination declaring name
func (s *Store) FindPackageEverywhere(name string) []Located {
	return s.cfg.FindPackageEverywhere(name)
}

// All returns every declared package in processing order
func (s *Store) All() []Located {
	return s.cfg.All()
}

// AddDestination registers a destination. relPath must already be
// relative to the project root.
func (s *Store) AddDestination(name, relPath string) (Destination, error) {
	if err := paths.ValidateName("destination", name); err != nil {
		return Destination{}, err
	}
	if err := paths.ValidatePath(relPath); err != nil {
		return Destination{}, err
	}

	dest := Destination{Name: name, Path: paths.ToSlash(filepath.Clean(relPath))}

	for _, d := range s.cfg.Destinations {
		if d.Name == name {
			return Destination{}, errors.DestinationNameConflict(name)
		}
		if paths.ToSlash(filepath.Clean(d.Path)) == dest.Path {
			return Destination{}, errors.DestinationPathConflict(relPath, d.Name)
		}
	}

	err := s.mutate(func(cfg *Config) error {
		cfg.Destinations = append(cfg.Destinations, dest)
		return nil
	})
	if err != nil {
		return Destination{}, err
	}

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("destination", name).
		Str("path", dest.Path).
		Msg("Added destination")
	return dest, nil
}

// AddPackage appends spec to a destination's package sequence
func (s *Store) AddPackage(dest string, spec PackageSpec) error {
	if _, ok := s.cfg.Destination(dest); !ok {
		return errors.UnknownDestination(dest)
	}
	if err := validateSpec(spec); err != nil {
		return err
	}
	if s.cfg.HasPackage(dest, spec.Name) {
		return errors.DuplicatePackage(dest, spec.Name)
	}

	err := s.mutate(func(cfg *Config) error {
		cfg.Packages[dest] = append(cfg.Packages[dest], spec.Normalized())
		return nil
	})
	if err != nil {
		return err
	}

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("destination", dest).
		Str("package", spec.Name).
		Msg("Added package")
	return nil
}

// RemovePackage drops a package from a destination's sequence
func (s *Store) RemovePackage(dest, name string) error {
	i := s.cfg.indexOf(dest, name)
	if i < 0 {
		return errors.UnknownPackage(dest, name)
	}

	err := s.mutate(func(cfg *Config) error {
		pkgs := cfg.Packages[dest]
		cfg.Packages[dest] = append(pkgs[:i:i], pkgs[i+1:]...)
		if len(cfg.Packages[dest]) == 0 {
			delete(cfg.Packages, dest)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("destination", dest).
		Str("package", name).
		Msg("Removed package")
	return nil
}

// ReplacePackage swaps the recorded spec of a package for spec, keeping its
// position in the sequence. The URL cannot change.
func (s *Store) ReplacePackage(dest string, spec PackageSpec) error {
	i := s.cfg.indexOf(dest, spec.Name)
	if i < 0 {
		return errors.UnknownPackage(dest, spec.Name)
	}
	recorded := s.cfg.Packages[dest][i]
	if recorded.URL != spec.URL {
		return errors.URLChanged(dest, spec.Name, recorded.URL, spec.URL)
	}
	if err := validateSpec(spec); err != nil {
		return err
	}

	return s.mutate(func(cfg *Config) error {
		cfg.Packages[dest][i] = spec.Normalized()
		return nil
	})
}

// mutate applies fn to a copy, saves it and only then adopts it
func (s *Store) mutate(fn func(cfg *Config) error) error {
	next := s.cfg.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := Save(s.fs, next, s.path); err != nil {
		return err
	}
	s.cfg = next
	return nil
}
