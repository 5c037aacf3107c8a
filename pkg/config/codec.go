package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/paths"
)

// Load reads the document at path. An absent file yields an empty Config.
func Load(fsys filesystem.FS, path string) (*Config, error) {
	logger := logging.GetLogger("config")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No config file, starting empty")
			return New(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail(errors.DetailPath, path)
	}

	return Parse(data, path)
}

// Parse decodes and validates a document. path is only used in diagnostics.
func Parse(data []byte, path string) (*Config, error) {
	cfg := New()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed config %s", path).
			WithDetail(errors.DetailPath, path)
	}
	if cfg.Packages == nil {
		cfg.Packages = make(map[string][]PackageSpec)
	}

	for dest, pkgs := range cfg.Packages {
		for i := range pkgs {
			pkgs[i] = pkgs[i].Normalized()
		}
		cfg.Packages[dest] = pkgs
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid config %s", path).
			WithDetail(errors.DetailPath, path)
	}

	return cfg, nil
}

// Validate checks the invariants every loaded or saved Config holds
func Validate(cfg *Config) error {
	names := make(map[string]bool)
	destPaths := make(map[string]string)
	for _, d := range cfg.Destinations {
		if err := paths.ValidateName("destination", d.Name); err != nil {
			return err
		}
		if names[d.Name] {
			return errors.DestinationNameConflict(d.Name)
		}
		names[d.Name] = true

		clean := paths.ToSlash(filepath.Clean(d.Path))
		if other, ok := destPaths[clean]; ok {
			return errors.DestinationPathConflict(d.Path, other)
		}
		destPaths[clean] = d.Name
	}

	for dest, pkgs := range cfg.Packages {
		if !names[dest] {
			return errors.UnknownDestination(dest)
		}
		seen := make(map[string]bool)
		for _, p := range pkgs {
			if err := validateSpec(p); err != nil {
				return err
			}
			if seen[p.Name] {
				return errors.DuplicatePackage(dest, p.Name)
			}
			seen[p.Name] = true
		}
	}

	return nil
}

func validateSpec(p PackageSpec) error {
	if err := paths.ValidateName("package", p.Name); err != nil {
		return err
	}
	if p.URL == "" {
		return errors.Newf(errors.ErrInvalidInput, "package '%s' has no url", p.Name).
			WithDetail(errors.DetailPackage, p.Name)
	}
	if err := paths.ValidatePackageRoot(p.EffectivePackageRoot()); err != nil {
		return err
	}
	if _, ok := ParseInstallMethod(string(p.InstallMethod)); !ok {
		return errors.Newf(errors.ErrInvalidInput, "package '%s' has unknown install method '%s'",
			p.Name, p.InstallMethod).WithDetail(errors.DetailPackage, p.Name)
	}
	return nil
}

// Marshal encodes cfg deterministically
func Marshal(cfg *Config) ([]byte, error) {
	out := &Config{
		Destinations: cfg.Destinations,
		Packages:     make(map[string][]PackageSpec),
	}
	for dest, pkgs := range cfg.Packages {
		if len(pkgs) == 0 {
			continue
		}
		normalized := make([]PackageSpec, len(pkgs))
		for i, p := range pkgs {
			normalized[i] = p.Normalized()
		}
		out.Packages[dest] = normalized
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(out); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path through a temporary file renamed over the target
func Save(fsys filesystem.FS, cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "refusing to save invalid config")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to create directory for %s", path)
	}

	tmpPath := path + ".tmp"
	if err := fsys.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", tmpPath).
			WithDetail(errors.DetailPath, tmpPath)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to replace %s", path).
			WithDetail(errors.DetailPath, path)
	}

	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Config written")
	return nil
}
