package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gitpkg/pkg/paths"
)

// InstallMethod selects how a package is materialized in its destination
type InstallMethod string

const (
	// MethodLink creates a relative symlink to the package root (default)
	MethodLink InstallMethod = "link"
	// MethodCopy recursively copies the package root
	MethodCopy InstallMethod = "copy"
)

// ParseInstallMethod accepts "", "link" and "copy"
func ParseInstallMethod(s string) (InstallMethod, bool) {
	switch InstallMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodLink:
		return MethodLink, true
	case MethodCopy:
		return MethodCopy, true
	}
	return "", false
}

// Destination is a named directory, relative to the project root, that
// packages are installed into
type Destination struct {
	Name string `toml:"name" json:"name" yaml:"name"`
	Path string `toml:"path" json:"path" yaml:"path"`
}

// PackageSpec is one declared dependency
type PackageSpec struct {
	Name            string        `toml:"name" json:"name" yaml:"name"`
	URL             string        `toml:"url" json:"url" yaml:"url"`
	PackageRoot     string        `toml:"package-root" json:"package-root" yaml:"package-root"`
	UpdatesDisabled bool          `toml:"updates-disabled,omitempty" json:"updates-disabled,omitempty" yaml:"updates-disabled,omitempty"`
	Branch          string        `toml:"branch,omitempty" json:"branch,omitempty" yaml:"branch,omitempty"`
	InstallMethod   InstallMethod `toml:"install-method,omitempty" json:"install-method,omitempty" yaml:"install-method,omitempty"`
}

// EffectiveMethod returns the install method with the default applied
func (p PackageSpec) EffectiveMethod() InstallMethod {
	if p.InstallMethod == "" {
		return MethodLink
	}
	return p.InstallMethod
}

// EffectivePackageRoot returns the package root with the default applied
func (p PackageSpec) EffectivePackageRoot() string {
	if p.PackageRoot == "" {
		return paths.DefaultPackageRoot
	}
	return p.PackageRoot
}

// Normalized returns the spec in its persisted form: default package root
// filled in, cleaned with forward slashes, and the default install method
// left implicit.
func (p PackageSpec) Normalized() PackageSpec {
	p.PackageRoot = paths.ToSlash(filepath.Clean(p.EffectivePackageRoot()))
	if p.InstallMethod == MethodLink {
		p.InstallMethod = ""
	}
	return p
}

// SameSettings reports whether the mutable settings of two specs match.
// Name and URL are not compared.
func (p PackageSpec) SameSettings(other PackageSpec) bool {
	a, b := p.Normalized(), other.Normalized()
	return a.PackageRoot == b.PackageRoot &&
		a.UpdatesDisabled == b.UpdatesDisabled &&
		a.Branch == b.Branch &&
		a.InstallMethod == b.InstallMethod
}

// Config is the aggregate of declared intent
type Config struct {
	Destinations []Destination            `toml:"destinations,omitempty" json:"destinations"`
	Packages     map[string][]PackageSpec `toml:"packages,omitempty" json:"packages"`
}

// New returns an empty Config
func New() *Config {
	return &Config{Packages: make(map[string][]PackageSpec)}
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := New()
	out.Destinations = append([]Destination(nil), c.Destinations...)
	for dest, pkgs := range c.Packages {
		out.Packages[dest] = append([]PackageSpec(nil), pkgs...)
	}
	return out
}

// Destination looks up a destination by name
func (c *Config) Destination(name string) (Destination, bool) {
	for _, d := range c.Destinations {
		if d.Name == name {
			return d, true
		}
	}
	return Destination{}, false
}

// PackagesOf returns the packages of a destination in config order
func (c *Config) PackagesOf(dest string) []PackageSpec {
	return append([]PackageSpec(nil), c.Packages[dest]...)
}

// FindPackage looks up a package by name within a destination
func (c *Config) FindPackage(dest, name string) (PackageSpec, bool) {
	if i := c.indexOf(dest, name); i >= 0 {
		return c.Packages[dest][i], true
	}
	return PackageSpec{}, false
}

// HasPackage reports whether a destination declares a package
func (c *Config) HasPackage(dest, name string) bool {
	return c.indexOf(dest, name) >= 0
}

// Located pairs a package with the destination declaring it
type Located struct {
	Destination Destination
	Package     PackageSpec
}

// FindPackageEverywhere returns every destination declaring a package with
// this name, in destination registration order
func (c *Config) FindPackageEverywhere(name string) []Located {
	var found []Located
	for _, d := range c.Destinations {
		if pkg, ok := c.FindPackage(d.Name, name); ok {
			found = append(found, Located{Destination: d, Package: pkg})
		}
	}
	return found
}

// All returns every declared package, destinations in registration order
// and packages in config order
func (c *Config) All() []Located {
	var all []Located
	for _, d := range c.Destinations {
		for _, pkg := range c.Packages[d.Name] {
			all = append(all, Located{Destination: d, Package: pkg})
		}
	}
	return all
}

// PackageNames returns the names of all declared packages, qualified as
// dest/name
func (c *Config) PackageNames() []string {
	var names []string
	for _, l := range c.All() {
		names = append(names, l.Destination.Name+"/"+l.Package.Name)
	}
	return names
}

func (c *Config) indexOf(dest, name string) int {
	for i, p := range c.Packages[dest] {
		if p.Name == name {
			return i
		}
	}
	return -1
}
