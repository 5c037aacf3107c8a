// Package settings loads gitpkg's own tool settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file at $XDG_CONFIG_HOME/gitpkg/config.toml, if present
//  3. GITPKG_* environment variables (GITPKG_GIT_BINARY -> git.binary)
//  4. explicit overrides, usually command line flags
//
// These settings are distinct from a project's .gitpkg.toml, which holds
// declared packages and is handled by pkg/config.
package settings
