// Package filesystem provides the filesystem abstraction used by gitpkg.
//
// All implementations are backed by afero: NewOS wraps the real filesystem,
// NewAferoFS accepts any afero.Fs (tests use afero.NewMemMapFs). Symlinks
// are created through afero's Linker interface when the backing filesystem
// supports it.
//
// CopyTree materializes copy-method installs by walking the source tree.
package filesystem
