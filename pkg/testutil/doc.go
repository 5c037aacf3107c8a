// Package testutil provides utilities for testing gitpkg components.
//
// Key components:
//   - File helpers: create files, directories and symlinks, and assert on them
//   - Tree helpers: checksum a directory tree to compare working tree content
//   - Git fixtures: isolated git environment, host repositories and local
//     bare repositories with a known history
//
// Tests that need the git binary call RequireGit, which skips when git is
// not installed. Git fixtures use t.Setenv and so cannot run in parallel.
package testutil
