// Package paths provides centralized path handling for gitpkg.
//
// Every location the reconciliation engine touches is derived here from the
// project root, the root of the host git repository:
//
//   - Config: <root>/.gitpkg.toml (declared intent)
//   - Storage slots: <root>/.gitpkgs/<identity> (submodule working trees)
//   - Internal git dirs: <root>/.git/modules/<identity>
//   - Registry: <root>/.gitmodules
//   - Artifacts: <root>/<destination path>/<package name>
//
// Destination paths are stored relative to the project root and must stay
// inside it. Use RelativeToRoot to turn user input into the stored form and
// DestinationPath / InstallPath to resolve it back.
package paths
