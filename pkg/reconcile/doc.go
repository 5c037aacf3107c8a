// Package reconcile converges the on-disk state of a project with its
// declared packages.
//
// Each package is spread over five places: the config entry, the storage
// slot (.gitpkgs/<identity>), the internal git directory
// (.git/modules/<identity>), the .gitmodules section and the artifact in
// the destination. Install inspects each of them and repairs only what is
// missing or stale, so running it again after an interruption picks up
// where the previous run stopped. Uninstall removes all five and tolerates
// any of them being absent already.
package reconcile
