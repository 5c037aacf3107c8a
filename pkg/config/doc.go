// Package config holds a project's declared intent: the destinations it
// vendors into and the packages installed in each of them.
//
// The document lives at <project root>/.gitpkg.toml:
//
//	[[destinations]]
//	name = 'libs'
//	path = 'libs'
//
//	[[packages.libs]]
//	name = 'depA'
//	url = 'https://example.com/depA.git'
//	package-root = '.'
//
// Load and Save map the document to Config and back. Save is deterministic
// (field order, package order and sorted destination keys) and atomic.
// Store binds a Config to its file and persists after every mutation; it is
// the only writer of the document.
package config
