// Package identity derives the stable identifier binding a (destination,
// package) pair to its storage slot and submodule registration.
//
// The identifier is never persisted. It is recomputed from the install path
// on every access so renaming a destination or package cannot leave a stale
// value behind.
package identity

import (
	"encoding/hex"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Length is the number of hex characters in an Identity
const Length = 32

// Identity is a 32 character lowercase hex digest
type Identity string

func (i Identity) String() string {
	return string(i)
}

// Identify hashes an absolute install path. Separators are normalized to
// "/" before hashing so the result does not depend on the platform.
func Identify(installPath string) Identity {
	sum := sha3.Sum256([]byte(normalize(installPath)))
	return Identity(hex.EncodeToString(sum[:])[:Length])
}

// For computes the identity of package pkgName in the destination stored
// at destPath under projectRoot
func For(projectRoot, destPath, pkgName string) Identity {
	if filepath.IsAbs(destPath) {
		return Identify(filepath.Join(destPath, pkgName))
	}
	return Identify(filepath.Join(projectRoot, destPath, pkgName))
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return path.Clean(p)
}
