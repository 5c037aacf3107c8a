package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gitpkg/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateName ensures a destination or package name is usable as a single
// path segment.
func ValidateName(kind, name string) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", kind)
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot contain path separators", kind)
	}

	if name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be '.' or '..'", kind)
	}

	invalidChars := ":*?\"<>|"
	if strings.ContainsAny(name, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"%s name contains invalid characters: %s", kind, invalidChars)
	}

	for _, r := range name {
		if r < 32 {
			return errors.Newf(errors.ErrInvalidInput, "%s name contains control characters", kind)
		}
	}

	return nil
}

// ValidatePackageRoot checks that a package root stays inside the package
// it points into.
func ValidatePackageRoot(root string) error {
	if err := ValidatePath(root); err != nil {
		return err
	}
	if filepath.IsAbs(root) {
		return errors.Newf(errors.ErrInvalidInput, "package root '%s' must be relative", root)
	}
	if !ContainsPath("/pkg", filepath.Join("/pkg", root)) {
		return errors.Newf(errors.ErrInvalidInput, "package root '%s' escapes the package", root)
	}
	return nil
}

// SanitizePath cleans a path after expanding the home directory
func SanitizePath(path string) string {
	path = expandHome(path)

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}

	return cleaned
}

// RelativePath returns the relative path from base to target.
// Returns an error if the paths cannot be made relative.
func RelativePath(base, target string) (string, error) {
	base = SanitizePath(base)
	target = SanitizePath(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"cannot determine relative path from %s to %s", base, target)
	}

	return rel, nil
}

// ContainsPath checks if child is contained within parent.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
