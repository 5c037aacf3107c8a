package errors

import "strings"

// The constructors below build the error taxonomy surfaced by the
// reconciliation engine. Each carries enough details to render a one-line
// diagnostic.

func DestinationNameConflict(name string) *Error {
	return Newf(ErrDestinationNameConflict, "a destination named '%s' already exists", name).
		WithDetail(DetailDestination, name)
}

func DestinationPathConflict(path, existing string) *Error {
	return Newf(ErrDestinationPathConflict, "path '%s' is already registered as destination '%s'", path, existing).
		WithDetail(DetailPath, path).
		WithDetail(DetailDestination, existing)
}

func UnknownDestination(name string) *Error {
	return Newf(ErrUnknownDestination, "unknown destination '%s'", name).
		WithDetail(DetailDestination, name)
}

// AmbiguousDestination is returned when no destination was given and more
// than one candidate exists.
func AmbiguousDestination(candidates []string) *Error {
	msg := "could not determine destination, please specify one with --dest-name"
	if len(candidates) > 0 {
		msg += " (candidates: " + strings.Join(candidates, ", ") + ")"
	}
	return New(ErrAmbiguousDestination, msg).WithDetail("candidates", candidates)
}

func DuplicatePackage(dest, pkg string) *Error {
	return Newf(ErrDuplicatePackage, "package '%s/%s' has already been added", dest, pkg).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg)
}

// UnknownPackage optionally lists close matches the user might have meant.
func UnknownPackage(dest, pkg string, suggestions ...string) *Error {
	var msg string
	if dest == "" {
		msg = "unknown package '" + pkg + "'"
	} else {
		msg = "unknown package '" + dest + "/" + pkg + "'"
	}
	if len(suggestions) > 0 {
		msg += ", did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return New(ErrUnknownPackage, msg).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg)
}

func URLChanged(dest, pkg, recordedURL, newURL string) *Error {
	return Newf(ErrURLChanged,
		"url of package '%s/%s' changed from '%s' to '%s', remove and add the package again to change it",
		dest, pkg, recordedURL, newURL).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg).
		WithDetail(DetailURL, newURL)
}

func PackageRootNotFound(dest, pkg, path string) *Error {
	return Newf(ErrPackageRootNotFound, "package root of '%s/%s' not found at '%s'", dest, pkg, path).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg).
		WithDetail(DetailPath, path)
}

// ReservedInstallPath is returned when a package would be installed over a
// location owned by git or gitpkg
func ReservedInstallPath(dest, pkg, path string) *Error {
	return Newf(ErrInvalidInput, "package '%s/%s' cannot be installed at reserved path '%s'", dest, pkg, path).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg).
		WithDetail(DetailPath, path)
}

func InstallPathOccupied(dest, pkg, path string) *Error {
	return Newf(ErrFileAccess,
		"'%s' was not created by gitpkg for '%s/%s', leaving it in place",
		path, dest, pkg).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg).
		WithDetail(DetailPath, path)
}

func AlreadyInstalled(dest, pkg string) *Error {
	return Newf(ErrAlreadyInstalled, "package '%s/%s' is already installed", dest, pkg).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg)
}

func NotInstalled(dest, pkg string) *Error {
	return Newf(ErrNotInstalled, "package '%s/%s' is not installed", dest, pkg).
		WithDetail(DetailDestination, dest).
		WithDetail(DetailPackage, pkg)
}

func NotAGitRepository(path string) *Error {
	return Newf(ErrNotAGitRepository, "could not find a git repository at or above '%s'", path).
		WithDetail(DetailPath, path)
}
