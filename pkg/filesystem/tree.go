package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/gitpkg/pkg/errors"
)

// Exists reports whether anything, including a dangling symlink, is present
// at path.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// IsSymlink reports whether path is a symbolic link
func IsSymlink(fsys FS, path string) bool {
	info, err := fsys.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// IsDir reports whether path resolves to a directory
func IsDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// RemoveIfExists removes path and everything below it. A missing path is
// not an error.
func RemoveIfExists(fsys FS, path string) (bool, error) {
	if !Exists(fsys, path) {
		return false, nil
	}
	if err := fsys.RemoveAll(path); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return true, nil
}

// CopyTree recursively copies src to dst. Entries whose base name is in
// exclude are skipped along with their contents. Symlinks are recreated,
// not followed.
func CopyTree(fsys FS, src, dst string, exclude ...string) error {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src).
			WithDetail(errors.DetailPath, src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", src).
			WithDetail(errors.DetailPath, src)
	}

	return fsys.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if rel != "." && skip[info.Name()] {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			link, err := fsys.Readlink(path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", path)
			}
			return fsys.Symlink(link, target)
		case info.IsDir():
			return fsys.MkdirAll(target, info.Mode().Perm()|0700)
		default:
			data, err := fsys.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
			}
			return fsys.WriteFile(target, data, info.Mode().Perm())
		}
	})
}
