// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test Store mutations and their persistence

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/filesystem"
)

func openStore(t *testing.T, fsys filesystem.FS) *Store {
	t.Helper()
	s, err := Open(fsys, configPath)
	require.NoError(t, err)
	return s
}

// reload reads the persisted document back to prove a mutation was saved
func reload(t *testing.T, fsys filesystem.FS) *Config {
	t.Helper()
	cfg, err := Load(fsys, configPath)
	require.NoError(t, err)
	return cfg
}

func TestStore_AddDestination(t *testing.T) {
	fsys := newFS()
	s := openStore(t, fsys)

	dest, err := s.AddDestination("libs", "libs/")
	require.NoError(t, err)
	assert.Equal(t, Destination{Name: "libs", Path: "libs"}, dest)

	t.Run("persisted", func(t *testing.T) {
		assert.Equal(t, []Destination{{Name: "libs", Path: "libs"}}, reload(t, fsys).Destinations)
	})

	t.Run("name conflict", func(t *testing.T) {
		_, err := s.AddDestination("libs", "other")
		assert.True(t, errors.IsErrorCode(err, errors.ErrDestinationNameConflict))
	})

	t.Run("path conflict", func(t *testing.T) {
		_, err := s.AddDestination("again", "./libs")
		assert.True(t, errors.IsErrorCode(err, errors.ErrDestinationPathConflict))
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := s.AddDestination("a/b", "ab")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	assert.Len(t, s.Destinations(), 1)
}

func TestStore_AddPackage(t *testing.T) {
	fsys := newFS()
	s := openStore(t, fsys)
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)

	spec := PackageSpec{Name: "depA", URL: "/repos/depA.git"}
	require.NoError(t, s.AddPackage("libs", spec))

	got, ok := s.FindPackage("libs", "depA")
	require.True(t, ok)
	assert.Equal(t, ".", got.PackageRoot, "default package root is filled in")

	persisted, ok := reload(t, fsys).FindPackage("libs", "depA")
	require.True(t, ok)
	assert.Equal(t, got, persisted)

	t.Run("duplicate", func(t *testing.T) {
		err := s.AddPackage("libs", spec)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicatePackage))
	})

	t.Run("unknown destination", func(t *testing.T) {
		err := s.AddPackage("vendor", spec)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownDestination))
	})

	t.Run("missing url", func(t *testing.T) {
		err := s.AddPackage("libs", PackageSpec{Name: "nourl"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestStore_OrderPreserved(t *testing.T) {
	fsys := newFS()
	s := openStore(t, fsys)
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)

	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, s.AddPackage("libs", PackageSpec{Name: name, URL: "/r/" + name}))
	}

	// Replacing keeps the position
	require.NoError(t, s.ReplacePackage("libs", PackageSpec{Name: "a", URL: "/r/a", Branch: "dev"}))

	var names []string
	for _, p := range reload(t, fsys).PackagesOf("libs") {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)

	a, _ := s.FindPackage("libs", "a")
	assert.Equal(t, "dev", a.Branch)
}

func TestStore_ReplacePackage_URLImmutable(t *testing.T) {
	fsys := newFS()
	s := openStore(t, fsys)
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)
	require.NoError(t, s.AddPackage("libs", PackageSpec{Name: "depA", URL: "A"}))

	err = s.ReplacePackage("libs", PackageSpec{Name: "depA", URL: "B"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrURLChanged))

	got, _ := reload(t, fsys).FindPackage("libs", "depA")
	assert.Equal(t, "A", got.URL)

	err = s.ReplacePackage("libs", PackageSpec{Name: "ghost", URL: "A"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
}

func TestStore_RemovePackage(t *testing.T) {
	fsys := newFS()
	s := openStore(t, fsys)
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)
	require.NoError(t, s.AddPackage("libs", PackageSpec{Name: "depA", URL: "A"}))
	require.NoError(t, s.AddPackage("libs", PackageSpec{Name: "depB", URL: "B"}))

	require.NoError(t, s.RemovePackage("libs", "depA"))
	assert.False(t, s.HasPackage("libs", "depA"))
	assert.True(t, s.HasPackage("libs", "depB"))
	assert.False(t, reload(t, fsys).HasPackage("libs", "depA"))

	err = s.RemovePackage("libs", "depA")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))

	require.NoError(t, s.RemovePackage("libs", "depB"))
	assert.Empty(t, reload(t, fsys).Packages)
}

func TestStore_FindPackageEverywhere(t *testing.T) {
	s := openStore(t, newFS())
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)
	_, err = s.AddDestination("vendor", "vendor")
	require.NoError(t, err)

	require.NoError(t, s.AddPackage("vendor", PackageSpec{Name: "depA", URL: "A"}))
	require.NoError(t, s.AddPackage("libs", PackageSpec{Name: "depA", URL: "A"}))
	require.NoError(t, s.AddPackage("libs", PackageSpec{Name: "depB", URL: "B"}))

	found := s.FindPackageEverywhere("depA")
	require.Len(t, found, 2)
	assert.Equal(t, "libs", found[0].Destination.Name, "registration order")
	assert.Equal(t, "vendor", found[1].Destination.Name)

	assert.Empty(t, s.FindPackageEverywhere("nope"))

	want := []string{"libs/depA", "libs/depB", "vendor/depA"}
	if diff := cmp.Diff(want, s.Config().PackageNames()); diff != "" {
		t.Errorf("PackageNames mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_FailedWriteKeepsState(t *testing.T) {
	mem := afero.NewMemMapFs()
	s := openStore(t, filesystem.NewAferoFS(mem))
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)

	// Swap in a read-only view so the next save fails
	s.fs = filesystem.NewAferoFS(afero.NewReadOnlyFs(mem))

	err = s.AddPackage("libs", PackageSpec{Name: "depA", URL: "A"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigWrite))
	assert.False(t, s.HasPackage("libs", "depA"))
}

func TestStore_ConfigIsACopy(t *testing.T) {
	s := openStore(t, newFS())
	_, err := s.AddDestination("libs", "libs")
	require.NoError(t, err)

	cfg := s.Config()
	cfg.Destinations[0].Name = "mutated"

	_, ok := s.Destination("libs")
	assert.True(t, ok)
}
