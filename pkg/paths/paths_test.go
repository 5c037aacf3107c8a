package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("empty root is rejected", func(t *testing.T) {
		_, err := New("")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("root is made absolute and clean", func(t *testing.T) {
		dir := t.TempDir()
		p, err := New(filepath.Join(dir, "a", ".."))
		require.NoError(t, err)
		assert.Equal(t, dir, p.ProjectRoot())
	})

	t.Run("home is expanded", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		p, err := New("~/project")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "project"), p.ProjectRoot())
	})
}

func TestLayout(t *testing.T) {
	p, err := New("/work/project")
	require.NoError(t, err)

	id := "0123456789abcdef0123456789abcdef"

	assert.Equal(t, "/work/project/.gitpkg.toml", p.ConfigPath())
	assert.Equal(t, "/work/project/.gitpkgs", p.StorageDir())
	assert.Equal(t, "/work/project/.gitpkgs/"+id, p.StorageSlot(id))
	assert.Equal(t, "/work/project/.git/modules/"+id, p.InternalGitDir(id))
	assert.Equal(t, "/work/project/.gitmodules", p.GitModulesPath())
	assert.Equal(t, "/work/project/libs", p.DestinationPath("libs"))
	assert.Equal(t, "/work/project", p.DestinationPath("."))
	assert.Equal(t, "/elsewhere", p.DestinationPath("/elsewhere"))
	assert.Equal(t, "/work/project/libs/depA", p.InstallPath("libs", "depA"))
	assert.Equal(t, "/work/project/depA", p.InstallPath(".", "depA"))
	assert.Equal(t, "/work/project/.gitpkgs/"+id, p.PackageRootPath(id, ""))
	assert.Equal(t, "/work/project/.gitpkgs/"+id+"/src", p.PackageRootPath(id, "src"))
}

func TestRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	p, err := New(root)
	require.NoError(t, err)

	t.Run("absolute path inside root", func(t *testing.T) {
		rel, err := p.RelativeToRoot(filepath.Join(root, "libs"))
		require.NoError(t, err)
		assert.Equal(t, "libs", rel)
	})

	t.Run("root itself", func(t *testing.T) {
		rel, err := p.RelativeToRoot(root)
		require.NoError(t, err)
		assert.Equal(t, ".", rel)
	})

	t.Run("relative path resolves against cwd", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(root))
		defer func() { _ = os.Chdir(wd) }()

		rel, err := p.RelativeToRoot("vendor/sub")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("vendor", "sub"), rel)
	})

	t.Run("outside root", func(t *testing.T) {
		_, err := p.RelativeToRoot(filepath.Dir(root))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestIsInProject(t *testing.T) {
	p, err := New("/work/project")
	require.NoError(t, err)

	in, err := p.IsInProject("/work/project/libs")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = p.IsInProject("/work/other")
	require.NoError(t, err)
	assert.False(t, in)

	_, err = p.IsInProject("")
	assert.Error(t, err)
}

func TestIsReserved(t *testing.T) {
	p, err := New("/work/project")
	require.NoError(t, err)

	tests := []struct {
		path     string
		reserved bool
	}{
		{"/work/project/.git", true},
		{"/work/project/.git/modules/x", true},
		{"/work/project/.gitpkgs", true},
		{"/work/project/.gitpkgs/abc/lib", true},
		{"/work/project/.gitmodules", true},
		{"/work/project/.gitpkg.toml", true},
		{"/work/project/.github", false},
		{"/work/project/docs", false},
		{"/work/project/libs/.git", false},
		{"/work/project", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.reserved, p.IsReserved(tt.path))
		})
	}
}

func TestToSlash(t *testing.T) {
	assert.Equal(t, "a/b/c", ToSlash(filepath.Join("a", "b", "c")))
	assert.Equal(t, "a/b", ToSlash(`a\b`))
}
