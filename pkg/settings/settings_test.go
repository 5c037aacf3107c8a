// TEST TYPE: Unit Test
// DEPENDENCIES: temp files, environment
// PURPOSE: Test settings layering (defaults, user file, env, overrides)

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes every GITPKG_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func writeUserFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	s, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadLayering(t *testing.T) {
	tests := []struct {
		name      string
		userFile  string
		env       map[string]string
		overrides map[string]interface{}
		check     func(t *testing.T, s *Settings)
	}{
		{
			name: "user file overrides defaults",
			userFile: `
[install]
method = "copy"

[output]
color = "never"
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, MethodCopy, s.Install.Method)
				assert.Equal(t, ColorNever, s.Output.Color)
				assert.Equal(t, FormatText, s.Output.Format)
			},
		},
		{
			name:     "env overrides user file",
			userFile: "[output]\nformat = \"yaml\"\n",
			env: map[string]string{
				"GITPKG_OUTPUT_FORMAT": "JSON",
				"GITPKG_GIT_BINARY":    "/usr/local/bin/git",
				"GITPKG_DEBUG":         "1",
			},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, FormatJSON, s.Output.Format)
				assert.Equal(t, "/usr/local/bin/git", s.Git.Binary)
				assert.True(t, s.Debug)
			},
		},
		{
			name: "overrides win over env",
			env:  map[string]string{"GITPKG_INSTALL_METHOD": "copy"},
			overrides: map[string]interface{}{
				"install.method": "link",
			},
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, MethodLink, s.Install.Method)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			userFile := ""
			if tt.userFile != "" {
				userFile = writeUserFile(t, tt.userFile)
			}

			s, err := LoadFrom(userFile, tt.overrides)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Run("invalid value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITPKG_OUTPUT_FORMAT", "xml")

		_, err := LoadFrom("", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettings))
		assert.Contains(t, err.Error(), "output.format")
	})

	t.Run("malformed user file", func(t *testing.T) {
		clearEnv(t)
		path := writeUserFile(t, "[output\nformat=")

		_, err := LoadFrom(path, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettings))
	})
}

func TestUserFilePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "gitpkg", "config.toml"), UserFilePath())
}
