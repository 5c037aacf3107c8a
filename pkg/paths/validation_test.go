package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantErr     bool
		errContains string
	}{
		{
			name:        "empty path",
			path:        "",
			wantErr:     true,
			errContains: "path cannot be empty",
		},
		{
			name:    "valid path",
			path:    "/home/user/file.txt",
			wantErr: false,
		},
		{
			name:        "path with null bytes",
			path:        "/home/user\x00/file.txt",
			wantErr:     true,
			errContains: "null bytes",
		},
		{
			name:        "excessively long path",
			path:        "/" + strings.Repeat("a", 4097),
			wantErr:     true,
			errContains: "exceeds maximum length",
		},
		{
			name:    "relative path",
			path:    "relative/path/file.txt",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errContains string
	}{
		{"simple", "depA", ""},
		{"with dots and dashes", "my-lib.v2", ""},
		{"empty", "", "cannot be empty"},
		{"slash", "a/b", "path separators"},
		{"backslash", `a\b`, "path separators"},
		{"dot", ".", "cannot be '.' or '..'"},
		{"dotdot", "..", "cannot be '.' or '..'"},
		{"colon", "a:b", "invalid characters"},
		{"control char", "a\tb", "control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("package", tt.input)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Contains(t, err.Error(), "package name")
		})
	}
}

func TestValidatePackageRoot(t *testing.T) {
	assert.NoError(t, ValidatePackageRoot("."))
	assert.NoError(t, ValidatePackageRoot("src/lib"))
	assert.NoError(t, ValidatePackageRoot("a/../b"))
	assert.Error(t, ValidatePackageRoot(""))
	assert.Error(t, ValidatePackageRoot("/abs"))
	assert.Error(t, ValidatePackageRoot("../outside"))
	assert.Error(t, ValidatePackageRoot("a/../../b"))
}

func TestContainsPath(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"/project", "/project", true},
		{"/project", "/project/libs", true},
		{"/project", "/project/libs/../vendor", true},
		{"/project", "/other", false},
		{"/project", "/project/..", false},
		{"/project", "/project/..foo", true},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"->"+tt.child, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPath(tt.parent, tt.child))
		})
	}
}

func TestRelativePath(t *testing.T) {
	rel, err := RelativePath("/project", "/project/libs/vendor")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("libs", "vendor"), rel)

	_, err = RelativePath("relative", "/absolute")
	assert.Error(t, err)
}
