// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/gitpkg/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unknown_package_error",
			code:    errors.ErrUnknownPackage,
			message: "package not found",
			wantStr: "[UNKNOWN_PACKAGE] package not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		format  string
		args    []interface{}
		wantMsg string
	}{
		{
			name:    "format_with_string",
			code:    errors.ErrInvalidInput,
			format:  "invalid value: %s",
			args:    []interface{}{"test"},
			wantMsg: "invalid value: test",
		},
		{
			name:    "format_with_multiple_args",
			code:    errors.ErrFileAccess,
			format:  "cannot create %s with mode %o",
			args:    []interface{}{"file.txt", 0644},
			wantMsg: "cannot create file.txt with mode 644",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.Newf(tt.code, tt.format, tt.args...)

			if err.Message != tt.wantMsg {
				t.Errorf("Newf() message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}

		if got := err.Diagnostic(); got != "internal error: base error" {
			t.Errorf("Diagnostic() = %q", got)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{
		errors.DetailPath:        "/test/path",
		errors.DetailDestination: "libs",
		errors.DetailPackage:     "depA",
	}

	err := errors.New(errors.ErrFileAccess, "cannot create file").
		WithDetails(details)

	for k, v := range details {
		if err.Details[k] != v {
			t.Errorf("WithDetails() %s = %v, want %v", k, err.Details[k], v)
		}
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrUnknownPackage, "error 1")
	err2 := errors.New(errors.ErrUnknownPackage, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with Error")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.AlreadyInstalled("libs", "depA"),
			code:     errors.ErrAlreadyInstalled,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.AlreadyInstalled("libs", "depA"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"),
			code:     errors.ErrFileAccess,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrUnknownPackage,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrUnknownPackage,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "gitpkg_error",
			err:      errors.URLChanged("libs", "depA", "a", "b"),
			expected: errors.ErrURLChanged,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigParse, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigParse) {
			t.Error("Top level should have ErrConfigParse code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var gpErr *errors.Error
		if stderrors.As(configErr.Unwrap(), &gpErr) {
			if !errors.IsErrorCode(gpErr, errors.ErrFileAccess) {
				t.Error("Middle error should have ErrFileAccess code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *errors.Error
		code       errors.ErrorCode
		wantDetail map[string]interface{}
		wantInMsg  string
	}{
		{
			name:       "url_changed",
			err:        errors.URLChanged("libs", "depA", "https://a/x.git", "https://b/x.git"),
			code:       errors.ErrURLChanged,
			wantDetail: map[string]interface{}{errors.DetailDestination: "libs", errors.DetailPackage: "depA"},
			wantInMsg:  "https://b/x.git",
		},
		{
			name:       "package_root_not_found",
			err:        errors.PackageRootNotFound("libs", "depA", "/p/.gitpkgs/abc/missing"),
			code:       errors.ErrPackageRootNotFound,
			wantDetail: map[string]interface{}{errors.DetailPath: "/p/.gitpkgs/abc/missing"},
			wantInMsg:  "missing",
		},
		{
			name:      "unknown_package_with_suggestions",
			err:       errors.UnknownPackage("", "depa", "depA", "depB"),
			code:      errors.ErrUnknownPackage,
			wantInMsg: "did you mean: depA, depB?",
		},
		{
			name:      "ambiguous_destination",
			err:       errors.AmbiguousDestination([]string{"libs", "vendor"}),
			code:      errors.ErrAmbiguousDestination,
			wantInMsg: "libs, vendor",
		},
		{
			name:       "reserved_install_path",
			err:        errors.ReservedInstallPath(".", ".git", "/p/.git"),
			code:       errors.ErrInvalidInput,
			wantDetail: map[string]interface{}{errors.DetailPath: "/p/.git", errors.DetailPackage: ".git"},
			wantInMsg:  "reserved",
		},
		{
			name:       "install_path_occupied",
			err:        errors.InstallPathOccupied(".", "docs", "/p/docs"),
			code:       errors.ErrFileAccess,
			wantDetail: map[string]interface{}{errors.DetailPath: "/p/docs"},
			wantInMsg:  "not created by gitpkg",
		},
		{
			name:       "not_a_git_repository",
			err:        errors.NotAGitRepository("/tmp/x"),
			code:       errors.ErrNotAGitRepository,
			wantDetail: map[string]interface{}{errors.DetailPath: "/tmp/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %v, want %v", tt.err.Code, tt.code)
			}
			for k, v := range tt.wantDetail {
				if tt.err.Details[k] != v {
					t.Errorf("detail %s = %v, want %v", k, tt.err.Details[k], v)
				}
			}
			if tt.wantInMsg != "" && !strings.Contains(tt.err.Message, tt.wantInMsg) {
				t.Errorf("message %q does not contain %q", tt.err.Message, tt.wantInMsg)
			}
		})
	}
}
