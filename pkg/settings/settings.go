package settings

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	gperrors "github.com/arthur-debert/gitpkg/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// EnvPrefix is the prefix of environment variables mapped onto settings
const EnvPrefix = "GITPKG_"

// Accepted values
const (
	MethodLink = "link"
	MethodCopy = "copy"

	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings holds the tool-wide settings
type Settings struct {
	Debug   bool    `koanf:"debug"`
	Git     Git     `koanf:"git"`
	Install Install `koanf:"install"`
	Output  Output  `koanf:"output"`
}

type Git struct {
	Binary string `koanf:"binary"`
}

type Install struct {
	Method string `koanf:"method"`
}

type Output struct {
	Format string `koanf:"format"`
	Color  string `koanf:"color"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// UserFilePath returns the location of the user settings file
func UserFilePath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "gitpkg", "config.toml")
}

// Load reads settings from every layer. Keys in overrides use the dotted
// form ("output.format").
func Load(overrides map[string]interface{}) (*Settings, error) {
	return LoadFrom(UserFilePath(), overrides)
}

// LoadFrom is Load with an explicit user file location. A missing user
// file is skipped.
func LoadFrom(userFile string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, gperrors.Wrap(err, gperrors.ErrSettings, "failed to load default settings")
	}

	// 2. User file
	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return nil, gperrors.Wrapf(err, gperrors.ErrSettings, "failed to load settings from %s", userFile).
					WithDetail(gperrors.DetailPath, userFile)
			}
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, gperrors.Wrap(err, gperrors.ErrSettings, "failed to load settings from environment")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, gperrors.Wrap(err, gperrors.ErrSettings, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, gperrors.Wrap(err, gperrors.ErrSettings, "failed to unmarshal settings")
	}

	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Default returns the embedded defaults only
func Default() *Settings {
	return &Settings{
		Git:     Git{Binary: "git"},
		Install: Install{Method: MethodLink},
		Output:  Output{Format: FormatText, Color: ColorAuto},
	}
}

// normalize lowercases the enum-like values so GITPKG_OUTPUT_FORMAT=JSON is
// accepted
func (s *Settings) normalize() {
	s.Install.Method = strings.ToLower(strings.TrimSpace(s.Install.Method))
	s.Output.Format = strings.ToLower(strings.TrimSpace(s.Output.Format))
	s.Output.Color = strings.ToLower(strings.TrimSpace(s.Output.Color))
}

// Validate rejects values outside the accepted sets
func (s *Settings) Validate() error {
	if s.Git.Binary == "" {
		return gperrors.New(gperrors.ErrSettings, "git.binary cannot be empty")
	}
	if err := oneOf("install.method", s.Install.Method, MethodLink, MethodCopy); err != nil {
		return err
	}
	if err := oneOf("output.format", s.Output.Format, FormatText, FormatYAML, FormatJSON); err != nil {
		return err
	}
	return oneOf("output.color", s.Output.Color, ColorAuto, ColorAlways, ColorNever)
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return gperrors.Newf(gperrors.ErrSettings, "invalid value '%s' for %s, expected one of: %s",
		value, key, strings.Join(allowed, ", ")).WithDetail("key", key)
}
