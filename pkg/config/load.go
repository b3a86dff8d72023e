package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"sigs.k8s.io/yaml"

	"github.com/matzehuels/sourceloc/pkg/errors"
)

// Format identifies a configuration encoding.
type Format string

// Supported configuration formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and decodes the configuration file at path.
// An empty path yields an empty configuration, which resolves to the
// default public integrations.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Parse decodes data in the given format after expanding environment
// variable references.
func Parse(data []byte, format Format) (*Config, error) {
	return parse(data, format, os.LookupEnv)
}

func parse(data []byte, format Format, lookup func(string) (string, bool)) (*Config, error) {
	expanded := expandEnv(string(data), lookup)

	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", format)
	}
	return &cfg, nil
}

// expandEnv substitutes ${NAME} and $NAME. Unset variables expand to the
// empty string; "$$" yields a literal "$".
func expandEnv(s string, lookup func(string) (string, bool)) string {
	s = strings.ReplaceAll(s, "$$", "\x00")
	s = os.Expand(s, func(name string) string {
		v, _ := lookup(name)
		return v
	})
	return strings.ReplaceAll(s, "\x00", "$")
}
