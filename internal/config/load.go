package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a profile file format.
type Format uint8

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	// FormatYAML covers .yaml and .yml files.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format for path based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads, validates and decodes the profile at path.
func Load(path string) (*Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p, err := Parse(path, format, data)
	if err != nil {
		return nil, err
	}
	p.Path = path
	return p, nil
}

// LoadFromReader reads a profile in format from r.
func LoadFromReader(r io.Reader, format Format) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return Parse("<reader>", format, data)
}

// Parse validates and decodes a profile. source names the data in errors.
func Parse(source string, format Format, data []byte) (*Profile, error) {
	doc, err := decode(source, format, data)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}

	normalized, err := validate(source, doc)
	if err != nil {
		return nil, err
	}

	p := Default()
	if err := json.Unmarshal(normalized, p); err != nil {
		return nil, newParseError(source, err)
	}
	return p, nil
}

// decode parses data into a generic document.
func decode(source string, format Format, data []byte) (map[string]any, error) {
	var doc map[string]any

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			perr := newParseError(source, err)
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, newParseError(source, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return doc, nil
}
