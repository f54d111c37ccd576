// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"sigs.k8s.io/yaml"

	"github.com/cmdspec/cmdspec/pkg/cueutil"
)

const (
	// FormatCUE is a CUE manifest.
	FormatCUE Format = "cue"
	// FormatJSON is a JSON manifest.
	FormatJSON Format = "json"
	// FormatYAML is a YAML manifest.
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML manifest.
	FormatTOML Format = "toml"

	manifestDefinition = "#Manifest"
)

// ErrUnknownFormat is returned for unrecognized manifest formats.
var ErrUnknownFormat = errors.New("unknown manifest format")

type (
	// Format is the encoding of a manifest.
	Format string

	// UnknownFormatError is returned when a format or file extension is not
	// recognized.
	UnknownFormatError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown manifest format %q (expected cue, json, yaml, yml or toml)", e.Value)
}

// Unwrap returns ErrUnknownFormat for errors.Is() compatibility.
func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }

// ParseFormat maps a format name or file extension (without the dot) to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "cue":
		return FormatCUE, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", &UnknownFormatError{Value: s}
	}
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// decode validates data against the manifest schema. CUE and JSON compile
// directly; YAML is converted to JSON first and TOML tables are encoded into
// the schema's context.
func (f Format) decode(schema *cueutil.Schema, data []byte, filename string) (*cueutil.ParseResult[Manifest], error) {
	opts := []cueutil.Option{cueutil.WithFilename(filename)}
	switch f {
	case FormatCUE, FormatJSON:
		return cueutil.Decode[Manifest](schema, data, manifestDefinition, opts...)
	case FormatYAML:
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: parse YAML: %w", filename, ErrInvalidManifest, err)
		}
		return cueutil.Decode[Manifest](schema, out, manifestDefinition, opts...)
	case FormatTOML:
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w: parse TOML: %w", filename, ErrInvalidManifest, err)
		}
		return cueutil.DecodeValue[Manifest](schema, doc, manifestDefinition, opts...)
	default:
		return nil, &UnknownFormatError{Value: string(f)}
	}
}
