// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/cueutil"
	"github.com/cmdspec/cmdspec/pkg/source"
	"github.com/cmdspec/cmdspec/pkg/types"
)

// SupportedVersions is the range of manifest versions this package reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

//go:embed manifest_schema.cue
var schemaBytes []byte

var (
	// ErrUnsupportedVersion is returned when a manifest's version is outside
	// SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")

	compileSchema = sync.OnceValues(func() (*cueutil.Schema, error) {
		return cueutil.NewSchema(schemaBytes)
	})
	supported = semver.MustParse("1.0.0")
)

type (
	// Manifest is a parsed manifest document. It implements source.Source.
	Manifest struct {
		Version  string    `json:"version"`
		Commands []Command `json:"commands"`

		file    string
		version *semver.Version
	}

	// Command declares a command and, through Commands, the commands
	// nested inside it.
	Command struct {
		Common
		ID                       string       `json:"id"`
		Identifier               string       `json:"identifier,omitempty"`
		Parent                   string       `json:"parent,omitempty"`
		Children                 []string     `json:"children,omitempty"`
		Bases                    []string     `json:"bases,omitempty"`
		Abstract                 bool         `json:"abstract,omitempty"`
		UnmatchedTokensAreErrors *bool        `json:"unmatched_tokens_are_errors,omitempty"`
		Conventions              *Conventions `json:"conventions,omitempty"`
		Options                  []Option     `json:"options,omitempty"`
		Arguments                []Valued     `json:"arguments,omitempty"`
		Directives               []Directive  `json:"directives,omitempty"`
		Commands                 []Command    `json:"commands,omitempty"`
	}

	// Common holds the fields every declaration accepts.
	Common struct {
		Name        string   `json:"name,omitempty"`
		Aliases     []string `json:"aliases,omitempty"`
		Description string   `json:"description,omitempty"`
		Hidden      bool     `json:"hidden,omitempty"`
		Order       *int     `json:"order,omitempty"`
	}

	// Conventions are the naming settings of a command.
	Conventions struct {
		Casing                string   `json:"casing,omitempty"`
		NamePrefix            string   `json:"name_prefix,omitempty"`
		ShortFormPrefix       string   `json:"short_form_prefix,omitempty"`
		AutoGenerate          []string `json:"auto_generate,omitempty"`
		ShortFormAutoGenerate []string `json:"short_form_auto_generate,omitempty"`
	}

	// Valued declares an argument; options extend it.
	Valued struct {
		Common
		Member      string   `json:"member"`
		Type        string   `json:"type"`
		Required    *bool    `json:"required,omitempty"`
		Arity       string   `json:"arity,omitempty"`
		Allowed     []string `json:"allowed,omitempty"`
		Default     string   `json:"default,omitempty"`
		Initializer string   `json:"initializer,omitempty"`
	}

	// Option declares an option.
	Option struct {
		Valued
		Global bool `json:"global,omitempty"`
	}

	// Directive declares a directive.
	Directive struct {
		Common
		Member string `json:"member"`
		Type   string `json:"type"`
	}

	// UnsupportedVersionError is returned for manifests whose version is
	// outside SupportedVersions.
	UnsupportedVersionError struct {
		File    string
		Version string
	}
)

var _ source.Source = (*Manifest)(nil)

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: manifest version %q is not supported (want %s)", e.File, e.Version, SupportedVersions)
}

// Unwrap returns ErrUnsupportedVersion for errors.Is() compatibility.
func (e *UnsupportedVersionError) Unwrap() error { return ErrUnsupportedVersion }

// Load reads and parses the manifest at path. The format follows the file
// extension.
func Load(path types.FilesystemPath) (*Manifest, error) {
	if ok, errs := path.IsValid(); !ok {
		return nil, errors.Join(errs...)
	}
	format, err := ParseFormat(path.Ext())
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, format, string(path))
}

// Parse validates data against the manifest schema and decodes it. filename
// is used in error messages.
func Parse(data []byte, format Format, filename string) (*Manifest, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	res, err := format.decode(schema, data, filename)
	if err != nil {
		return nil, err
	}
	m := res.Value
	m.file = filename

	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, &UnsupportedVersionError{File: filename, Version: m.Version}
	}
	constraint, _ := semver.NewConstraint(SupportedVersions)
	if !constraint.Check(v) {
		return nil, &UnsupportedVersionError{File: filename, Version: m.Version}
	}
	m.version = v
	return m, nil
}

// File returns the name the manifest was parsed from.
func (m *Manifest) File() string { return m.file }

// SemVer returns the parsed manifest version.
func (m *Manifest) SemVer() *semver.Version {
	if m.version == nil {
		return supported
	}
	return m.version
}

// Files returns a source that loads every path when asked for definitions.
func Files(paths ...types.FilesystemPath) source.Source {
	return source.Func(func() ([]cmddef.Definition, error) {
		var srcs source.Multi
		var errs []error
		for _, p := range paths {
			m, err := Load(p)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			srcs = append(srcs, m)
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return srcs.Definitions()
	})
}
