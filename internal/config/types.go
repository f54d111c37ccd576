// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// OutputTree renders resolved trees as styled text.
	OutputTree OutputFormat = "tree"
	// OutputJSON renders resolved trees as JSON.
	OutputJSON OutputFormat = "json"
	// OutputYAML renders resolved trees as YAML.
	OutputYAML OutputFormat = "yaml"
	// OutputTOML renders resolved trees as TOML.
	OutputTOML OutputFormat = "toml"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFormat selects how the CLI prints resolved trees.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the cmdspec configuration.
	Config struct {
		// Conventions are the process-wide naming defaults applied below
		// every command's own conventions.
		Conventions ConventionsConfig `json:"conventions" mapstructure:"conventions"`
		UI          UIConfig          `json:"ui" mapstructure:"ui"`
		Output      OutputConfig      `json:"output" mapstructure:"output"`
	}

	// ConventionsConfig holds default naming conventions.
	ConventionsConfig struct {
		Casing          cmddef.Casing `json:"casing,omitempty" mapstructure:"casing"`
		NamePrefix      cmddef.Prefix `json:"name_prefix,omitempty" mapstructure:"name_prefix"`
		ShortFormPrefix cmddef.Prefix `json:"short_form_prefix,omitempty" mapstructure:"short_form_prefix"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// OutputConfig configures rendering of resolved trees.
	OutputConfig struct {
		Format OutputFormat `json:"format" mapstructure:"format"`
	}
)

// Convention returns the configured defaults as a resolver convention.
func (c ConventionsConfig) Convention() cmddef.Convention {
	return cmddef.Convention{
		Casing:          c.Casing,
		NamePrefix:      c.NamePrefix,
		ShortFormPrefix: c.ShortFormPrefix,
	}
}

// IsValid returns whether every configured convention is recognized.
func (c ConventionsConfig) IsValid() (bool, []error) {
	return c.Convention().IsValid()
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Conventions.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Output.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is()
// compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: tree, json, yaml, toml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the format name.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the format is one of the four known formats.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputTree, OutputJSON, OutputYAML, OutputTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Conventions: ConventionsConfig{
			Casing:          cmddef.CasingKebab,
			NamePrefix:      cmddef.PrefixDoubleHyphen,
			ShortFormPrefix: cmddef.PrefixHyphen,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Output: OutputConfig{
			Format: OutputTree,
		},
	}
}
