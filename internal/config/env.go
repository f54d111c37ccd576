// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CMDSPEC_"

// envOverrides are the environment variables read on top of the config
// file. Unset variables leave the field nil.
type envOverrides struct {
	Casing          *cmddef.Casing `env:"CASING"`
	NamePrefix      *cmddef.Prefix `env:"NAME_PREFIX"`
	ShortFormPrefix *cmddef.Prefix `env:"SHORT_FORM_PREFIX"`
	ColorScheme     *ColorScheme   `env:"COLOR_SCHEME"`
	Verbose         *bool          `env:"VERBOSE"`
	Format          *OutputFormat  `env:"FORMAT"`
}

// applyEnv overrides cfg with CMDSPEC_* variables. A nil environ reads the
// process environment.
func applyEnv(cfg *Config, environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if o.Casing != nil {
		cfg.Conventions.Casing = *o.Casing
	}
	if o.NamePrefix != nil {
		cfg.Conventions.NamePrefix = *o.NamePrefix
	}
	if o.ShortFormPrefix != nil {
		cfg.Conventions.ShortFormPrefix = *o.ShortFormPrefix
	}
	if o.ColorScheme != nil {
		cfg.UI.ColorScheme = *o.ColorScheme
	}
	if o.Verbose != nil {
		cfg.UI.Verbose = *o.Verbose
	}
	if o.Format != nil {
		cfg.Output.Format = *o.Format
	}
	return nil
}
