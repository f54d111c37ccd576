// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/inference"
)

type (
	// ResolverOption configures a Resolver or Engine.
	ResolverOption func(*config)

	// AssemblyHook runs after the tree is built and before global options
	// are propagated. It may attach further commands through the Assembly.
	AssemblyHook func(a *Assembly) error

	config struct {
		defaults       cmddef.Convention
		inspector      inference.Inspector
		logger         *log.Logger
		hooks          []AssemblyHook
		preserveSpaces bool
	}
)

// WithDefaults overrides the convention defaults. Unset axes keep the
// system defaults.
func WithDefaults(conv cmddef.Convention) ResolverOption {
	return func(c *config) { c.defaults = conv }
}

// WithInspector replaces the value-shape inspector.
func WithInspector(inspector inference.Inspector) ResolverOption {
	return func(c *config) { c.inspector = inspector }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *log.Logger) ResolverOption {
	return func(c *config) { c.logger = logger }
}

// WithAssemblyHook appends a hook. Hooks run in the order they were added.
func WithAssemblyHook(hook AssemblyHook) ResolverOption {
	return func(c *config) { c.hooks = append(c.hooks, hook) }
}

// WithPreserveSpaces keeps whitespace word boundaries as single spaces under
// lower, upper and title casing.
func WithPreserveSpaces(preserve bool) ResolverOption {
	return func(c *config) { c.preserveSpaces = preserve }
}

func newConfig(opts []ResolverOption) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}
