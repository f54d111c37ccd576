// SPDX-License-Identifier: MPL-2.0

package structtag

import (
	"io"
	"reflect"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/source"
)

var markerType = reflect.TypeFor[Command]()

type (
	// Command is embedded in a struct to carry command metadata in its tags.
	Command struct{}

	// Source collects definitions from Go structs. It implements
	// source.Source and is safe for concurrent use.
	Source struct {
		mu     sync.Mutex
		logger *log.Logger
		defs   []cmddef.Definition
		seen   map[cmddef.Identity]bool
		seq    int
	}

	// Option configures a Source.
	Option func(*Source)

	// AddOption configures how a value added to a Source is linked.
	AddOption func(*addConfig)

	addConfig struct {
		parent   cmddef.Identity
		children []cmddef.Identity
	}
)

var _ source.Source = (*Source)(nil)

// New creates an empty Source.
func New(opts ...Option) *Source {
	s := &Source{seen: make(map[cmddef.Identity]bool)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// WithLogger sets the logger used for discovery debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Source) { s.logger = logger }
}

// WithParent links the added command below the command type of v.
func WithParent(v any) AddOption {
	return func(c *addConfig) { c.parent = IdentityOf(v) }
}

// WithChildren claims the command types of vs as children of the added
// command.
func WithChildren(vs ...any) AddOption {
	return func(c *addConfig) {
		for _, v := range vs {
			c.children = append(c.children, IdentityOf(v))
		}
	}
}

// IdentityOf returns the identity of the struct type of v, which may be a
// struct, a pointer to one or a reflect.Type. Unnamed types have no identity.
func IdentityOf(v any) cmddef.Identity {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return typeIdentity(t)
}

func typeIdentity(t reflect.Type) cmddef.Identity {
	if t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return cmddef.Identity(t.Name())
	}
	return cmddef.Identity(t.PkgPath() + "." + t.Name())
}

// Add walks v, which must be a non-nil pointer to a named struct, and
// collects the command it describes together with its members, nested
// commands and bases. Adding a type that was already collected is a no-op.
func (s *Source) Add(v any, opts ...AddOption) error {
	cfg := &addConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &InvalidTargetError{Type: reflect.TypeOf(v), Reason: "must be a non-nil pointer to a struct"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := &walker{s: s, inPath: make(map[reflect.Type]bool)}
	link := func(cmd *cmddef.Command) {
		if cfg.parent != "" {
			cmd.Parent = cfg.parent
		}
		cmd.Children = append(cmd.Children, cfg.children...)
	}
	if err := w.command(rv.Elem(), "", link); err != nil {
		return err
	}
	s.defs = append(s.defs, w.defs...)
	for _, def := range w.defs {
		s.seen[def.ID()] = true
	}
	return nil
}

// Definitions returns everything collected so far, in discovery order.
func (s *Source) Definitions() ([]cmddef.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.defs), nil
}

func (s *Source) next() int {
	s.seq++
	return s.seq
}
