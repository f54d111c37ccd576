// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cmdspec/cmdspec/internal/config"
	"github.com/cmdspec/cmdspec/internal/issue"
	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/registry"
	"github.com/cmdspec/cmdspec/pkg/resolve"
	"github.com/cmdspec/cmdspec/pkg/source/manifest"
	"github.com/cmdspec/cmdspec/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. Every cobra handler
	// receives the App and reaches configuration and manifests through it.
	App struct {
		Config   config.Provider
		settings *config.Config
		opts     config.LoadOptions
		logger   *log.Logger
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// ConfigOptions seeds every configuration load; --config overrides
		// its file path.
		ConfigOptions config.LoadOptions
		Stdout        io.Writer
		Stderr        io.Writer
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		opts:   deps.ConfigOptions,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = newLogger(app.stderr, false)
	app.settings = config.DefaultConfig()
	return app
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "cmdspec"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// loadConfig loads the configuration once per command invocation. The
// --verbose flag wins over ui.verbose.
func (a *App) loadConfig(ctx context.Context, path string, verbose bool) error {
	if path != "" {
		a.opts.ConfigFilePath = path
	}
	cfg, err := a.Config.Load(ctx, a.opts)
	if err != nil {
		return err
	}
	a.settings = cfg
	a.logger = newLogger(a.stderr, verbose || cfg.UI.Verbose)
	a.logger.Debug("configuration loaded", "casing", cfg.Conventions.Casing, "format", cfg.Output.Format)
	return nil
}

// resolveManifests loads paths into a fresh registry and resolves the tree
// under the configured default conventions.
func (a *App) resolveManifests(paths []string, roots []string) (*resolve.Tree, error) {
	files := make([]types.FilesystemPath, len(paths))
	for i, p := range paths {
		files[i] = types.FilesystemPath(p)
	}

	reg := registry.New()
	if err := reg.Load(manifest.Files(files...)); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load manifests").
			WithResource(joinPaths(paths)).
			WithSuggestion("Check the manifest syntax and its 'version' field").
			Wrap(err).
			BuildError()
	}
	a.logger.Debug("manifests loaded", "files", len(paths), "definitions", reg.Len())

	engine := resolve.NewEngine(reg,
		resolve.WithDefaults(a.settings.Conventions.Convention()),
		resolve.WithLogger(a.logger),
	)
	ids := make([]cmddef.Identity, len(roots))
	for i, r := range roots {
		ids[i] = cmddef.Identity(r)
	}
	tree, err := engine.Resolve(ids...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve command tree").
			WithResource(joinPaths(paths)).
			Wrap(err).
			BuildError()
	}
	return tree, nil
}

// fail reports err on stderr with its issue page (verbose only) and wraps it
// with the exit code its class maps to.
func (a *App) fail(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if a.verbose() {
		if page, ok := a.issuePage(err); ok {
			_, _ = io.WriteString(a.stderr, page)
		}
	}
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

func (a *App) issuePage(err error) (string, bool) {
	style := glamourStyle(a.settings.UI.ColorScheme)
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		out, renderErr := ae.Render(style)
		return out, renderErr == nil && out != ""
	}
	found := issue.ForError(err)
	if found == nil {
		return "", false
	}
	out, renderErr := found.Render(style)
	return out, renderErr == nil
}

func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

func joinPaths(paths []string) string {
	return strings.Join(paths, ", ")
}

func (a *App) verbose() bool {
	return a.logger.GetLevel() <= log.DebugLevel
}
