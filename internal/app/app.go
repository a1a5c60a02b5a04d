package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/ctxlog"
	"github.com/vk/plotmod/internal/document"
	"github.com/vk/plotmod/internal/property"
	"github.com/vk/plotmod/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	model     *config.Model
	evaluator config.Evaluator
	doc       *document.Document
	roots     []*document.Instance
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry, with the document already constructed.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Extra definitions load before the document's own files, so classes
	// in the document may name defs-supplied classes as parents.
	var paths []string
	if appConfig.DefsPath != "" {
		paths = append(paths, appConfig.DefsPath)
	}
	if appConfig.DocPath != "" {
		paths = append(paths, appConfig.DocPath)
	}

	// Load all definitions into the format-agnostic model first.
	cfgModel, evaluator, err := loader.Load(ctx, paths...)
	if err != nil {
		// A failure to load definitions is a fatal startup error.
		panic(fmt.Errorf("failed to load definitions: %w", err))
	}
	logger.Debug("Definitions loaded and translated into unified model.")

	// Register builtin model packages, then build the loaded classes on
	// top of them.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			panic(fmt.Errorf("registering builtin models: %w", err))
		}
	}
	logger.Debug("Builtin model packages registered.", "count", len(modules))

	if err := reg.PopulateFromModel(cfgModel); err != nil {
		panic(fmt.Errorf("building loaded classes: %w", err))
	}
	logger.Debug("Registry populated from definition model.")

	if err := reg.Validate(ctx); err != nil {
		// A programmer error: definitions disagree with themselves.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	a := &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		model:     cfgModel,
		evaluator: evaluator,
	}
	if err := a.buildDocument(ctx); err != nil {
		panic(fmt.Errorf("constructing document: %w", err))
	}
	logger.Debug("Document constructed.", "instances", len(a.roots))
	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Document returns the constructed document and its root instances.
func (a *App) Document() (*document.Document, []*document.Instance) {
	return a.doc, a.roots
}

// buildDocument constructs one instance per model block, in declared
// order. Attribute expressions may reference earlier instances by local
// name via ref().
func (a *App) buildDocument(ctx context.Context) error {
	doc := document.NewDocument(a.registry)
	named := make(map[string]*document.Instance)

	scope := &config.Scope{
		Resolve: func(name string) (cty.Value, error) {
			in, ok := named[name]
			if !ok {
				return cty.NilVal, fmt.Errorf("no instance named %q defined before this point", name)
			}
			return property.RefVal(in.ID()), nil
		},
	}

	for _, def := range a.model.Instances {
		class, ok := a.registry.Class(def.Class)
		if !ok {
			return fmt.Errorf("model %q: %w: %q", def.Name, registry.ErrUnknownClass, def.Class)
		}
		if _, dup := named[def.Name]; dup {
			return fmt.Errorf("model %q defined twice", def.Name)
		}

		values := make(map[string]cty.Value, len(def.Attributes))
		for name, expr := range def.Attributes {
			v, err := a.evaluator.Evaluate(ctx, expr, scope)
			if err != nil {
				return fmt.Errorf("model %q, attribute %q: %w", def.Name, name, err)
			}
			values[name] = v
		}

		in, err := doc.New(class, values)
		if err != nil {
			return fmt.Errorf("model %q: %w", def.Name, err)
		}
		named[def.Name] = in
		a.roots = append(a.roots, in)
	}

	a.doc = doc
	return nil
}
