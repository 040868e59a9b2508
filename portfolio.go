// Package portfolio compiles a portfolio content tree into static JSON
// documents and serves them during development.
package portfolio

import (
	"context"

	"github.com/goliatone/go-portfolio/internal/catalog"
	compilecmd "github.com/goliatone/go-portfolio/internal/commands/compile"
	"github.com/goliatone/go-portfolio/internal/compiler"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/internal/server"
)

// Report summarises a compile run.
type Report = compiler.Report

// Catalog reads published documents.
type Catalog = *catalog.Catalog

// Option overrides parts of the runtime wiring.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithSourceFs       = di.WithSourceFs
	WithPublishFs      = di.WithPublishFs
	WithMarkdownParser = di.WithMarkdownParser
	WithCompiler       = di.WithCompiler
)

// Module is the top level façade over the compiler, catalog and dev server.
type Module struct {
	container *di.Container
}

// New builds a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// Compile runs the compiler once. The configured dry run flag applies unless
// dryRun is set.
func (m *Module) Compile(ctx context.Context, dryRun bool) (*Report, error) {
	return m.compile(ctx, dryRun, compilecmd.TriggerCLI)
}

func (m *Module) compile(ctx context.Context, dryRun bool, trigger string) (*Report, error) {
	return m.container.CompileCommand().Run(ctx, compilecmd.CompileContentCommand{
		DryRun:  dryRun || m.container.Config.DryRun,
		Trigger: trigger,
	})
}

// Catalog exposes the read side over published documents.
func (m *Module) Catalog() Catalog {
	return m.container.Catalog()
}

// Server builds the dev API server.
func (m *Module) Server() *server.Server {
	return m.container.Server()
}

// Watch recompiles on every settled change under the content directory
// until ctx is cancelled. Failed rebuilds are logged and do not stop it.
func (m *Module) Watch(ctx context.Context) error {
	w, err := m.container.Watcher(m.rebuild)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// Serve compiles once and then serves the publish tree. With watch set, the
// content directory is watched while the server runs.
func (m *Module) Serve(ctx context.Context, watchContent bool) error {
	if err := m.container.Config.ValidateServer(); err != nil {
		return err
	}
	if _, err := m.compile(ctx, false, compilecmd.TriggerServe); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	if watchContent {
		go func() { errs <- m.Watch(ctx) }()
	}
	go func() { errs <- m.Server().Run(ctx) }()

	err := <-errs
	cancel()
	if watchContent {
		if other := <-errs; err == nil {
			err = other
		}
	}
	return err
}

func (m *Module) rebuild(ctx context.Context) error {
	_, err := m.compile(ctx, false, compilecmd.TriggerWatch)
	return err
}
