// Package di wires the portfolio runtime from a validated configuration.
package di

import (
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/catalog"
	"github.com/goliatone/go-portfolio/internal/commands"
	compilecmd "github.com/goliatone/go-portfolio/internal/commands/compile"
	"github.com/goliatone/go-portfolio/internal/compiler"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/logging/console"
	"github.com/goliatone/go-portfolio/internal/logging/gologger"
	"github.com/goliatone/go-portfolio/internal/markdown"
	"github.com/goliatone/go-portfolio/internal/runtimeconfig"
	"github.com/goliatone/go-portfolio/internal/server"
	"github.com/goliatone/go-portfolio/internal/watch"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Container holds the services built from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	source         afero.Fs
	publish        afero.Fs
	parser         interfaces.MarkdownParser

	compilerSvc compiler.Service
	compileCmd  *compilecmd.Handler
	catalog     *catalog.Catalog
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithSourceFs replaces the content directory with an arbitrary filesystem.
func WithSourceFs(fs afero.Fs) Option {
	return func(c *Container) {
		if fs != nil {
			c.source = fs
		}
	}
}

// WithPublishFs replaces the publish directory with an arbitrary filesystem.
func WithPublishFs(fs afero.Fs) Option {
	return func(c *Container) {
		if fs != nil {
			c.publish = fs
		}
	}
}

// WithMarkdownParser swaps the goldmark renderer.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithCompiler replaces the compiler service.
func WithCompiler(svc compiler.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.compilerSvc = svc
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.source == nil {
		c.source = afero.NewBasePathFs(afero.NewOsFs(), cfg.ContentDir)
	}
	if c.publish == nil {
		c.publish = afero.NewBasePathFs(afero.NewOsFs(), cfg.PublishDir)
	}
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(c.parseOptions())
	}

	if c.compilerSvc == nil {
		svc, err := compiler.NewService(compiler.Config{
			APIDir:           cfg.APIPath(),
			Markdown:         c.parseOptions(),
			Manifest:         cfg.Manifest.Enabled,
			PruneStale:       cfg.Manifest.Prune,
			ValidateProjects: cfg.Validation.Projects,
			ValidateTimeline: cfg.Validation.Timeline,
		}, compiler.Dependencies{
			Source:  c.source,
			Publish: c.publish,
			Parser:  c.parser,
			Logger:  logging.CompilerLogger(c.loggerProvider),

			MarkdownLogger: logging.MarkdownLogger(c.loggerProvider),
		})
		if err != nil {
			return nil, err
		}
		c.compilerSvc = svc
	}

	handler, err := compilecmd.NewHandler(c.compilerSvc, commands.Logger(c.loggerProvider, "compile"))
	if err != nil {
		return nil, err
	}
	c.compileCmd = handler
	c.catalog = catalog.New(c.publish, cfg.APIPath())
	return c, nil
}

// LoggerProvider exposes the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// SourceFs returns the content filesystem.
func (c *Container) SourceFs() afero.Fs { return c.source }

// PublishFs returns the publish filesystem.
func (c *Container) PublishFs() afero.Fs { return c.publish }

// CompilerService returns the content compiler.
func (c *Container) CompilerService() compiler.Service { return c.compilerSvc }

// CompileCommand returns the serialised compile command handler.
func (c *Container) CompileCommand() *compilecmd.Handler { return c.compileCmd }

// Catalog returns the read side over published documents.
func (c *Container) Catalog() *catalog.Catalog { return c.catalog }

// Server builds the dev API server over the publish filesystem.
func (c *Container) Server() *server.Server {
	return server.New(server.Config{
		Address:        c.Config.Server.Address,
		AllowedOrigins: c.Config.Server.AllowedOrigins,
		APIDir:         c.Config.APIPath(),
	}, c.publish, logging.ServerLogger(c.loggerProvider))
}

// Watcher builds a watcher over the content directory that calls rebuild.
func (c *Container) Watcher(rebuild watch.RebuildFunc) (*watch.Watcher, error) {
	return watch.New(watch.Config{
		Root:     c.Config.ContentDir,
		Debounce: c.Config.Watch.Debounce,
	}, rebuild, logging.WatchLogger(c.loggerProvider))
}

func (c *Container) parseOptions() interfaces.ParseOptions {
	md := c.Config.Markdown
	return interfaces.ParseOptions{
		Extensions:   append([]string(nil), md.Extensions...),
		HardWraps:    md.HardWraps,
		AllowRawHTML: md.AllowRawHTML,
		HeadingIDs:   md.HeadingIDs,
	}
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		opts := console.Options{Writer: os.Stderr}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}
