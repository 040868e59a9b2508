package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Config controls how the Markdown service discovers and renders files.
type Config struct {
	Extension string
	Parser    interfaces.ParseOptions
	Logger    interfaces.Logger
}

// Service pairs a Loader with a MarkdownParser.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

// NewService constructs a Markdown service reading from filesystem. When
// parser is nil a GoldmarkParser with cfg.Parser defaults is used.
func NewService(filesystem afero.Fs, cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	if filesystem == nil {
		return nil, errors.New("markdown service: filesystem is required")
	}
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	cfg.Logger = logging.Ensure(cfg.Logger)
	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(filesystem, cfg.Extension),
	}, nil
}

// LoadDirectory loads every document in dir and renders its body to HTML.
func (s *Service) LoadDirectory(ctx context.Context, dir string) (*LoadResult, error) {
	result, err := s.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, doc := range result.Documents {
		if err := s.RenderDocument(ctx, doc); err != nil {
			return nil, err
		}
		s.cfg.Logger.Debug("markdown.document.rendered", "path", doc.Path, "bytes", len(doc.BodyHTML))
	}
	s.cfg.Logger.Debug("markdown.directory.loaded", "dir", dir, "documents", len(result.Documents), "invalid", len(result.Invalid))
	return result, nil
}

// Render converts Markdown bytes into HTML.
func (s *Service) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.Parse(markdown)
}

// RenderDocument fills doc.BodyHTML from doc.Body.
func (s *Service) RenderDocument(ctx context.Context, doc *Document) error {
	if doc == nil {
		return errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body)
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.Path, err)
	}
	doc.BodyHTML = html
	return nil
}
