package markdown

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const defaultExtension = ".md"

// Document is a Markdown file split into metadata and body.
type Document struct {
	// Path is the slash-separated location of the file inside the loader's Fs.
	Path        string
	Name        string
	FrontMatter FrontMatter
	Body        []byte
	BodyHTML    []byte
}

// InvalidDocument records a file whose front matter could not be parsed.
type InvalidDocument struct {
	Path string
	Err  error
}

// LoadResult groups the documents found in a directory.
type LoadResult struct {
	Documents []*Document
	Invalid   []InvalidDocument
}

// Loader reads Markdown documents from a single directory of an afero.Fs.
// Sub-directories are not traversed.
type Loader struct {
	fs        afero.Fs
	extension string
}

// NewLoader constructs a Loader over filesystem. An empty extension selects ".md".
func NewLoader(filesystem afero.Fs, extension string) *Loader {
	if strings.TrimSpace(extension) == "" {
		extension = defaultExtension
	}
	return &Loader{fs: filesystem, extension: extension}
}

// LoadFile reads and splits a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, &frontMatterError{path: name, err: err}
	}

	return &Document{
		Path:        name,
		Name:        path.Base(name),
		FrontMatter: meta,
		Body:        body,
	}, nil
}

// LoadDirectory returns every document in dir whose name carries the loader's
// extension (case-sensitive), ordered by file name. Files with unparseable
// front matter are reported in LoadResult.Invalid; a missing directory or an
// unreadable file is an error.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) (*LoadResult, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("markdown loader list %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	result := &LoadResult{Documents: make([]*Document, 0, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), l.extension) {
			continue
		}
		doc, err := l.LoadFile(ctx, path.Join(dir, entry.Name()))
		if err != nil {
			var fmErr *frontMatterError
			if errors.As(err, &fmErr) {
				result.Invalid = append(result.Invalid, InvalidDocument{Path: fmErr.path, Err: fmErr.err})
				continue
			}
			return nil, err
		}
		result.Documents = append(result.Documents, doc)
	}
	return result, nil
}

type frontMatterError struct {
	path string
	err  error
}

func (e *frontMatterError) Error() string {
	return fmt.Sprintf("markdown loader %s: %v", e.path, e.err)
}

func (e *frontMatterError) Unwrap() error { return e.err }
