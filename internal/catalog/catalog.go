// Package catalog reads the publish tree the way the site does: aggregate
// lists with optional filters and single records by id.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/content"
)

// ErrNotFound is returned when a record has no published file.
var ErrNotFound = errors.New("catalog: record not found")

// categoryAll disables category filtering.
const categoryAll = "all"

// Kind filters accepted by Projects.
const (
	KindAll          = "all"
	KindProject      = content.KindProject
	KindExperimental = content.KindExperimental
)

// PostFilter narrows Posts. Empty fields do not filter.
type PostFilter struct {
	Category string
	Featured *bool
}

// ProjectFilter narrows Projects. Empty fields do not filter.
type ProjectFilter struct {
	Kind     string
	Featured *bool
}

// Catalog reads documents from an afero.Fs rooted at the publish directory.
type Catalog struct {
	fs     afero.Fs
	apiDir string
}

// New returns a catalog over filesystem. apiDir is relative to the publish root.
func New(filesystem afero.Fs, apiDir string) *Catalog {
	apiDir = strings.Trim(path.Clean("/"+strings.TrimSpace(apiDir)), "/")
	if apiDir == "" {
		apiDir = "api"
	}
	return &Catalog{fs: filesystem, apiDir: apiDir}
}

// APIDir returns the JSON directory relative to the publish root.
func (c *Catalog) APIDir() string {
	return c.apiDir
}

// Posts returns the published posts in aggregate order. A missing aggregate
// yields an empty list.
func (c *Catalog) Posts(ctx context.Context, filter PostFilter) ([]content.Post, error) {
	var posts []content.Post
	found, err := c.readJSON(ctx, path.Join(c.apiDir, "posts.json"), &posts)
	if err != nil {
		return nil, err
	}
	if !found || posts == nil {
		return []content.Post{}, nil
	}

	out := make([]content.Post, 0, len(posts))
	for _, post := range posts {
		if !matchCategory(filter.Category, post.Category) {
			continue
		}
		if filter.Featured != nil && post.Featured != *filter.Featured {
			continue
		}
		out = append(out, post)
	}
	return out, nil
}

// Post returns a single post by id.
func (c *Catalog) Post(ctx context.Context, id string) (content.Post, error) {
	if !content.SafeName(id) {
		return content.Post{}, ErrNotFound
	}
	var post content.Post
	found, err := c.readJSON(ctx, path.Join(c.apiDir, "posts", id+".json"), &post)
	if err != nil {
		return content.Post{}, err
	}
	if !found {
		return content.Post{}, ErrNotFound
	}
	return post, nil
}

// Projects returns the published projects in aggregate order. Kind "project"
// also matches items that carry no kind.
func (c *Catalog) Projects(ctx context.Context, filter ProjectFilter) ([]content.Project, error) {
	data, found, err := c.read(ctx, path.Join(c.apiDir, "projects.json"))
	if err != nil {
		return nil, err
	}
	if !found {
		return []content.Project{}, nil
	}
	items, err := content.ParseProjects(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: projects: %w", err)
	}

	kind := strings.ToLower(strings.TrimSpace(filter.Kind))
	out := make([]content.Project, 0, len(items))
	for _, item := range items {
		if !matchKind(kind, item.Kind()) {
			continue
		}
		if filter.Featured != nil && item.Featured() != *filter.Featured {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Project returns a single project by id.
func (c *Catalog) Project(ctx context.Context, id string) (content.Project, error) {
	if !content.SafeName(id) {
		return content.Project{}, ErrNotFound
	}
	var project content.Project
	found, err := c.readJSON(ctx, path.Join(c.apiDir, "projects", id+".json"), &project)
	if err != nil {
		return content.Project{}, err
	}
	if !found {
		return content.Project{}, ErrNotFound
	}
	return project, nil
}

// Timeline returns the published timeline document, an empty list when absent.
func (c *Catalog) Timeline(ctx context.Context) (json.RawMessage, error) {
	data, found, err := c.read(ctx, path.Join(c.apiDir, "timeline.json"))
	if err != nil {
		return nil, err
	}
	if !found {
		return content.EmptyCollection, nil
	}
	return content.ParseDocument(data)
}

func (c *Catalog) readJSON(ctx context.Context, name string, target any) (bool, error) {
	data, found, err := c.read(ctx, name)
	if err != nil || !found {
		return found, err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return true, fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	return true, nil
}

func (c *Catalog) read(ctx context.Context, name string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(c.fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return data, true, nil
}

// matchCategory compares categories exactly, falling back to their slugs so
// "machine-learning" selects "Machine Learning".
func matchCategory(filter, category string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, categoryAll) {
		return true
	}
	if filter == category {
		return true
	}
	want, err := slug.Normalize(filter)
	if err != nil || want == "" {
		return false
	}
	got, err := slug.Normalize(category)
	return err == nil && got == want
}

func matchKind(filter, kind string) bool {
	switch filter {
	case "", KindAll:
		return true
	case KindProject:
		return kind == "" || kind == KindProject
	default:
		return kind == filter
	}
}
