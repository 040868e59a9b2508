package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"go.nhat.io/aferocopy/v2"
)

// Category groups artifacts by the step that produced them.
type Category string

const (
	CategoryPost         Category = "post"
	CategoryPostIndex    Category = "post_index"
	CategoryProject      Category = "project"
	CategoryProjectIndex Category = "project_index"
	CategoryTimeline     Category = "timeline"
	CategoryResume       Category = "resume"
	CategoryMedia        Category = "media"
	CategoryManifest     Category = "manifest"
)

const copyBufferSize uint = 512 * 1024

var (
	ErrPathRequired    = errors.New("publish: write requires path")
	ErrContentRequired = errors.New("publish: write requires content reader")
)

// WriteRequest describes a file written into the publish tree.
type WriteRequest struct {
	Path     string
	Content  io.Reader
	Category Category
	// Record optionally names the record the file publishes, as kind:id.
	Record string
}

// Artifact is a file produced during a run.
type Artifact struct {
	Path     string   `json:"path"`
	Category Category `json:"category"`
	Record   string   `json:"record,omitempty"`
	Size     int64    `json:"size"`
	Checksum string   `json:"checksum"`
}

// Writer writes artifacts into an afero.Fs rooted at the publish directory.
// Paths are slash separated and relative to that root.
type Writer struct {
	fs        afero.Fs
	artifacts map[string]Artifact
}

// NewWriter returns a writer over filesystem.
func NewWriter(filesystem afero.Fs) *Writer {
	return &Writer{fs: filesystem, artifacts: map[string]Artifact{}}
}

// Fs exposes the publish filesystem.
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// EnsureDir creates dir and its parents.
func (w *Writer) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir = cleanPath(dir)
	if dir == "" {
		return nil
	}
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("publish: ensure dir %s: %w", dir, err)
	}
	return nil
}

// WriteFile creates or truncates req.Path and records the artifact.
func (w *Writer) WriteFile(ctx context.Context, req WriteRequest) error {
	if req.Content == nil {
		return ErrContentRequired
	}
	target := cleanPath(req.Path)
	if target == "" {
		return ErrPathRequired
	}
	if err := w.EnsureDir(ctx, path.Dir(target)); err != nil {
		return err
	}

	file, err := w.fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("publish: open %s: %w", target, err)
	}
	hasher := xxhash.New()
	size, copyErr := io.Copy(io.MultiWriter(file, hasher), req.Content)
	closeErr := file.Close()
	if copyErr != nil {
		return fmt.Errorf("publish: write %s: %w", target, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("publish: close %s: %w", target, closeErr)
	}

	w.record(Artifact{
		Path:     target,
		Category: req.Category,
		Record:   req.Record,
		Size:     size,
		Checksum: formatChecksum(hasher.Sum64()),
	})
	return nil
}

// WriteJSON encodes value with EncodeJSON and writes it to target.
func (w *Writer) WriteJSON(ctx context.Context, target string, category Category, record string, value any) error {
	data, err := EncodeJSON(value)
	if err != nil {
		return fmt.Errorf("publish: encode %s: %w", target, err)
	}
	return w.WriteFile(ctx, WriteRequest{
		Path:     target,
		Content:  bytes.NewReader(data),
		Category: category,
		Record:   record,
	})
}

// CopyFile copies srcPath from src into target.
func (w *Writer) CopyFile(ctx context.Context, src afero.Fs, srcPath, target string, category Category) error {
	file, err := src.Open(srcPath)
	if err != nil {
		return fmt.Errorf("publish: open source %s: %w", srcPath, err)
	}
	defer file.Close()

	return w.WriteFile(ctx, WriteRequest{
		Path:     target,
		Content:  file,
		Category: category,
	})
}

// Mirror recursively copies srcDir from src into target, merging with any
// existing content. It returns the number of files copied.
func (w *Writer) Mirror(ctx context.Context, src afero.Fs, srcDir, target string, category Category) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	target = cleanPath(target)
	if err := w.EnsureDir(ctx, target); err != nil {
		return 0, err
	}

	err := aferocopy.Copy(srcDir, target, aferocopy.Options{
		SrcFs:          src,
		DestFs:         w.fs,
		Sync:           false,
		CopyBufferSize: copyBufferSize,
		OnDirExists: func(afero.Fs, string, afero.Fs, string) aferocopy.DirExistsAction {
			return aferocopy.Merge
		},
	})
	if err != nil {
		return 0, fmt.Errorf("publish: mirror %s: %w", srcDir, err)
	}

	count := 0
	root := path.Clean(srcDir)
	walkErr := afero.Walk(src, root, func(current string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(toSlash(current), toSlash(root)), "/")
		artifact, err := w.inspect(path.Join(target, rel), category)
		if err != nil {
			return err
		}
		w.record(artifact)
		count++
		return nil
	})
	if walkErr != nil {
		return count, fmt.Errorf("publish: index mirror %s: %w", srcDir, walkErr)
	}
	return count, nil
}

// Remove deletes target and forgets its artifact. Missing files are ignored.
func (w *Writer) Remove(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target = cleanPath(target)
	if target == "" {
		return ErrPathRequired
	}
	if err := w.fs.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("publish: remove %s: %w", target, err)
	}
	delete(w.artifacts, target)
	return nil
}

// Artifacts returns the recorded artifacts ordered by path.
func (w *Writer) Artifacts() []Artifact {
	out := make([]Artifact, 0, len(w.artifacts))
	for _, artifact := range w.artifacts {
		out = append(out, artifact)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Reset forgets recorded artifacts so the writer can serve another run.
func (w *Writer) Reset() {
	w.artifacts = map[string]Artifact{}
}

func (w *Writer) record(artifact Artifact) {
	w.artifacts[artifact.Path] = artifact
}

func (w *Writer) inspect(target string, category Category) (Artifact, error) {
	file, err := w.fs.Open(target)
	if err != nil {
		return Artifact{}, err
	}
	defer file.Close()

	hasher := xxhash.New()
	size, err := io.Copy(hasher, file)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Path:     target,
		Category: category,
		Size:     size,
		Checksum: formatChecksum(hasher.Sum64()),
	}, nil
}

// Checksum returns the artifact checksum of data.
func Checksum(data []byte) string {
	return formatChecksum(xxhash.Sum64(data))
}

func formatChecksum(sum uint64) string {
	hex := strconv.FormatUint(sum, 16)
	return strings.Repeat("0", 16-len(hex)) + hex
}

func cleanPath(p string) string {
	p = strings.TrimSpace(toSlash(p))
	if p == "" {
		return ""
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	return cleaned
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
