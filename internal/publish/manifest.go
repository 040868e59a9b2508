package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/identity"
)

const (
	// ManifestFileName is stored at the root of the publish tree.
	ManifestFileName    = ".content-manifest.json"
	manifestFileVersion = 1
)

// Manifest lists the artifacts of the last run. GeneratedAt is the only field
// that changes between runs over unchanged content.
type Manifest struct {
	Version     int             `json:"version"`
	GeneratedAt time.Time       `json:"generated_at"`
	Artifacts   []ManifestEntry `json:"artifacts"`
}

// ManifestEntry describes a single artifact.
type ManifestEntry struct {
	ID         string   `json:"id"`
	Path       string   `json:"path"`
	Category   Category `json:"category"`
	Record     string   `json:"record,omitempty"`
	RecordUUID string   `json:"record_uuid,omitempty"`
	Size       int64    `json:"size"`
	Checksum   string   `json:"checksum"`
}

// NewManifest builds a manifest from artifacts. The manifest file itself is
// never listed.
func NewManifest(artifacts []Artifact, generatedAt time.Time) *Manifest {
	manifest := &Manifest{
		Version:     manifestFileVersion,
		GeneratedAt: generatedAt.UTC(),
		Artifacts:   make([]ManifestEntry, 0, len(artifacts)),
	}
	for _, artifact := range artifacts {
		if artifact.Path == ManifestFileName {
			continue
		}
		entry := ManifestEntry{
			ID:       identity.ArtifactUUID(artifact.Path).String(),
			Path:     artifact.Path,
			Category: artifact.Category,
			Record:   artifact.Record,
			Size:     artifact.Size,
			Checksum: artifact.Checksum,
		}
		if kind, id, ok := strings.Cut(artifact.Record, ":"); ok {
			entry.RecordUUID = identity.RecordUUID(kind, id).String()
		}
		manifest.Artifacts = append(manifest.Artifacts, entry)
	}
	manifest.sort()
	return manifest
}

// ParseManifest decodes a manifest document. Empty input yields an empty
// manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &Manifest{Version: manifestFileVersion}, nil
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("publish: parse manifest: %w", err)
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	manifest.sort()
	return &manifest, nil
}

// ReadManifest loads the manifest stored in filesystem. A missing manifest
// yields an empty one.
func ReadManifest(filesystem afero.Fs) (*Manifest, error) {
	data, err := afero.ReadFile(filesystem, ManifestFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Manifest{Version: manifestFileVersion}, nil
		}
		return nil, fmt.Errorf("publish: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Marshal encodes the manifest with EncodeJSON.
func (m *Manifest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	cloned := *m
	cloned.Artifacts = append([]ManifestEntry(nil), m.Artifacts...)
	if cloned.Artifacts == nil {
		cloned.Artifacts = []ManifestEntry{}
	}
	if cloned.Version == 0 {
		cloned.Version = manifestFileVersion
	}
	cloned.sort()
	return EncodeJSON(cloned)
}

// Paths returns the set of artifact paths.
func (m *Manifest) Paths() map[string]struct{} {
	out := map[string]struct{}{}
	if m == nil {
		return out
	}
	for _, entry := range m.Artifacts {
		out[entry.Path] = struct{}{}
	}
	return out
}

// Stale lists paths recorded in previous that current no longer produces.
func Stale(previous, current *Manifest) []string {
	if previous == nil {
		return nil
	}
	keep := current.Paths()
	stale := []string{}
	for _, entry := range previous.Artifacts {
		if _, ok := keep[entry.Path]; ok {
			continue
		}
		stale = append(stale, entry.Path)
	}
	sort.Strings(stale)
	return stale
}

// WriteManifest stores manifest at the root of the writer's filesystem.
func (w *Writer) WriteManifest(ctx context.Context, manifest *Manifest) error {
	data, err := manifest.Marshal()
	if err != nil {
		return fmt.Errorf("publish: encode manifest: %w", err)
	}
	return w.WriteFile(ctx, WriteRequest{
		Path:     ManifestFileName,
		Content:  strings.NewReader(string(data)),
		Category: CategoryManifest,
	})
}

// Prune removes the given artifact paths and returns those actually removed.
func (w *Writer) Prune(ctx context.Context, paths []string) ([]string, error) {
	removed := make([]string, 0, len(paths))
	for _, target := range paths {
		exists, err := afero.Exists(w.fs, cleanPath(target))
		if err != nil {
			return removed, fmt.Errorf("publish: stat %s: %w", target, err)
		}
		if !exists {
			continue
		}
		if err := w.Remove(ctx, target); err != nil {
			return removed, err
		}
		removed = append(removed, cleanPath(target))
	}
	return removed, nil
}

func (m *Manifest) sort() {
	sort.Slice(m.Artifacts, func(i, j int) bool {
		return m.Artifacts[i].Path < m.Artifacts[j].Path
	})
}
