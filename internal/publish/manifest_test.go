package publish_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/internal/publish"
)

func TestManifest_DeterministicApartFromTimestamp(t *testing.T) {
	artifacts := []publish.Artifact{
		{Path: "api/projects.json", Category: publish.CategoryProjectIndex, Size: 2, Checksum: "b"},
		{Path: "api/posts/a.json", Category: publish.CategoryPost, Record: "post:a", Size: 1, Checksum: "a"},
		{Path: publish.ManifestFileName, Category: publish.CategoryManifest},
	}

	first, err := publish.NewManifest(artifacts, time.Unix(10, 0)).Marshal()
	require.NoError(t, err)

	reversed := []publish.Artifact{artifacts[2], artifacts[1], artifacts[0]}
	second := publish.NewManifest(reversed, time.Unix(10, 0))
	secondData, err := second.Marshal()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(secondData))
	require.Len(t, second.Artifacts, 2)
	assert.Equal(t, "api/posts/a.json", second.Artifacts[0].Path)
	assert.NotEmpty(t, second.Artifacts[0].ID)
	assert.NotEmpty(t, second.Artifacts[0].RecordUUID)
	assert.Empty(t, second.Artifacts[1].RecordUUID)
}

func TestManifest_RoundTripThroughWriter(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := publish.NewWriter(fs)
	ctx := context.Background()

	missing, err := publish.ReadManifest(fs)
	require.NoError(t, err)
	assert.Empty(t, missing.Artifacts)

	require.NoError(t, writer.WriteJSON(ctx, "api/timeline.json", publish.CategoryTimeline, "", []any{}))
	manifest := publish.NewManifest(writer.Artifacts(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, writer.WriteManifest(ctx, manifest))

	loaded, err := publish.ReadManifest(fs)
	require.NoError(t, err)
	require.Len(t, loaded.Artifacts, 1)
	assert.Equal(t, "api/timeline.json", loaded.Artifacts[0].Path)
	assert.True(t, loaded.GeneratedAt.Equal(manifest.GeneratedAt))
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := publish.ParseManifest([]byte("{"))
	assert.Error(t, err)

	empty, err := publish.ParseManifest(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Version)
}

func TestStaleAndPrune(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := publish.NewWriter(fs)
	ctx := context.Background()

	for _, name := range []string{"api/posts/a.json", "api/posts/b.json"} {
		require.NoError(t, writer.WriteFile(ctx, publish.WriteRequest{Path: name, Content: strings.NewReader("{}")}))
	}
	previous := publish.NewManifest(writer.Artifacts(), time.Now())
	previous.Artifacts = append(previous.Artifacts, publish.ManifestEntry{Path: "api/posts/gone.json"})

	current := publish.NewManifest([]publish.Artifact{{Path: "api/posts/a.json"}}, time.Now())

	stale := publish.Stale(previous, current)
	assert.Equal(t, []string{"api/posts/b.json", "api/posts/gone.json"}, stale)

	removed, err := writer.Prune(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, []string{"api/posts/b.json"}, removed)

	exists, err := afero.Exists(fs, "api/posts/b.json")
	require.NoError(t, err)
	assert.False(t, exists)
}
