package publish_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/internal/publish"
)

func TestEncodeJSON_MatchesPublishedFormat(t *testing.T) {
	data, err := publish.EncodeJSON(map[string]any{"html": "<p>a & b</p>", "list": []string{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"html\": \"<p>a & b</p>\",\n  \"list\": []\n}", string(data))
}

func TestWriter_WriteJSONRecordsArtifact(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := publish.NewWriter(fs)

	require.NoError(t, writer.WriteJSON(context.Background(), "api/posts/a.json", publish.CategoryPost, "post:a", map[string]string{"id": "a"}))

	data, err := afero.ReadFile(fs, "api/posts/a.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"a\"\n}", string(data))

	artifacts := writer.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, "api/posts/a.json", artifacts[0].Path)
	assert.Equal(t, publish.CategoryPost, artifacts[0].Category)
	assert.Equal(t, "post:a", artifacts[0].Record)
	assert.Equal(t, int64(len(data)), artifacts[0].Size)
	assert.Equal(t, publish.Checksum(data), artifacts[0].Checksum)
	assert.Len(t, artifacts[0].Checksum, 16)
}

func TestWriter_WriteFileOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := publish.NewWriter(fs)
	ctx := context.Background()

	require.NoError(t, writer.WriteFile(ctx, publish.WriteRequest{Path: "/x.txt", Content: strings.NewReader("a much longer body")}))
	require.NoError(t, writer.WriteFile(ctx, publish.WriteRequest{Path: "x.txt", Content: strings.NewReader("short")}))

	data, err := afero.ReadFile(fs, "x.txt")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
	assert.Len(t, writer.Artifacts(), 1)
}

func TestWriter_WriteFileValidatesRequest(t *testing.T) {
	writer := publish.NewWriter(afero.NewMemMapFs())
	ctx := context.Background()

	assert.ErrorIs(t, writer.WriteFile(ctx, publish.WriteRequest{Path: "a"}), publish.ErrContentRequired)
	assert.ErrorIs(t, writer.WriteFile(ctx, publish.WriteRequest{Path: " ", Content: strings.NewReader("")}), publish.ErrPathRequired)
}

func TestWriter_CopyFile(t *testing.T) {
	src := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(src, "resume/r2.pdf", []byte("%PDF-2"), 0o644))

	dst := afero.NewMemMapFs()
	writer := publish.NewWriter(dst)
	require.NoError(t, writer.CopyFile(context.Background(), src, "resume/r2.pdf", "resume/resume-latest.pdf", publish.CategoryResume))

	data, err := afero.ReadFile(dst, "resume/resume-latest.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-2", string(data))

	err = writer.CopyFile(context.Background(), src, "resume/missing.pdf", "resume/x.pdf", publish.CategoryResume)
	assert.Error(t, err)
}

func TestWriter_MirrorCopiesTree(t *testing.T) {
	src := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(src, "media/a.png", []byte("png"), 0o644))
	require.NoError(t, afero.WriteFile(src, "media/projects/site/cover.jpg", []byte("jpg"), 0o644))

	dst := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(dst, "media/keep.txt", []byte("existing"), 0o644))
	writer := publish.NewWriter(dst)

	count, err := writer.Mirror(context.Background(), src, "media", "media", publish.CategoryMedia)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := afero.ReadFile(dst, "media/projects/site/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))

	kept, err := afero.Exists(dst, "media/keep.txt")
	require.NoError(t, err)
	assert.True(t, kept)

	paths := []string{}
	for _, artifact := range writer.Artifacts() {
		paths = append(paths, artifact.Path)
	}
	assert.Equal(t, []string{"media/a.png", "media/projects/site/cover.jpg"}, paths)
}

func TestWriter_Remove(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := publish.NewWriter(fs)
	ctx := context.Background()

	require.NoError(t, writer.WriteFile(ctx, publish.WriteRequest{Path: "a.json", Content: strings.NewReader("{}")}))
	require.NoError(t, writer.Remove(ctx, "a.json"))
	require.NoError(t, writer.Remove(ctx, "a.json"))
	assert.Empty(t, writer.Artifacts())
}
