package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/internal/content"
)

func TestResumeMetadata_CurrentFilename(t *testing.T) {
	meta, err := content.ParseResumeMetadata([]byte(`{
		"current_version": "v2",
		"versions": [
			{"version": "v1", "filename": "r1.pdf"},
			{"version": "v2", "filename": "r2.pdf", "date": "2024-05-01"}
		]
	}`))
	require.NoError(t, err)

	require.True(t, meta.HasCurrentVersion())
	name, ok := meta.CurrentFilename()
	require.True(t, ok)
	assert.Equal(t, "r2.pdf", name)
}

func TestResumeMetadata_MissingOrEmptyVersion(t *testing.T) {
	for _, doc := range []string{`{}`, `[]`, `{"current_version": ""}`, `{"current_version": null}`, `{"current_version": 0}`} {
		meta, err := content.ParseResumeMetadata([]byte(doc))
		require.NoError(t, err, doc)
		assert.False(t, meta.HasCurrentVersion(), doc)
	}
}

func TestResumeMetadata_VersionComparisonIsTypeSensitive(t *testing.T) {
	meta, err := content.ParseResumeMetadata([]byte(`{"current_version": 2, "versions": [{"version": "2", "filename": "a.pdf"}, {"version": 2.0, "filename": "b.pdf"}]}`))
	require.NoError(t, err)

	name, ok := meta.CurrentFilename()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", name)
}

func TestParseResumeMetadata_InvalidJSON(t *testing.T) {
	_, err := content.ParseResumeMetadata([]byte(`{"current_version":`))
	assert.Error(t, err)
}
