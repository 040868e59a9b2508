package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/internal/server"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"api/posts.json":           `[{"id":"b","title":"B","excerpt":"","category":"Go","date":"2024-02-01","featured":true,"content_html":""},{"id":"a","title":"A","excerpt":"","category":"Life","date":"2024-01-01","featured":false,"content_html":""}]`,
		"api/posts/a.json":         `{"id":"a","title":"A","excerpt":"","category":"Life","date":"2024-01-01","featured":false,"content_html":""}`,
		"api/projects.json":        `[{"id":"p","title":"P","featured":true},{"id":"e","kind":"experimental"}]`,
		"api/projects/p.json":      "{\n  \"id\": \"p\",\n  \"title\": \"P\",\n  \"featured\": true\n}",
		"api/timeline.json":        `[{"id":1,"type":"education"}]`,
		"media/logo.svg":           "<svg/>",
		"resume/resume-latest.pdf": "%PDF",
	}
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
	return server.New(server.Config{
		Address:        ":0",
		AllowedOrigins: []string{"http://localhost:5173"},
		APIDir:         "api",
	}, fs, nil).Handler()
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListPosts(t *testing.T) {
	handler := newTestServer(t)

	rec := get(t, handler, "/api/blog/posts?category=all")
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "b", posts[0]["id"])

	rec = get(t, handler, "/api/blog/posts?featured=false")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0]["id"])

	rec = get(t, handler, "/api/blog/posts?featured=perhaps")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetPost(t *testing.T) {
	handler := newTestServer(t)

	rec := get(t, handler, "/api/blog/posts/a")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"A"`)

	rec = get(t, handler, "/api/blog/posts/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Post not found"}`, rec.Body.String())
}

func TestProjects(t *testing.T) {
	handler := newTestServer(t)

	rec := get(t, handler, "/api/projects?kind=experimental")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"e","kind":"experimental"}]`, rec.Body.String())

	rec = get(t, handler, "/api/projects?featured=true")
	assert.JSONEq(t, `[{"id":"p","title":"P","featured":true}]`, rec.Body.String())

	rec = get(t, handler, "/api/projects/p")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"p","title":"P","featured":true}`, rec.Body.String())

	rec = get(t, handler, "/api/projects/e")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Project not found"}`, rec.Body.String())
}

func TestPublishedDocumentsAreServedVerbatim(t *testing.T) {
	handler := newTestServer(t)

	rec := get(t, handler, "/api/projects/p.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{\n  \"id\": \"p\",\n  \"title\": \"P\",\n  \"featured\": true\n}", rec.Body.String())

	rec = get(t, handler, "/api/posts.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"b"`)

	rec = get(t, handler, "/api/posts/nope.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, handler, "/api/timeline")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"type":"education"}]`, rec.Body.String())
}

func TestStaticMediaAndResume(t *testing.T) {
	handler := newTestServer(t)

	rec := get(t, handler, "/media/logo.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg/>", rec.Body.String())

	rec = get(t, handler, "/resume/resume-latest.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF", rec.Body.String())
}

func TestCORSForDevOrigin(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, newTestServer(t), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}
