package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portfolio "github.com/goliatone/go-portfolio"
)

func runCLI(t *testing.T, opts *options, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(opts)
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeContent(t *testing.T, fs afero.Fs) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "posts/a.md", []byte("---\nid: a\ntitle: A\ndate: 2024-05-01\n---\ntext\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "projects.json", []byte(`[{"id":"p","title":"P"}]`), 0o644))
}

func TestBuildWritesDocuments(t *testing.T) {
	source, publish := afero.NewMemMapFs(), afero.NewMemMapFs()
	writeContent(t, source)
	opts := &options{moduleOpts: []portfolio.Option{
		portfolio.WithSourceFs(source),
		portfolio.WithPublishFs(publish),
	}}

	out, err := runCLI(t, opts, "build", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1 posts, 1 projects")

	ok, err := afero.Exists(publish, "api/posts.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRootWithoutArgsBuilds(t *testing.T) {
	source, publish := afero.NewMemMapFs(), afero.NewMemMapFs()
	writeContent(t, source)
	opts := &options{moduleOpts: []portfolio.Option{
		portfolio.WithSourceFs(source),
		portfolio.WithPublishFs(publish),
	}}

	_, err := runCLI(t, opts, "--log-level", "error")
	require.NoError(t, err)

	ok, err := afero.Exists(publish, "api/projects.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildDryRunReports(t *testing.T) {
	source, publish := afero.NewMemMapFs(), afero.NewMemMapFs()
	writeContent(t, source)
	opts := &options{moduleOpts: []portfolio.Option{
		portfolio.WithSourceFs(source),
		portfolio.WithPublishFs(publish),
	}}

	out, err := runCLI(t, opts, "build", "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "would write")

	ok, err := afero.DirExists(publish, "api")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildFailsWithoutPosts(t *testing.T) {
	opts := &options{moduleOpts: []portfolio.Option{
		portfolio.WithSourceFs(afero.NewMemMapFs()),
		portfolio.WithPublishFs(afero.NewMemMapFs()),
	}}

	_, err := runCLI(t, opts, "build", "--log-level", "error")
	assert.Error(t, err)
}

func TestLoadReadsFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(file, []byte("content_dir: site\napi_dir: data\nmanifest:\n  enabled: true\nwatch:\n  debounce: 1s\n"), 0o644))
	t.Setenv("PORTFOLIO_PUBLISH_DIR", "dist")
	t.Setenv("PORTFOLIO_LOGGING_LEVEL", "debug")

	opts := &options{}
	root := newRootCommand(opts)
	require.NoError(t, root.ParseFlags([]string{"--config", file, "--api", "json"}))
	require.NoError(t, opts.load(root))

	cfg := opts.config
	assert.Equal(t, "site", cfg.ContentDir)
	assert.Equal(t, "dist", cfg.PublishDir)
	assert.Equal(t, "json", cfg.APIDir)
	assert.True(t, cfg.Manifest.Enabled)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, portfolio.DefaultConfig().Server.AllowedOrigins, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsMissingExplicitConfig(t *testing.T) {
	opts := &options{}
	root := newRootCommand(opts)
	require.NoError(t, root.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
	assert.Error(t, opts.load(root))
}

func TestExecuteReturnsExitCode(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Execute([]string{"build", "--content", filepath.Join(t.TempDir(), "none"), "--publish", t.TempDir(), "--log-level", "error"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "error:")
}
