package runtimeconfig

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/internal/markdown"
)

var ErrContentDirRequired = errors.New("portfolio config: content directory is required")
var ErrPublishDirRequired = errors.New("portfolio config: publish directory is required")

// ErrAPIDirInvalid indicates an API directory that escapes the publish tree.
var ErrAPIDirInvalid = errors.New("portfolio config: api directory must be relative to the publish directory")

// ErrManifestPruneRequiresManifest keeps pruning behind the manifest flag, since stale
// artifacts are only known through the previous manifest.
var ErrManifestPruneRequiresManifest = errors.New("portfolio config: manifest prune requires the manifest to be enabled")
var ErrMarkdownExtensionUnknown = errors.New("portfolio config: markdown extension is not supported")
var ErrServerAddressRequired = errors.New("portfolio config: server address is required")
var ErrWatchDebounceInvalid = errors.New("portfolio config: watch debounce must be zero or positive")
var ErrLoggingProviderRequired = errors.New("portfolio config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("portfolio config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("portfolio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("portfolio config: logging format is invalid")

// Config aggregates the settings of a compiler run and of the dev server.
type Config struct {
	ContentDir string           `mapstructure:"content_dir" json:"content_dir"`
	PublishDir string           `mapstructure:"publish_dir" json:"publish_dir"`
	APIDir     string           `mapstructure:"api_dir" json:"api_dir"`
	DryRun     bool             `mapstructure:"dry_run" json:"dry_run"`
	Markdown   MarkdownConfig   `mapstructure:"markdown" json:"markdown"`
	Manifest   ManifestConfig   `mapstructure:"manifest" json:"manifest"`
	Validation ValidationConfig `mapstructure:"validation" json:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging" json:"logging"`
	Server     ServerConfig     `mapstructure:"server" json:"server"`
	Watch      WatchConfig      `mapstructure:"watch" json:"watch"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions   []string `mapstructure:"extensions" json:"extensions"`
	HardWraps    bool     `mapstructure:"hard_wraps" json:"hard_wraps"`
	AllowRawHTML bool     `mapstructure:"allow_raw_html" json:"allow_raw_html"`
	HeadingIDs   bool     `mapstructure:"heading_ids" json:"heading_ids"`
}

// ManifestConfig controls the build manifest written at the publish root.
type ManifestConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	Prune   bool `mapstructure:"prune" json:"prune"`
}

// ValidationConfig toggles schema checks on published records. Failures are
// reported as warnings only.
type ValidationConfig struct {
	Projects bool `mapstructure:"projects" json:"projects"`
	Timeline bool `mapstructure:"timeline" json:"timeline"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider" json:"provider"`
	Level     string   `mapstructure:"level" json:"level"`
	Format    string   `mapstructure:"format" json:"format"`
	AddSource bool     `mapstructure:"add_source" json:"add_source"`
	Focus     []string `mapstructure:"focus" json:"focus"`
}

// ServerConfig configures the dev API server.
type ServerConfig struct {
	Address        string   `mapstructure:"address" json:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins"`
}

// WatchConfig configures recompilation on content changes.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" json:"debounce"`
}

// DefaultConfig returns the layout used by the portfolio site: content under
// ./content, output under ./public with JSON documents in ./public/api.
func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		PublishDir: "public",
		APIDir:     "api",
		Markdown: MarkdownConfig{
			Extensions: []string{"table", "strikethrough"},
		},
		Manifest: ManifestConfig{},
		Validation: ValidationConfig{
			Projects: true,
			Timeline: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Server: ServerConfig{
			Address: ":8000",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
				"http://localhost:4173",
				"http://127.0.0.1:4173",
			},
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.PublishDir) == "" {
		return ErrPublishDirRequired
	}
	if api := strings.TrimSpace(cfg.APIDir); api != "" {
		cleaned := path.Clean(strings.ReplaceAll(api, "\\", "/"))
		if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			return fmt.Errorf("%w: %s", ErrAPIDirInvalid, api)
		}
	}
	if cfg.Manifest.Prune && !cfg.Manifest.Enabled {
		return ErrManifestPruneRequiresManifest
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}
	if cfg.Watch.Debounce < 0 {
		return ErrWatchDebounceInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// ValidateServer checks the settings needed by the dev server.
func (cfg Config) ValidateServer() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Server.Address) == "" {
		return ErrServerAddressRequired
	}
	return nil
}

// APIPath returns the API directory relative to the publish root.
func (cfg Config) APIPath() string {
	api := strings.TrimSpace(cfg.APIDir)
	if api == "" {
		return "api"
	}
	return strings.Trim(path.Clean(strings.ReplaceAll(api, "\\", "/")), "/")
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
