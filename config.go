package portfolio

import "github.com/goliatone/go-portfolio/internal/runtimeconfig"

var (
	ErrContentDirRequired            = runtimeconfig.ErrContentDirRequired
	ErrPublishDirRequired            = runtimeconfig.ErrPublishDirRequired
	ErrAPIDirInvalid                 = runtimeconfig.ErrAPIDirInvalid
	ErrManifestPruneRequiresManifest = runtimeconfig.ErrManifestPruneRequiresManifest
	ErrMarkdownExtensionUnknown      = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrServerAddressRequired         = runtimeconfig.ErrServerAddressRequired
	ErrWatchDebounceInvalid          = runtimeconfig.ErrWatchDebounceInvalid
	ErrLoggingProviderRequired       = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown        = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid           = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid          = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	ManifestConfig   = runtimeconfig.ManifestConfig
	ValidationConfig = runtimeconfig.ValidationConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	ServerConfig     = runtimeconfig.ServerConfig
	WatchConfig      = runtimeconfig.WatchConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
