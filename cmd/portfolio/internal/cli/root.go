// Package cli implements the portfolio command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	portfolio "github.com/goliatone/go-portfolio"
)

const (
	envPrefix         = "PORTFOLIO"
	defaultConfigName = "portfolio"
)

// options holds flag values shared by every command.
type options struct {
	configFile string
	viper      *viper.Viper
	config     portfolio.Config
	moduleOpts []portfolio.Option
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(&options{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCommand(opts *options) *cobra.Command {
	opts.viper = viper.New()

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Compile portfolio content into static JSON",
		Long:          "portfolio reads Markdown posts and JSON records from the content directory and writes the API documents the site consumes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts, false)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./portfolio.yaml)")
	flags.String("content", "", "content directory")
	flags.String("publish", "", "publish directory")
	flags.String("api", "", "JSON directory inside the publish directory")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-provider", "", "log provider (console, gologger)")
	bindFlag(opts.viper, "content_dir", flags.Lookup("content"))
	bindFlag(opts.viper, "publish_dir", flags.Lookup("publish"))
	bindFlag(opts.viper, "api_dir", flags.Lookup("api"))
	bindFlag(opts.viper, "logging.level", flags.Lookup("log-level"))
	bindFlag(opts.viper, "logging.provider", flags.Lookup("log-provider"))

	root.AddCommand(newBuildCommand(opts), newServeCommand(opts), newWatchCommand(opts))
	return root
}

// load resolves defaults, the config file, PORTFOLIO_* variables and flags
// into opts.config, in increasing order of precedence.
func (opts *options) load(cmd *cobra.Command) error {
	v := opts.viper
	setDefaults(v, portfolio.DefaultConfig())

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.configFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg := portfolio.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	opts.config = cfg
	return nil
}

func (opts *options) module() (*portfolio.Module, error) {
	return portfolio.New(opts.config, opts.moduleOpts...)
}

func setDefaults(v *viper.Viper, cfg portfolio.Config) {
	v.SetDefault("content_dir", cfg.ContentDir)
	v.SetDefault("publish_dir", cfg.PublishDir)
	v.SetDefault("api_dir", cfg.APIDir)
	v.SetDefault("dry_run", cfg.DryRun)
	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.allow_raw_html", cfg.Markdown.AllowRawHTML)
	v.SetDefault("markdown.heading_ids", cfg.Markdown.HeadingIDs)
	v.SetDefault("manifest.enabled", cfg.Manifest.Enabled)
	v.SetDefault("manifest.prune", cfg.Manifest.Prune)
	v.SetDefault("validation.projects", cfg.Validation.Projects)
	v.SetDefault("validation.timeline", cfg.Validation.Timeline)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
	v.SetDefault("server.address", cfg.Server.Address)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.SetDefault("watch.debounce", cfg.Watch.Debounce)
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	_ = v.BindPFlag(key, flag)
}
