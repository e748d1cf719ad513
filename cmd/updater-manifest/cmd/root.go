package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Voice-Wise/release/internal/config"
	"github.com/Voice-Wise/release/internal/domain/channel"
	"github.com/Voice-Wise/release/internal/logger"
	"github.com/Voice-Wise/release/internal/service/generator"
	"github.com/Voice-Wise/release/internal/version"
)

var (
	// opts collects the generator inputs bound to CLI flags.
	opts generator.Options

	// logLevel is the textual zap level selected on the command line.
	logLevel string

	// rootCmd represents the base command for generating updater manifests.
	rootCmd = &cobra.Command{
		Use:          "updater-manifest",
		Short:        "Generate updater manifests from a published release",
		Long:         "Generate Tauri-style updater manifest files for the VoiceWise desktop application by resolving per-platform updater assets and their detached signatures from a release on the hosting provider.",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return generator.Run(ctx, &opts)
		},
	}
)

// Execute runs the updater-manifest CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.Flags()

	flags.StringVar(&opts.Owner, "owner", "", "repository owner on the hosting provider")
	flags.StringVar(&opts.Repo, "repo", "", "repository name")
	flags.StringVar(&opts.Tag, "tag", "", "release tag to generate manifests for")
	flags.StringVar(&opts.OutDir, "out-dir", "", "output directory for manifest files (created if absent)")
	flags.StringVar(&opts.Channel, "channel", string(channel.Stable), "release channel (stable or nightly)")
	flags.StringVar(&opts.Format, "format", generator.FormatCombined,
		"manifest format: 'combined' writes a single latest.json, 'per-platform' writes one channel-qualified file per platform")
	flags.StringVar(&opts.Version, "version", "", "explicit version override (leading 'v' is stripped); derived from --tag when empty")
	flags.StringVar(&opts.Notes, "notes", "", "release notes override; templated from version and release URL when empty")
	flags.StringVar(&opts.Platforms, "platforms", "",
		"comma-separated list of os-arch pairs to include (e.g. 'darwin-aarch64,windows-x86_64'); all platforms when empty")
	flags.StringVar(&opts.TokenEnv, "token-env", config.DefaultTokenEnv, "name of env var containing the API token")
	flags.StringVar(&opts.TargetsFile, "targets-file", "", "YAML file overriding the built-in platform target table")
	flags.BoolVar(&opts.Strict, "strict", false, "fail when any platform target has no matching updater asset")
	flags.DurationVar(&opts.Timeout, "timeout", config.DefaultTimeout, "timeout for each outbound HTTP call")
	flags.StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")

	for _, flag := range []string{"owner", "repo", "tag", "out-dir"} {
		_ = rootCmd.MarkFlagRequired(flag)
	}
}
