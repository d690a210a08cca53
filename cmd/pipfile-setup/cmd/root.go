package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pipfile-setup/internal/gitver"
	"github.com/oshokin/pipfile-setup/internal/logger"
	"github.com/oshokin/pipfile-setup/internal/service/setup"
	"github.com/oshokin/pipfile-setup/internal/version"
)

var (
	// pipfilePath is an explicit manifest path; by default the Pipfile is
	// searched upward from the working directory.
	pipfilePath string

	// outputPath is the descriptor destination file; empty prints to stdout.
	outputPath string

	// outputFormat selects the descriptor encoding.
	outputFormat string

	// versionTemplate overrides the version render template.
	versionTemplate string

	// primaryBranch is the branch that gets clean release versions.
	primaryBranch string

	// logLevel sets logging verbosity.
	logLevel string

	// rootCmd represents the base command for resolving setup metadata.
	rootCmd = &cobra.Command{
		Use:   "pipfile-setup [project-dir]",
		Short: "Resolve Python packaging metadata from a Pipfile and git state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &setup.Options{
				PipfilePath:     pipfilePath,
				OutputPath:      outputPath,
				Format:          outputFormat,
				VersionTemplate: versionTemplate,
				PrimaryBranch:   primaryBranch,
			}
			if len(args) > 0 {
				options.Dir = args[0]
			}

			return setup.Run(ctx, options)
		},
	}
)

// Execute runs the pipfile-setup CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&pipfilePath, "pipfile", "p", "", "explicit path to the Pipfile")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the descriptor to a file instead of stdout")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", setup.FormatJSON, "descriptor output format (json or yaml)")
	rootCmd.Flags().StringVarP(&versionTemplate, "template", "t", gitver.DefaultTemplate, "version render template")
	rootCmd.Flags().StringVarP(&primaryBranch, "primary-branch", "b", gitver.DefaultPrimaryBranch, "branch that gets clean release versions")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", logger.Level().String(), "logging level (debug, info, warn, error, fatal)")
}
