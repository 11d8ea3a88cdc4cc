// Package main provides the view CLI entry point: an operator tool for
// building, inspecting, visualizing, and diffing decoration scenarios
// without writing Go.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/majeekg/view/pkg/config"
	"github.com/majeekg/view/pkg/observability"
	"github.com/majeekg/view/pkg/version"
)

var (
	cfgFile      string //nolint:gochecknoglobals // CLI flag variable
	otlpEndpoint string //nolint:gochecknoglobals // CLI flag variable
	verbose      bool   //nolint:gochecknoglobals // CLI flag variable

	providers observability.Providers //nolint:gochecknoglobals // populated by PersistentPreRunE
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "view",
		Short: "Build, inspect, and diff position-annotated decoration sets",
		Long: `view operates on decoration scenarios: JSON documents describing a set of
range and point decorations over a text buffer, the same model a code
editor's gutter markers, syntax highlights, and inline widgets are built
from.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initObservability()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return providers.Shutdown(context.Background())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP gRPC endpoint for traces/metrics")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(lspCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initObservability() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = "view"
	obsCfg.Mode = observability.ModeCLI
	obsCfg.Environment = cfg.Observability.Environment
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint

	if otlpEndpoint != "" {
		obsCfg.OTLPEndpoint = otlpEndpoint
	}

	if verbose {
		obsCfg.LogLevel = slog.LevelDebug
	}

	providers, err = observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "view %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
