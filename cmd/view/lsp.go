package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majeekg/view/pkg/lspserver"
	"github.com/majeekg/view/pkg/observability"
)

func lspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the decoration-diagnostics language server (stdio)",
		RunE: func(_ *cobra.Command, _ []string) error {
			metrics, err := observability.NewTreeMetrics(providers.Meter)
			if err != nil {
				return fmt.Errorf("init tree metrics: %w", err)
			}

			return lspserver.NewServer(providers.Logger, metrics).Run()
		},
	}

	return cmd
}
