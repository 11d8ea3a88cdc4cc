// Package main is the entry point for the standalone decoration-diagnostics
// language server (see pkg/lspserver). It is a thin wrapper: cmd/view's "lsp"
// subcommand runs the same server in-process for operators who only install
// the single view binary.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/majeekg/view/pkg/config"
	"github.com/majeekg/view/pkg/lspserver"
	"github.com/majeekg/view/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "decolsp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = "decolsp"
	obsCfg.Mode = observability.ModeServer
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.Environment = cfg.Observability.Environment

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
			fmt.Fprintf(os.Stderr, "decolsp: shutdown: %v\n", shutdownErr)
		}
	}()

	metrics, err := observability.NewTreeMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("init tree metrics: %w", err)
	}

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		go serveMetrics(addr, providers.MetricsHandler, providers.Logger)
	}

	srv := lspserver.NewServer(providers.Logger, metrics)

	if err := srv.Run(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	return nil
}

// serveMetrics runs the Prometheus scrape endpoint for the server's
// lifetime. A listener failure is logged, not fatal: the language server
// itself talks stdio and has nothing to do with the metrics port.
func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", "error", err, "addr", addr)
	}
}
