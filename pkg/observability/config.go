package observability

import "log/slog"

// AppMode distinguishes how the process is being run. Init attaches it to
// every log record as the "mode" attribute; it does not change any other
// setting (trace sampling follows Config.DebugTrace).
type AppMode string

const (
	// ModeCLI is a one-shot command invocation.
	ModeCLI AppMode = "cli"
	// ModeServer is the long-running LSP server.
	ModeServer AppMode = "server"
)

// Config controls Init. The zero-value-friendly defaults live in
// DefaultConfig.
type Config struct {
	ServiceName        string
	ServiceVersion     string
	Environment        string
	Mode               AppMode
	LogLevel           slog.Level
	OTLPEndpoint       string
	ShutdownTimeoutSec int
	DebugTrace         bool
}

// DefaultConfig returns the configuration a bare CLI invocation uses: no
// OTLP endpoint (the tracer provider falls back to no-op; metrics still go
// to an SDK meter provider with a Prometheus reader), info-level logging to
// stderr.
func DefaultConfig() Config {
	return Config{
		ServiceName:        "view",
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: 5,
	}
}
