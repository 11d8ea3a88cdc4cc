package observability_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majeekg/view/pkg/observability"
)

func TestDefaultConfigHasSensibleDefaults(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "view", cfg.ServiceName)
	assert.Equal(t, observability.ModeCLI, cfg.Mode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5, cfg.ShutdownTimeoutSec)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.False(t, cfg.DebugTrace)
}

func TestInitWithoutOTLPEndpointUsesNoop(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	if assert.NoError(t, err) {
		assert.NotNil(t, providers.Logger)
		assert.NotNil(t, providers.Tracer)
		assert.NotNil(t, providers.Meter)

		assert.NoError(t, providers.Shutdown(t.Context()))
	}
}
