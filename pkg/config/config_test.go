package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeekg/view/pkg/config"
)

func TestLoadAppliesDefaultsWithoutAFile(t *testing.T) {
	cfg, err := config.Load("/nonexistent/path/does-not-exist.yaml")
	require.Error(t, err) // an explicit path that can't be read is a real error

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.True(t, cfg.Server.Stdio)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, 32, cfg.Tree.BaseNodeSize)
}
