package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/majeekg/view/pkg/observability"
)

func TestNewTreeMetricsRecordsWithoutError(t *testing.T) {
	t.Parallel()

	meter := noop.NewMeterProvider().Meter("test")

	tm, err := observability.NewTreeMetrics(meter)
	require.NoError(t, err)

	tm.RecordOp(t.Context(), "update", nil, 2*time.Millisecond)
	tm.RecordOp(t.Context(), "update", errors.New("boom"), time.Millisecond)
	tm.RecordShape(t.Context(), 3, 500, 0.8)
}
