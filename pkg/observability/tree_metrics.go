package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOpsTotal      = "view.decorset.operations.total"
	metricOpDuration    = "view.decorset.operation.duration.seconds"
	metricErrorsTotal   = "view.decorset.errors.total"
	metricTreeDepth     = "view.decorset.depth"
	metricTreeSize      = "view.decorset.size"
	metricTreeFillRatio = "view.decorset.leaf_fill_ratio"

	attrOp     = "op"
	attrStatus = "status"

	statusError = "error"
)

// opDurationBucketBoundaries covers sub-millisecond point updates up to
// multi-second bulk rebuilds of very large sets.
var opDurationBucketBoundaries = []float64{
	0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5,
}

// TreeMetrics holds the OTel instruments that describe a DecorationSet's
// shape and the cost of the operations performed on it: the same RED
// (Rate, Error, Duration) pattern applied to Update/Map/Compare instead of
// HTTP requests, plus size/depth/fill gauges recorded after each op.
type TreeMetrics struct {
	opsTotal    metric.Int64Counter
	opDuration  metric.Float64Histogram
	errorsTotal metric.Int64Counter
	depth       metric.Int64Gauge
	size        metric.Int64Gauge
	fillRatio   metric.Float64Gauge
}

// NewTreeMetrics creates the tree-shape and operation instruments from the
// given meter.
func NewTreeMetrics(mt metric.Meter) (*TreeMetrics, error) {
	opsTotal, err := mt.Int64Counter(metricOpsTotal,
		metric.WithDescription("Total number of decoration set operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOpsTotal, err)
	}

	opDuration, err := mt.Float64Histogram(metricOpDuration,
		metric.WithDescription("Decoration set operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(opDurationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOpDuration, err)
	}

	errorsTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of decoration set operation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	depth, err := mt.Int64Gauge(metricTreeDepth, metric.WithDescription("Decoration set tree depth"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTreeDepth, err)
	}

	size, err := mt.Int64Gauge(metricTreeSize, metric.WithDescription("Decoration set total decoration count"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTreeSize, err)
	}

	fillRatio, err := mt.Float64Gauge(metricTreeFillRatio,
		metric.WithDescription("Average leaf fill ratio against BaseNodeSize"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTreeFillRatio, err)
	}

	return &TreeMetrics{
		opsTotal:    opsTotal,
		opDuration:  opDuration,
		errorsTotal: errorsTotal,
		depth:       depth,
		size:        size,
		fillRatio:   fillRatio,
	}, nil
}

// RecordOp records a completed tree operation's duration and outcome.
func (tm *TreeMetrics) RecordOp(ctx context.Context, op string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = statusError
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	tm.opsTotal.Add(ctx, 1, attrs)
	tm.opDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		tm.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
	}
}

// RecordShape records a snapshot of a tree's depth, size, and leaf fill
// ratio, letting a dashboard watch a long-lived document's balance drift
// over a session.
func (tm *TreeMetrics) RecordShape(ctx context.Context, depth, size int, fillRatio float64) {
	tm.depth.Record(ctx, int64(depth))
	tm.size.Record(ctx, int64(size))
	tm.fillRatio.Record(ctx, fillRatio)
}
