package cache

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type cacheMetricsCollection struct {
	lookupCount metric.Int64Counter
	settleCount metric.Int64Counter
}

var metrics cacheMetricsCollection

func init() {
	const name = "gymstatus/cache"
	meter := otel.Meter(name)

	lookupCount, err := meter.Int64Counter(
		"cache/lookup_count",
		metric.WithDescription("Cache lookups by result (hit, miss, join)"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create lookup count metric: %w", err))
	}

	settleCount, err := meter.Int64Counter(
		"cache/settle_count",
		metric.WithDescription("Completed fetches behind the cache"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create settle count metric: %w", err))
	}

	metrics = cacheMetricsCollection{
		lookupCount: lookupCount,
		settleCount: settleCount,
	}
}

func recordLookup(ctx context.Context, cacheName string, result string) {
	metrics.lookupCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache", cacheName),
		attribute.String("result", result),
	))
}

func recordSettle(ctx context.Context, cacheName string, success bool, superseded bool) {
	metrics.settleCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache", cacheName),
		attribute.Bool("success", success),
		attribute.Bool("superseded", superseded),
	))
}
