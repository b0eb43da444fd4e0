package diagnostics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this module's spans in whatever backend the caller
// wires otel up to; the builder itself never configures an exporter.
const tracerName = "github.com/symdd/symdd/internal/symbolic"

// StartStage opens a span named after the S1-S7 stage, adapted from the
// teacher's ExecutionTrace.AddEvent-per-phase pattern but backed by a real
// otel.Tracer so stage timings (spec.md §2's "share of core" column) show up
// in whatever tracing backend the host process exports to. Callers must
// invoke the returned end func exactly once, typically via defer.
func StartStage(ctx context.Context, stage string, buildID string) (context.Context, func()) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, stage, trace.WithAttributes(
		attribute.String("symdd.build_id", buildID),
		attribute.String("symdd.stage", stage),
	))
	return ctx, func() { span.End() }
}
