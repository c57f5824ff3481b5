package telemetry

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Timer is a function to record a duration. Calling it starts the timer,
// calling the returned function will record the duration in seconds and
// return it. Extra attributes passed to the stop function are appended,
// which lets callers tag the outcome once it is known.
func Timer(
	ctx context.Context,
	clk clock.Clock,
	durationRecorder metric.Float64Histogram,
	attrs ...attribute.KeyValue,
) func(...attribute.KeyValue) time.Duration {
	start := clk.Now()
	return func(extra ...attribute.KeyValue) time.Duration {
		dur := clk.Since(start)
		all := make([]attribute.KeyValue, 0, len(attrs)+len(extra))
		all = append(all, attrs...)
		all = append(all, extra...)
		durationRecorder.Record(ctx, dur.Seconds(), metric.WithAttributes(all...))
		return dur
	}
}
