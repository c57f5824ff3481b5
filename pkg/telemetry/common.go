package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Must panics if err is not nil. Instrument creation only fails on invalid
// names, which is a programming error.
func Must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

// Meter returns a named meter from the global provider. Without an SDK
// provider installed the returned meter is a no-op.
func Meter(name string) metric.Meter {
	return otel.GetMeterProvider().Meter("github.com/genie-oss/genie/" + name)
}
