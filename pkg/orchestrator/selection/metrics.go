package selection

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/genie-oss/genie/pkg/telemetry"
)

const (
	outcomeSelected = "selected"
	outcomeNone     = "none"
	outcomeError    = "error"
)

var (
	meter = telemetry.Meter("orchestrator/selection")

	selectionsCounter = telemetry.MustCounter(
		meter,
		"genie_selections_total",
		"Number of selector invocations by selector and outcome",
	)
)

func outcomeAttrs(selector, outcome string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("selector", selector),
		attribute.String("outcome", outcome),
	}
}
