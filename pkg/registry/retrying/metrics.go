package retrying

import (
	"github.com/genie-oss/genie/pkg/telemetry"
)

var (
	meter = telemetry.Meter("registry/retrying")

	retriesCounter = telemetry.MustCounter(
		meter,
		"genie_registry_retries_total",
		"Number of registry calls retried after a transient failure",
	)

	exhaustedCounter = telemetry.MustCounter(
		meter,
		"genie_registry_retries_exhausted_total",
		"Number of registry calls that failed after all retries",
	)
)
