package orchestrator

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/genie-oss/genie/pkg/telemetry"
)

var (
	meter = telemetry.Meter("orchestrator")

	submissionsCounter = telemetry.MustCounter(
		meter,
		"genie_submissions_total",
		"Number of job submissions by outcome",
	)

	admissionRejectedCounter = telemetry.MustCounter(
		meter,
		"genie_admission_rejected_total",
		"Number of submissions rejected because no slot was free",
	)

	inFlightGauge = telemetry.Must(meter.Int64UpDownCounter(
		"genie_submissions_in_flight",
		metric.WithDescription("Submissions holding an admission slot"),
	))

	submissionDuration = telemetry.Must(meter.Float64Histogram(
		"genie_submission_duration",
		metric.WithDescription("Time from acceptance to launch or failure"),
		metric.WithUnit("s"),
	))

	housekeepingDeletedCounter = telemetry.MustCounter(
		meter,
		"genie_housekeeping_deleted_total",
		"Number of jobs and job directories removed by housekeeping",
	)
)

const (
	AttrOutcomeKey      = "outcome"
	AttrOutcomeLaunched = "launched"
	AttrOutcomeFailed   = "failed"
	AttrOutcomeInvalid  = "invalid"
	AttrOutcomeRejected = "rejected"

	AttrKindKey = "kind"
)

func outcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String(AttrOutcomeKey, outcome)
}
