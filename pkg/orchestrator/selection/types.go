package selection

import (
	"context"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/models"
)

// Context is what a selector sees: the job being resolved and a non-empty,
// priority ordered list of candidates.
type Context[R any] interface {
	JobID() string
	JobRequest() models.JobRequest
	SubmittedViaAPI() bool
	// Candidates returns a copy of the candidate list. It is never empty.
	Candidates() []R
}

// Selector picks at most one resource out of a selection context.
// Selectors are shared by concurrent submissions and must not keep
// per-call state.
//
// Select returns an error only for faults inside the selector. Not finding a
// suitable candidate is a Result without resource and with a rationale.
type Selector[R any] interface {
	// Identity names the selector in rationales, logs and errors.
	Identity() string
	Select(ctx context.Context, sc Context[R]) (Result[R], error)
}

type (
	ClusterSelector       = Selector[models.Cluster]
	CommandSelector       = Selector[models.Command]
	AgentLauncherSelector = Selector[agent.Launcher]
)
