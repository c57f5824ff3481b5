//go:generate mockgen --source types.go --destination mocks.go --package agent
package agent

import (
	"context"
	"time"

	"github.com/genie-oss/genie/pkg/models"
)

// Handle identifies a launched job process.
type Handle struct {
	JobID    string
	Launcher string
	// ProcessID is zero when the launcher does not run a local process.
	ProcessID int
	Started   time.Time
}

// Launcher hands a fully set up job to whatever runs it. Launch must return
// once the job has started; it does not wait for the job to finish.
type Launcher interface {
	Name() string
	// IsInstalled reports whether the launcher can be used on this host.
	IsInstalled(ctx context.Context) (bool, error)
	Launch(ctx context.Context, spec models.JobSpecification) (Handle, error)
}
