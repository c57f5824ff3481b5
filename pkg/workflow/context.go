package workflow

import (
	"time"

	"github.com/spf13/afero"

	"github.com/genie-oss/genie/pkg/models"
)

// Context is the state shared by the tasks of one job's workflow. It is
// created per submission and discarded once the workflow ends.
type Context struct {
	JobID   string
	Request *models.JobRequest

	Cluster      models.Cluster
	Command      models.Command
	Applications []models.Application
	// Memory in MB.
	Memory  int
	Timeout time.Duration

	Layout Layout
	// FS is rooted at the job directory.
	FS     afero.Fs
	Env    *Env
	Script *Script

	// Specification is set by the last task.
	Specification *models.JobSpecification

	// Extensions holds task specific entries that have no typed field.
	Extensions map[string]any
}

type ContextParams struct {
	JobID        string
	Request      *models.JobRequest
	Cluster      models.Cluster
	Command      models.Command
	Applications []models.Application
	Memory       int
	Timeout      time.Duration
	Layout       Layout
	FS           afero.Fs
}

func NewContext(params ContextParams) *Context {
	return &Context{
		JobID:        params.JobID,
		Request:      params.Request,
		Cluster:      params.Cluster,
		Command:      params.Command,
		Applications: params.Applications,
		Memory:       params.Memory,
		Timeout:      params.Timeout,
		Layout:       params.Layout,
		FS:           params.FS,
		Env:          NewEnv(),
		Script:       NewScript(),
		Extensions:   make(map[string]any),
	}
}

// SetExtension stores a task specific value.
func (c *Context) SetExtension(key string, value any) {
	if c.Extensions == nil {
		c.Extensions = make(map[string]any)
	}
	c.Extensions[key] = value
}

// GetExtension returns the value stored under key if it has type T.
func GetExtension[T any](c *Context, key string) (T, bool) {
	v, ok := c.Extensions[key]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
