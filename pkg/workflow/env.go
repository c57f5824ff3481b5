package workflow

import (
	"golang.org/x/exp/slices"
)

// Environment variables genie exports to every job.
const (
	EnvJobDir           = "GENIE_JOB_DIR"
	EnvJobID            = "GENIE_JOB_ID"
	EnvJobName          = "GENIE_JOB_NAME"
	EnvJobMemory        = "GENIE_JOB_MEMORY"
	EnvVersion          = "GENIE_VERSION"
	EnvUser             = "GENIE_USER"
	EnvUserGroup        = "GENIE_USER_GROUP"
	EnvJobTags          = "GENIE_JOB_TAGS"
	EnvJobGrouping      = "GENIE_JOB_GROUPING"
	EnvJobGroupingInst  = "GENIE_JOB_GROUPING_INSTANCE"
	EnvClusterID        = "GENIE_CLUSTER_ID"
	EnvClusterName      = "GENIE_CLUSTER_NAME"
	EnvClusterTags      = "GENIE_CLUSTER_TAGS"
	EnvClusterDir       = "GENIE_CLUSTER_DIR"
	EnvCommandID        = "GENIE_COMMAND_ID"
	EnvCommandName      = "GENIE_COMMAND_NAME"
	EnvCommandTags      = "GENIE_COMMAND_TAGS"
	EnvCommandDir       = "GENIE_COMMAND_DIR"
	EnvApplicationDir   = "GENIE_APPLICATION_DIR"
	EnvRequestedCmdTags = "GENIE_REQUESTED_COMMAND_TAGS"
	EnvRequestedClTags  = "GENIE_REQUESTED_CLUSTER_TAGS"

	// EnvApplicationPrefix is followed by the application position, e.g.
	// GENIE_APPLICATION_0_ID.
	EnvApplicationPrefix = "GENIE_APPLICATION_"
)

// Env accumulates environment variables in the order they were first set.
// Setting a variable again replaces its value in place.
type Env struct {
	keys   []string
	values map[string]string
}

func NewEnv() *Env {
	return &Env{values: make(map[string]string)}
}

func (e *Env) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *Env) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the variable names in insertion order.
func (e *Env) Keys() []string {
	return slices.Clone(e.keys)
}

// Map returns a copy of the variables.
func (e *Env) Map() map[string]string {
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

func (e *Env) Len() int {
	return len(e.keys)
}
