package models

import (
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// JobSpecification is the final execution plan handed to an agent launcher.
// It is produced once per successful workflow run and must not be modified
// afterwards; use Copy when a mutable version is needed.
type JobSpecification struct {
	JobID        string
	JobName      string
	Cluster      Cluster
	Command      Command
	Applications []Application

	// CommandLine is the full process invocation, e.g. [setsid bash run].
	CommandLine  []string
	Environment  map[string]string
	JobDirectory string
	// LogFile receives the launched process output when set.
	LogFile      string

	// Memory in MB.
	Memory    int
	Timeout   time.Duration
	User      string
	RunAsUser bool
}

func (s JobSpecification) Copy() JobSpecification {
	out := s
	out.Cluster = s.Cluster.Copy()
	out.Command = s.Command.Copy()
	out.Applications = make([]Application, len(s.Applications))
	for i, a := range s.Applications {
		out.Applications[i] = a.Copy()
	}
	out.CommandLine = slices.Clone(s.CommandLine)
	out.Environment = maps.Clone(s.Environment)
	return out
}
