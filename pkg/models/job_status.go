package models

import "time"

// JobStatus is the lifecycle state of a submitted job.
type JobStatus string

const (
	JobStatusAccepted  JobStatus = "ACCEPTED"
	JobStatusInit      JobStatus = "INIT"
	JobStatusResolved  JobStatus = "RESOLVED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusKilled    JobStatus = "KILLED"
	JobStatusInvalid   JobStatus = "INVALID"
)

// IsTerminal returns true if no further transition is possible.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusSucceeded, JobStatusFailed, JobStatusKilled, JobStatusInvalid:
		return true
	default:
		return false
	}
}

func (s JobStatus) String() string { return string(s) }

// JobRecord is the persisted view of a job.
type JobRecord struct {
	Request       JobRequest
	Status        JobStatus
	StatusMessage string
	ClusterID     string
	CommandID     string
	Created       time.Time
	Updated       time.Time
}
