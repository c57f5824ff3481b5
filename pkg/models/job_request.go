package models

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/lib/validate"
)

// JobRequest is what a client submits: the command to run and ordered
// constraints on where to run it.
type JobRequest struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	User        string   `json:"user"`
	Group       string   `json:"group,omitempty"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// CommandArgs are appended to the resolved command's executable.
	CommandArgs []string `json:"commandArgs,omitempty"`

	// ClusterCriteria are evaluated in order; the first one matching any
	// active cluster wins.
	ClusterCriteria  []Criterion `json:"clusterCriteria"`
	CommandCriterion Criterion   `json:"commandCriterion"`

	// RequestedApplications overrides the command's applications. Order is kept.
	RequestedApplications []string `json:"applications,omitempty"`

	SubmittedViaAPI bool `json:"submittedViaApi,omitempty"`

	// Memory in MB. Falls back to the command default, then the configured default.
	Memory *int `json:"memory,omitempty"`
	// Timeout in seconds.
	Timeout *int `json:"timeout,omitempty"`

	Grouping         string `json:"grouping,omitempty"`
	GroupingInstance string `json:"groupingInstance,omitempty"`

	ExecutionResources
	// Attachments are user supplied files copied into the job directory.
	Attachments []string `json:"attachments,omitempty"`
}

// Normalize collapses duplicate tags and fills defaults that are safe to
// apply before validation.
func (r *JobRequest) Normalize() {
	r.Tags = normalizeTags(r.Tags)
	r.Name = strings.TrimSpace(r.Name)
	r.User = strings.TrimSpace(r.User)
}

// Validate is used to check a job request for reasonable configuration.
func (r *JobRequest) Validate() error {
	mErr := new(multierror.Error)
	mErr = multierror.Append(mErr,
		validate.NotBlank(r.Name, "job name cannot be blank"),
		validate.NotBlank(r.User, "job user cannot be blank"),
		validate.NotBlank(r.Version, "job version cannot be blank"),
		validate.NotEmpty(r.ClusterCriteria, "at least one cluster criterion is required"),
		validate.NoBlankElements(r.RequestedApplications, "requested application ids cannot be blank"),
		validate.NoBlankElements(r.Tags, "job tags cannot be blank"),
	)
	for i, c := range r.ClusterCriteria {
		if c.IsEmpty() {
			mErr = multierror.Append(mErr, fmt.Errorf("cluster criterion %d is empty", i))
		}
	}
	if r.CommandCriterion.IsEmpty() {
		mErr = multierror.Append(mErr, fmt.Errorf("command criterion is required"))
	}
	if r.Memory != nil && *r.Memory <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("job memory must be greater than zero"))
	}
	if r.Timeout != nil && *r.Timeout < 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("job timeout cannot be negative"))
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return genieerrors.Wrap(err, "invalid job request %q", r.ID).
			WithCode(genieerrors.ValidationError).
			WithDetail("JobID", r.ID)
	}
	return nil
}

// Copy returns a deep copy of the request.
func (r *JobRequest) Copy() *JobRequest {
	if r == nil {
		return nil
	}
	out := new(JobRequest)
	*out = *r
	out.Tags = slices.Clone(r.Tags)
	out.CommandArgs = slices.Clone(r.CommandArgs)
	out.ClusterCriteria = slices.Clone(r.ClusterCriteria)
	out.RequestedApplications = slices.Clone(r.RequestedApplications)
	out.ExecutionResources = r.ExecutionResources.copy()
	out.Attachments = slices.Clone(r.Attachments)
	if r.Memory != nil {
		m := *r.Memory
		out.Memory = &m
	}
	if r.Timeout != nil {
		t := *r.Timeout
		out.Timeout = &t
	}
	return out
}
