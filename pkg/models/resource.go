package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/genie-oss/genie/pkg/lib/validate"
)

// ResourceStatus is the lifecycle status of a cluster, command or application.
type ResourceStatus string

const (
	ResourceStatusActive       ResourceStatus = "ACTIVE"
	ResourceStatusInactive     ResourceStatus = "INACTIVE"
	ResourceStatusDeprecated   ResourceStatus = "DEPRECATED"
	ResourceStatusOutOfService ResourceStatus = "OUT_OF_SERVICE"
	ResourceStatusTerminated   ResourceStatus = "TERMINATED"
)

var resourceStatuses = []ResourceStatus{
	ResourceStatusActive,
	ResourceStatusInactive,
	ResourceStatusDeprecated,
	ResourceStatusOutOfService,
	ResourceStatusTerminated,
}

func (s ResourceStatus) IsValid() bool {
	return slices.Contains(resourceStatuses, s)
}

// Taggable is the view of a resource that criteria are matched against.
type Taggable interface {
	GetID() string
	GetName() string
	GetVersion() string
	GetTags() []string
	GetStatus() ResourceStatus
}

// ResourceMeta holds the fields shared by every registered resource.
type ResourceMeta struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	User        string         `json:"user"`
	Description string         `json:"description,omitempty"`
	Status      ResourceStatus `json:"status"`
	Tags        []string       `json:"tags,omitempty"`
	Created     time.Time      `json:"created,omitempty"`
	Updated     time.Time      `json:"updated,omitempty"`
}

func (m ResourceMeta) GetID() string             { return m.ID }
func (m ResourceMeta) GetName() string           { return m.Name }
func (m ResourceMeta) GetVersion() string        { return m.Version }
func (m ResourceMeta) GetTags() []string         { return m.Tags }
func (m ResourceMeta) GetStatus() ResourceStatus { return m.Status }

func (m *ResourceMeta) Normalize() {
	m.Tags = normalizeTags(m.Tags)
	if m.Status == "" {
		m.Status = ResourceStatusActive
	}
}

func (m ResourceMeta) Validate() error {
	return errors.Join(
		validate.NotBlank(m.ID, "resource id cannot be blank"),
		validate.NotBlank(m.Name, "resource %s: name cannot be blank", m.ID),
		validate.NotBlank(m.Version, "resource %s: version cannot be blank", m.ID),
		validate.NotBlank(m.User, "resource %s: user cannot be blank", m.ID),
		validate.NoBlankElements(m.Tags, "resource %s: tags cannot be blank", m.ID),
		validate.OneOf(m.Status, resourceStatuses, "resource %s: unknown status %q", m.ID, m.Status),
	)
}

func (m ResourceMeta) copy() ResourceMeta {
	m.Tags = slices.Clone(m.Tags)
	return m
}

// ExecutionResources are files staged into the job directory for a resource.
type ExecutionResources struct {
	SetupFile    string   `json:"setupFile,omitempty"`
	ConfigFiles  []string `json:"configs,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func (r ExecutionResources) copy() ExecutionResources {
	r.ConfigFiles = slices.Clone(r.ConfigFiles)
	r.Dependencies = slices.Clone(r.Dependencies)
	return r
}

// Cluster is an execution environment that jobs are sent to.
type Cluster struct {
	ResourceMeta
	ExecutionResources
}

func (c *Cluster) Normalize() { c.ResourceMeta.Normalize() }
func (c *Cluster) Validate() error {
	return c.ResourceMeta.Validate()
}

func (c Cluster) Copy() Cluster {
	return Cluster{ResourceMeta: c.ResourceMeta.copy(), ExecutionResources: c.ExecutionResources.copy()}
}

// Command is an executable that can be run on one or more clusters.
type Command struct {
	ResourceMeta
	ExecutionResources
	// Executable is the binary and its default arguments.
	Executable []string `json:"executable"`
	// Memory is the default memory in MB for jobs running this command.
	Memory *int `json:"memory,omitempty"`
}

func (c *Command) Normalize() { c.ResourceMeta.Normalize() }

func (c *Command) Validate() error {
	mErr := new(multierror.Error)
	mErr = multierror.Append(mErr, c.ResourceMeta.Validate())
	if len(c.Executable) == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("command %s: executable cannot be empty", c.ID))
	}
	if c.Memory != nil && *c.Memory <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("command %s: memory must be greater than zero", c.ID))
	}
	return mErr.ErrorOrNil()
}

func (c Command) Copy() Command {
	out := Command{
		ResourceMeta:       c.ResourceMeta.copy(),
		ExecutionResources: c.ExecutionResources.copy(),
		Executable:         slices.Clone(c.Executable),
	}
	if c.Memory != nil {
		m := *c.Memory
		out.Memory = &m
	}
	return out
}

// Application is a set of binaries or libraries a command depends on.
type Application struct {
	ResourceMeta
	ExecutionResources
	Type string `json:"type,omitempty"`
}

func (a *Application) Normalize() { a.ResourceMeta.Normalize() }
func (a *Application) Validate() error {
	return a.ResourceMeta.Validate()
}

func (a Application) Copy() Application {
	return Application{ResourceMeta: a.ResourceMeta.copy(), ExecutionResources: a.ExecutionResources.copy(), Type: a.Type}
}

// ApplicationIDs returns the ids of apps in order.
func ApplicationIDs(apps []Application) []string {
	ids := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.ID
	}
	return ids
}

// compile-time checks
var (
	_ Taggable = Cluster{}
	_ Taggable = Command{}
	_ Taggable = Application{}
)
