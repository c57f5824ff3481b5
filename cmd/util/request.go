package util

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/genie-oss/genie/cmd/util/flags"
	"github.com/genie-oss/genie/pkg/models"
)

// JobRequestOptions build a job request from a YAML or JSON file, command
// line flags, or both. Flags override the file.
type JobRequestOptions struct {
	File             string
	Name             string
	User             string
	Version          string
	Tags             []string
	ClusterCriteria  []models.Criterion
	CommandCriterion models.Criterion
	Applications     []string
	Memory           int
	Timeout          int
	Grouping         string
}

func (o *JobRequestOptions) Flags() *pflag.FlagSet {
	fset := pflag.NewFlagSet("Job Request", pflag.ContinueOnError)
	fset.StringVarP(&o.File, "file", "f", o.File,
		`YAML or JSON job request. Use "-" to read from stdin.`)
	fset.StringVar(&o.Name, "name", o.Name, "Job name")
	fset.StringVar(&o.User, "user", o.User, "User the job runs for")
	fset.StringVar(&o.Version, "version", o.Version, "Job version")
	fset.StringSliceVar(&o.Tags, "tag", o.Tags, "Job tags")
	fset.Var(flags.CriteriaFlag(&o.ClusterCriteria), "cluster",
		`Cluster criterion, e.g. "tags=prod;hadoop". Repeat to add fallbacks, tried in order.`)
	fset.Var(flags.CriterionFlag(&o.CommandCriterion), "command",
		`Command criterion, e.g. "name=hive,version=2.1"`)
	fset.StringSliceVar(&o.Applications, "application", o.Applications,
		"Applications to use instead of the command's own")
	fset.Var(flags.MemoryFlag(&o.Memory), "memory", "Job memory, e.g. 2GB. Plain numbers are MB.")
	fset.IntVar(&o.Timeout, "timeout", o.Timeout, "Job timeout in seconds")
	fset.StringVar(&o.Grouping, "grouping", o.Grouping, "Job grouping")
	return fset
}

// Build returns the request. Positional args become command arguments.
func (o *JobRequestOptions) Build(cmd *cobra.Command, args []string) (models.JobRequest, error) {
	var request models.JobRequest
	if o.File != "" {
		var err error
		if request, err = readJobRequest(cmd, o.File); err != nil {
			return models.JobRequest{}, err
		}
	}

	setIfNotEmpty(&request.Name, o.Name)
	setIfNotEmpty(&request.User, o.User)
	setIfNotEmpty(&request.Version, o.Version)
	setIfNotEmpty(&request.Grouping, o.Grouping)
	if len(o.Tags) > 0 {
		request.Tags = o.Tags
	}
	if len(o.ClusterCriteria) > 0 {
		request.ClusterCriteria = o.ClusterCriteria
	}
	if !o.CommandCriterion.IsEmpty() {
		request.CommandCriterion = o.CommandCriterion
	}
	if len(o.Applications) > 0 {
		request.RequestedApplications = o.Applications
	}
	if o.Memory > 0 {
		memory := o.Memory
		request.Memory = &memory
	}
	if o.Timeout > 0 {
		timeout := o.Timeout
		request.Timeout = &timeout
	}
	if len(args) > 0 {
		request.CommandArgs = args
	}

	request.Normalize()
	if err := request.Validate(); err != nil {
		return models.JobRequest{}, err
	}
	return request, nil
}

func readJobRequest(cmd *cobra.Command, path string) (models.JobRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.JobRequest{}, fmt.Errorf("reading job request %q: %w", path, err)
	}

	var request models.JobRequest
	if err = yaml.Unmarshal(data, &request); err != nil {
		return models.JobRequest{}, fmt.Errorf("parsing job request %q: %w", path, err)
	}
	return request, nil
}

func setIfNotEmpty(target *string, value string) {
	if value != "" {
		*target = value
	}
}
