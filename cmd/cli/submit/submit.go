package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/genie-oss/genie/cmd/util"
	"github.com/genie-oss/genie/cmd/util/flags/cliflags"
	"github.com/genie-oss/genie/cmd/util/output"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/node"
)

const submitExample = `  # Submit a job request file
  genie submit -f job.yaml

  # Run hive on a prod cluster, falling back to any hadoop cluster
  genie submit --name nightly --user alice --version 1 \
    --cluster tags=prod --cluster tags=hadoop --command name=hive -- -f query.sql

  # Print only the job id
  JOB=$(genie submit -f job.yaml --id-only)`

type SubmitOptions struct {
	Request    util.JobRequestOptions
	IDOnly     bool
	OutputOpts output.OutputOptions
}

func NewSubmitOptions() *SubmitOptions {
	return &SubmitOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewCmd() *cobra.Command {
	o := NewSubmitOptions()
	submitCmd := &cobra.Command{
		Use:     "submit [flags] [-- command args]",
		Short:   "Resolve, set up and launch a job",
		Example: submitExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd, args)
		},
	}
	submitCmd.Flags().AddFlagSet(o.Request.Flags())
	submitCmd.Flags().BoolVar(&o.IDOnly, "id-only", o.IDOnly, "Print only the job id")
	submitCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOpts))
	return submitCmd
}

var Columns = []output.TableColumn[models.JobRecord]{
	{
		ColumnConfig: table.ColumnConfig{Name: "Job ID"},
		Value:        func(r models.JobRecord) string { return r.Request.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name"},
		Value:        func(r models.JobRecord) string { return r.Request.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Status"},
		Value:        func(r models.JobRecord) string { return string(r.Status) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Cluster"},
		Value:        func(r models.JobRecord) string { return r.ClusterID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Command"},
		Value:        func(r models.JobRecord) string { return r.CommandID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Message", WidthMax: 60, WidthMaxEnforcer: text.WrapText},
		Value:        func(r models.JobRecord) string { return r.StatusMessage },
	},
}

func (o *SubmitOptions) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	request, err := o.Request.Build(cmd, args)
	if err != nil {
		return err
	}

	n, err := util.NewNode(ctx)
	if err != nil {
		return fmt.Errorf("error creating node: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if stopErr := n.Stop(stopCtx); stopErr != nil {
			cmd.PrintErrln("failed to stop node:", stopErr)
		}
	}()

	return o.submit(cmd, n, request)
}

func (o *SubmitOptions) submit(cmd *cobra.Command, n *node.Node, request models.JobRequest) error {
	ctx := cmd.Context()
	jobID, submitErr := n.Coordinator.Submit(ctx, request)
	if jobID == "" {
		return submitErr
	}

	if o.IDOnly {
		cmd.Println(jobID)
		return submitErr
	}

	record, err := n.Store.GetJob(ctx, jobID)
	if err != nil {
		return errors.Join(submitErr, err)
	}
	if err = output.OutputOne(cmd, Columns, o.OutputOpts, record); err != nil {
		return errors.Join(submitErr, err)
	}
	return submitErr
}
