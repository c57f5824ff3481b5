package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/genie-oss/genie/cmd/util"
	"github.com/genie-oss/genie/cmd/util/flags/cliflags"
	"github.com/genie-oss/genie/cmd/util/output"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/node"
	"github.com/genie-oss/genie/pkg/orchestrator/resolver"
)

const resolveExample = `  # Show where a job request would run without launching it
  genie resolve -f job.yaml

  # Same, as yaml
  genie resolve --cluster tags=prod --command name=hive --name q --user alice --version 1 --output yaml`

type ResolveOptions struct {
	Request    util.JobRequestOptions
	OutputOpts output.OutputOptions
}

func NewResolveOptions() *ResolveOptions {
	return &ResolveOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewCmd() *cobra.Command {
	o := NewResolveOptions()
	resolveCmd := &cobra.Command{
		Use:     "resolve [flags] [-- command args]",
		Short:   "Show the cluster, command and applications a job request resolves to",
		Long:    "Resolve a job request against the registry without creating a job directory or launching an agent.",
		Example: resolveExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd, args)
		},
	}
	resolveCmd.Flags().AddFlagSet(o.Request.Flags())
	resolveCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOpts))
	return resolveCmd
}

var Columns = []output.TableColumn[resolver.ResolvedJob]{
	{
		ColumnConfig: table.ColumnConfig{Name: "Cluster"},
		Value:        func(r resolver.ResolvedJob) string { return r.Cluster.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Command"},
		Value:        func(r resolver.ResolvedJob) string { return r.Command.ID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Applications"},
		Value: func(r resolver.ResolvedJob) string {
			return strings.Join(lo.Map(r.Applications, func(a models.Application, _ int) string { return a.ID }), ", ")
		},
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Memory", Align: text.AlignRight},
		Value:        func(r resolver.ResolvedJob) string { return fmt.Sprintf("%dMB", r.Memory) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Timeout"},
		Value:        func(r resolver.ResolvedJob) string { return r.Timeout.String() },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Rationale", WidthMax: 60, WidthMaxEnforcer: text.WrapText},
		Value:        func(r resolver.ResolvedJob) string { return strings.Join(r.Rationales, "; ") },
	},
}

func (o *ResolveOptions) Run(cmd *cobra.Command, args []string) error {
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
	return o.resolve(cmd, n, request)
}

func (o *ResolveOptions) resolve(cmd *cobra.Command, n *node.Node, request models.JobRequest) error {
	jobID := request.ID
	if jobID == "" {
		jobID = uuid.NewString()
	}
	resolved, err := n.Resolver.Resolve(cmd.Context(), jobID, &request)
	if err != nil {
		return err
	}
	return output.OutputOne(cmd, Columns, o.OutputOpts, *resolved)
}
