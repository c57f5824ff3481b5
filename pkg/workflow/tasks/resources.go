package tasks

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/storage/transfer"
	"github.com/genie-oss/genie/pkg/workflow"
)

// Application stages every application of the job, in order, below
// genie/applications/<id>.
type Application struct {
	transfer transfer.FileTransfer
}

func NewApplication(ft transfer.FileTransfer) *Application {
	return &Application{transfer: ft}
}

func (t *Application) Name() string {
	return "Application"
}

func (t *Application) Execute(ctx context.Context, wctx *workflow.Context) error {
	for i, app := range wctx.Applications {
		dir := wctx.Layout.ApplicationDir(app.ID)
		prefix := workflow.EnvApplicationPrefix + strconv.Itoa(i) + "_"
		wctx.Script.Comment("Application %s", app.ID)
		export(wctx, prefix+"ID", app.ID)
		export(wctx, prefix+"NAME", app.Name)
		exportTags(wctx, prefix+"TAGS", resourceTags(app))
		wctx.Script.Blank()
		if err := stage(ctx, t.transfer, wctx, "application", app.ID, dir, app.ExecutionResources); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().Str("JobID", wctx.JobID).Int("Applications", len(wctx.Applications)).Msg("applications staged")
	return nil
}

// Command stages the resolved command below genie/command/<id>.
type Command struct {
	transfer transfer.FileTransfer
}

func NewCommand(ft transfer.FileTransfer) *Command {
	return &Command{transfer: ft}
}

func (t *Command) Name() string {
	return "Command"
}

func (t *Command) Execute(ctx context.Context, wctx *workflow.Context) error {
	cmd := wctx.Command
	return stage(ctx, t.transfer, wctx, "command", cmd.ID, wctx.Layout.CommandDir(cmd.ID), cmd.ExecutionResources)
}

// Cluster stages the resolved cluster below genie/cluster/<id>.
type Cluster struct {
	transfer transfer.FileTransfer
}

func NewCluster(ft transfer.FileTransfer) *Cluster {
	return &Cluster{transfer: ft}
}

func (t *Cluster) Name() string {
	return "Cluster"
}

func (t *Cluster) Execute(ctx context.Context, wctx *workflow.Context) error {
	cluster := wctx.Cluster
	return stage(ctx, t.transfer, wctx, "cluster", cluster.ID, wctx.Layout.ClusterDir(cluster.ID), cluster.ExecutionResources)
}

// compile-time checks
var (
	_ workflow.Task = (*Application)(nil)
	_ workflow.Task = (*Command)(nil)
	_ workflow.Task = (*Cluster)(nil)
)
