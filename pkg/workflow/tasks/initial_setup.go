package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/workflow"
)

// InitialSetup creates the job directory skeleton, starts the run script and
// exports the variables describing the job and its resolved resources.
type InitialSetup struct{}

func NewInitialSetup() *InitialSetup {
	return &InitialSetup{}
}

func (t *InitialSetup) Name() string {
	return "InitialSetup"
}

func (t *InitialSetup) Execute(ctx context.Context, wctx *workflow.Context) error {
	layout := wctx.Layout
	dirs := []string{
		layout.GenieDir(),
		layout.LogsDir(),
		layout.ApplicationsDir(),
		layout.CommandDir(wctx.Command.ID),
		layout.ClusterDir(wctx.Cluster.ID),
	}
	if err := mkdirs(wctx, dirs...); err != nil {
		return err
	}
	for _, name := range []string{workflow.StdoutFileName, workflow.StderrFileName} {
		if err := writeFile(wctx.FS, name, nil, filePerm); err != nil {
			return err
		}
	}

	wctx.Script.
		Line("#!/usr/bin/env bash").
		Blank().
		Line("set -o nounset -o pipefail").
		Blank().
		Line("echo Start: `date '+%Y-%m-%d %H:%M:%S'`").
		Blank()

	wctx.Script.Comment("Job directory")
	export(wctx, workflow.EnvJobDir, layout.JobDir)
	exportPath(wctx, workflow.EnvApplicationDir, layout.ApplicationsDir())
	wctx.Script.Blank()

	wctx.Script.Comment("Command")
	exportPath(wctx, workflow.EnvCommandDir, layout.CommandDir(wctx.Command.ID))
	export(wctx, workflow.EnvCommandID, wctx.Command.ID)
	export(wctx, workflow.EnvCommandName, wctx.Command.Name)
	exportTags(wctx, workflow.EnvCommandTags, resourceTags(wctx.Command))
	wctx.Script.Blank()

	wctx.Script.Comment("Cluster")
	exportPath(wctx, workflow.EnvClusterDir, layout.ClusterDir(wctx.Cluster.ID))
	export(wctx, workflow.EnvClusterID, wctx.Cluster.ID)
	export(wctx, workflow.EnvClusterName, wctx.Cluster.Name)
	exportTags(wctx, workflow.EnvClusterTags, resourceTags(wctx.Cluster))
	wctx.Script.Blank()

	wctx.Script.Comment("Job")
	export(wctx, workflow.EnvVersion, Version)
	export(wctx, workflow.EnvJobID, wctx.JobID)
	if wctx.Request != nil {
		export(wctx, workflow.EnvJobName, wctx.Request.Name)
	}
	export(wctx, workflow.EnvJobMemory, strconv.Itoa(wctx.Memory))
	wctx.Script.Blank()

	if wctx.Request != nil {
		wctx.Script.Comment("Requested criteria")
		exportRequestedTags(wctx)
		wctx.Script.Blank()
	}

	log.Ctx(ctx).Debug().Str("JobID", wctx.JobID).Str("JobDir", layout.JobDir).Msg("job directory initialized")
	return nil
}

// exportRequestedTags exports the command criterion tags and the cluster
// criteria tags, both combined as [[a,b],[c]] and one variable per criterion.
func exportRequestedTags(wctx *workflow.Context) {
	req := wctx.Request
	exportTags(wctx, workflow.EnvRequestedCmdTags, models.TagsToString(req.CommandCriterion.Tags()))

	criteria := make([]string, len(req.ClusterCriteria))
	for i, c := range req.ClusterCriteria {
		criteria[i] = "[" + models.TagsToString(c.Tags()) + "]"
	}
	exportTags(wctx, workflow.EnvRequestedClTags, "["+strings.Join(criteria, ",")+"]")
	for i, c := range req.ClusterCriteria {
		exportTags(wctx, fmt.Sprintf("%s_%d", workflow.EnvRequestedClTags, i), models.TagsToString(c.Tags()))
	}
}
