package tasks

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/storage/transfer"
	"github.com/genie-oss/genie/pkg/workflow"
)

// Job fetches the files the request itself carries into the job directory,
// sources the request setup file and exports the job level variables.
type Job struct {
	transfer transfer.FileTransfer
}

func NewJob(ft transfer.FileTransfer) *Job {
	return &Job{transfer: ft}
}

func (t *Job) Name() string {
	return "Job"
}

func (t *Job) Execute(ctx context.Context, wctx *workflow.Context) error {
	req := wctx.Request
	if req == nil {
		return nil
	}

	wctx.Script.Comment("Job request")
	export(wctx, workflow.EnvUser, req.User)
	if req.Group != "" {
		export(wctx, workflow.EnvUserGroup, req.Group)
	}
	exportTags(wctx, workflow.EnvJobTags, jobTags(wctx.JobID, req))
	if req.Grouping != "" {
		export(wctx, workflow.EnvJobGrouping, req.Grouping)
	}
	if req.GroupingInstance != "" {
		export(wctx, workflow.EnvJobGroupingInst, req.GroupingInstance)
	}
	wctx.Script.Blank()

	files := make([]string, 0, len(req.ConfigFiles)+len(req.Dependencies)+len(req.Attachments))
	files = append(files, req.ConfigFiles...)
	files = append(files, req.Dependencies...)
	files = append(files, req.Attachments...)
	for _, src := range files {
		if err := fetch(ctx, t.transfer, wctx, src, "."); err != nil {
			return err
		}
	}

	if req.SetupFile != "" {
		if err := fetch(ctx, t.transfer, wctx, req.SetupFile, "."); err != nil {
			return err
		}
		wctx.Script.Comment("Sourcing setup file specified in job request")
		wctx.Script.Source(workflow.ScriptPath(transfer.FileName(req.SetupFile)))
		wctx.Script.Blank()
	}

	log.Ctx(ctx).Debug().Str("JobID", wctx.JobID).Int("Files", len(files)).Msg("job files staged")
	return nil
}

func jobTags(jobID string, req *models.JobRequest) string {
	tags := make([]string, 0, len(req.Tags)+2)
	tags = append(tags, "genie.id:"+jobID, "genie.name:"+req.Name)
	tags = append(tags, req.Tags...)
	return models.TagsToString(tags)
}

// compile-time check
var _ workflow.Task = (*Job)(nil)
