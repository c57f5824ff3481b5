// Package tasks holds the built-in workflow tasks that turn a resolved job
// into a job directory, a run script and a job specification.
package tasks

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/lib/validate"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/storage/transfer"
	"github.com/genie-oss/genie/pkg/workflow"
)

const (
	errComponent = "WorkflowTask"

	// Version is exported to jobs as GENIE_VERSION.
	Version = "3"

	dirPerm  = 0o755
	filePerm = 0o644
	execPerm = 0o755
)

type Params struct {
	Transfer transfer.FileTransfer
	// Shell runs user management commands. Defaults to ExecShell.
	Shell Shell
	// CreateUser creates the job user on the host if it does not exist.
	CreateUser bool
	// RunAsUser runs the job as the requesting user with sudo.
	RunAsUser bool
	// GOOS decides whether setsid is used. Defaults to runtime.GOOS.
	GOOS string
}

func (p Params) Validate() error {
	return validate.NotNil(p.Transfer, "file transfer cannot be nil")
}

// Default returns the built-in tasks in the order they must run.
func Default(params Params) ([]workflow.Task, error) {
	if err := params.Validate(); err != nil {
		return nil, genieerrors.Wrap(err, "invalid workflow task configuration").
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent)
	}
	if params.GOOS == "" {
		params.GOOS = runtime.GOOS
	}
	return []workflow.Task{
		NewInitialSetup(),
		NewApplication(params.Transfer),
		NewCommand(params.Transfer),
		NewCluster(params.Transfer),
		NewJob(params.Transfer),
		NewKickoff(KickoffParams{
			Shell:      params.Shell,
			CreateUser: params.CreateUser,
			RunAsUser:  params.RunAsUser,
			GOOS:       params.GOOS,
		}),
	}, nil
}

// export records a literal variable in both the environment and the script.
func export(wctx *workflow.Context, key, value string) {
	wctx.Env.Set(key, value)
	wctx.Script.Export(key, value)
}

// exportTags records a tag list. Tags are written double quoted with quotes
// escaped by models.TagsToString.
func exportTags(wctx *workflow.Context, key, tags string) {
	wctx.Env.Set(key, tags)
	wctx.Script.ExportRaw(key, tags)
}

// exportPath records a path relative to the job directory. The script refers
// to it through GENIE_JOB_DIR, the environment carries the host path.
func exportPath(wctx *workflow.Context, key, rel string) {
	wctx.Env.Set(key, wctx.Layout.Abs(rel))
	wctx.Script.ExportRaw(key, workflow.ScriptPath(rel))
}

// resourceTags are the tags exported for a resource, including its id and
// name as genie.id and genie.name tags.
func resourceTags(r models.Taggable) string {
	tags := make([]string, 0, len(r.GetTags())+2)
	tags = append(tags, "genie.id:"+r.GetID(), "genie.name:"+r.GetName())
	tags = append(tags, r.GetTags()...)
	return models.TagsToString(tags)
}

func mkdirs(wctx *workflow.Context, dirs ...string) error {
	for _, dir := range dirs {
		if err := wctx.FS.MkdirAll(dir, dirPerm); err != nil {
			return ioError(err, "failed to create %s", dir)
		}
	}
	return nil
}

// stage fetches the files of a resource into dir and sources its setup file.
// Configs land in dir/config, dependencies in dir/dependencies and the setup
// file in dir itself.
func stage(
	ctx context.Context,
	ft transfer.FileTransfer,
	wctx *workflow.Context,
	kind string,
	id string,
	dir string,
	res models.ExecutionResources,
) error {
	configDir := wctx.Layout.ConfigDir(dir)
	depsDir := wctx.Layout.DependenciesDir(dir)
	if err := mkdirs(wctx, dir, configDir, depsDir); err != nil {
		return err
	}
	for _, src := range res.ConfigFiles {
		if err := fetch(ctx, ft, wctx, src, configDir); err != nil {
			return err
		}
	}
	for _, src := range res.Dependencies {
		if err := fetch(ctx, ft, wctx, src, depsDir); err != nil {
			return err
		}
	}
	if res.SetupFile != "" {
		if err := fetch(ctx, ft, wctx, res.SetupFile, dir); err != nil {
			return err
		}
		wctx.Script.Comment("Sourcing setup file from %s %s", kind, id)
		wctx.Script.Source(workflow.ScriptPath(path.Join(dir, transfer.FileName(res.SetupFile))))
		wctx.Script.Blank()
	}
	return nil
}

// fetch copies src into the job relative directory dir, keeping its file name.
func fetch(ctx context.Context, ft transfer.FileTransfer, wctx *workflow.Context, src, dir string) error {
	name := transfer.FileName(src)
	if name == "" {
		return genieerrors.New("cannot derive a file name from %q", src).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("source", src)
	}
	dst, err := wctx.Layout.Within(path.Join(dir, name))
	if err != nil {
		return genieerrors.Wrap(err, "cannot fetch %q", src).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("source", src)
	}
	log.Ctx(ctx).Debug().Str("JobID", wctx.JobID).Str("Source", src).Str("Destination", dst).Msg("fetching file")
	return ft.Get(ctx, src, dst)
}

func writeFile(fs afero.Fs, name string, data []byte, perm os.FileMode) error {
	if err := afero.WriteFile(fs, name, data, perm); err != nil {
		return ioError(err, "failed to write %s", name)
	}
	// WriteFile only applies the mode to new files
	if err := fs.Chmod(name, perm); err != nil {
		return ioError(err, "failed to set mode of %s", name)
	}
	return nil
}

func ioError(err error, format string, args ...any) error {
	return genieerrors.Wrap(err, format, args...).
		WithCode(genieerrors.IOError).
		WithComponent(errComponent)
}
