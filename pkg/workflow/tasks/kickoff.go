package tasks

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"sigs.k8s.io/yaml"

	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/workflow"
)

const childPIDVar = "CHILDREN_PID"

type KickoffParams struct {
	// Shell defaults to ExecShell.
	Shell      Shell
	CreateUser bool
	RunAsUser  bool
	GOOS       string
}

// Kickoff finishes the run script, writes the job files and builds the job
// specification handed to an agent launcher. It does not start the job.
type Kickoff struct {
	users      *Users
	createUser bool
	runAsUser  bool
	goos       string
}

func NewKickoff(params KickoffParams) *Kickoff {
	shell := params.Shell
	if shell == nil {
		shell = ExecShell{}
	}
	return &Kickoff{
		users:      NewUsers(shell),
		createUser: params.CreateUser,
		runAsUser:  params.RunAsUser,
		goos:       params.GOOS,
	}
}

func (t *Kickoff) Name() string {
	return "Kickoff"
}

func (t *Kickoff) Execute(ctx context.Context, wctx *workflow.Context) error {
	layout := wctx.Layout
	appendInvocation(wctx)

	if err := writeFile(wctx.FS, layout.RunScript(), []byte(wctx.Script.String()), execPerm); err != nil {
		return err
	}
	env, err := godotenv.Marshal(wctx.Env.Map())
	if err != nil {
		return ioError(err, "failed to encode job environment")
	}
	if err = writeFile(wctx.FS, layout.EnvFile(), []byte(env+"\n"), filePerm); err != nil {
		return err
	}

	user := ""
	if wctx.Request != nil {
		user = wctx.Request.User
	}
	if t.createUser && user != "" {
		if err = t.users.Ensure(ctx, user, wctx.Request.Group); err != nil {
			return err
		}
	}

	var commandLine []string
	if t.runAsUser && user != "" {
		if err = t.users.Chown(ctx, layout.JobDir, user); err != nil {
			return err
		}
		// the launcher still writes genie.log as the server user
		if err = t.users.MakeGroupWritable(ctx, layout.Abs(layout.LogsDir())); err != nil {
			return err
		}
		commandLine = append(commandLine, "sudo", "-u", user)
	}
	if t.goos == "linux" {
		commandLine = append(commandLine, "setsid")
	}
	commandLine = append(commandLine, "bash", layout.Abs(layout.RunScript()))

	spec := models.JobSpecification{
		JobID:        wctx.JobID,
		Cluster:      wctx.Cluster,
		Command:      wctx.Command,
		Applications: wctx.Applications,
		CommandLine:  commandLine,
		Environment:  wctx.Env.Map(),
		JobDirectory: layout.JobDir,
		LogFile:      layout.Abs(layout.LogFile()),
		Memory:       wctx.Memory,
		Timeout:      wctx.Timeout,
		User:         user,
		RunAsUser:    t.runAsUser,
	}
	if wctx.Request != nil {
		spec.JobName = wctx.Request.Name
	}

	meta, err := yaml.Marshal(newMetadata(spec))
	if err != nil {
		return ioError(err, "failed to encode job metadata")
	}
	if err = writeFile(wctx.FS, layout.MetadataFile(), meta, filePerm); err != nil {
		return err
	}

	wctx.Specification = &spec
	log.Ctx(ctx).Debug().
		Str("JobID", wctx.JobID).
		Strs("CommandLine", commandLine).
		Msg("job specification ready")
	return nil
}

// appendInvocation runs the command in the background, waits for it and
// records its exit code in the done file.
func appendInvocation(wctx *workflow.Context) {
	invocation := strings.Join(wctx.Command.Executable, " ")
	if wctx.Request != nil && len(wctx.Request.CommandArgs) > 0 {
		invocation += " " + strings.Join(wctx.Request.CommandArgs, " ")
	}
	done := workflow.ScriptPath(wctx.Layout.DoneFile())
	tmpDone := done + ".temp"

	wctx.Script.
		Comment("Dump the environment to a env.log file").
		Linef("env | sort > %s", workflow.ScriptPath(wctx.Layout.LogsDir()+"/env.log")).
		Blank().
		Comment("Kick off the command in background mode and wait for it using its pid").
		Linef("%s > %s 2> %s &", invocation,
			workflow.ScriptPath(workflow.StdoutFileName), workflow.ScriptPath(workflow.StderrFileName)).
		Linef("export %s=$!", childPIDVar).
		Linef("wait ${%s}", childPIDVar).
		Blank().
		Comment("Write the return code from the command in the done file.").
		Linef(`printf '{"exitCode": "%%s"}\n' "$?" > %s`, tmpDone).
		Linef("mv -n %s %s", tmpDone, done).
		Line("echo End: `date '+%Y-%m-%d %H:%M:%S'`")
}

// metadata is the resolved view of a job written to genie/metadata.yaml.
type metadata struct {
	JobID        string            `json:"jobId"`
	JobName      string            `json:"jobName,omitempty"`
	User         string            `json:"user,omitempty"`
	Cluster      resourceRef       `json:"cluster"`
	Command      resourceRef       `json:"command"`
	Applications []resourceRef     `json:"applications,omitempty"`
	CommandLine  []string          `json:"commandLine"`
	Memory       int               `json:"memory"`
	Timeout      string            `json:"timeout,omitempty"`
	Environment  map[string]string `json:"environment,omitempty"`
}

type resourceRef struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Version string   `json:"version,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func newMetadata(spec models.JobSpecification) metadata {
	m := metadata{
		JobID:       spec.JobID,
		JobName:     spec.JobName,
		User:        spec.User,
		Cluster:     newResourceRef(spec.Cluster),
		Command:     newResourceRef(spec.Command),
		CommandLine: spec.CommandLine,
		Memory:      spec.Memory,
		Environment: spec.Environment,
	}
	for _, app := range spec.Applications {
		m.Applications = append(m.Applications, newResourceRef(app))
	}
	if spec.Timeout > 0 {
		m.Timeout = spec.Timeout.String()
	}
	return m
}

func newResourceRef(r models.Taggable) resourceRef {
	return resourceRef{ID: r.GetID(), Name: r.GetName(), Version: r.GetVersion(), Tags: r.GetTags()}
}

// compile-time check
var _ workflow.Task = (*Kickoff)(nil)
