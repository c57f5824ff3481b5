package workflow

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Names of the files and directories genie manages inside a job directory.
const (
	GenieDirName        = "genie"
	LogsDirName         = "logs"
	ApplicationsDirName = "applications"
	CommandDirName      = "command"
	ClusterDirName      = "cluster"
	ConfigDirName       = "config"
	DependenciesDirName = "dependencies"

	RunScriptName    = "run"
	EnvFileName      = "env.list"
	MetadataFileName = "metadata.yaml"
	DoneFileName     = "genie.done"
	LogFileName      = "genie.log"
	StdoutFileName   = "stdout"
	StderrFileName   = "stderr"
)

// Layout resolves paths inside one job directory. Relative paths are used
// with the job scoped filesystem, Abs paths with the host.
type Layout struct {
	// JobDir is the absolute path of the job directory on the host.
	JobDir string
}

func NewLayout(jobDir string) Layout {
	return Layout{JobDir: filepath.Clean(jobDir)}
}

// Abs returns the host path of a path relative to the job directory.
func (l Layout) Abs(rel string) string {
	return filepath.Join(l.JobDir, filepath.FromSlash(rel))
}

// Within is Abs for paths that come from a request or the registry. It fails
// unless the result lies strictly inside the job directory.
func (l Layout) Within(rel string) (string, error) {
	abs := l.Abs(rel)
	r, err := filepath.Rel(l.JobDir, abs)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside job directory %s", rel, l.JobDir)
	}
	return abs, nil
}

func (l Layout) GenieDir() string        { return GenieDirName }
func (l Layout) LogsDir() string         { return path.Join(GenieDirName, LogsDirName) }
func (l Layout) ApplicationsDir() string { return path.Join(GenieDirName, ApplicationsDirName) }
func (l Layout) RunScript() string       { return RunScriptName }
func (l Layout) EnvFile() string         { return path.Join(GenieDirName, EnvFileName) }
func (l Layout) MetadataFile() string    { return path.Join(GenieDirName, MetadataFileName) }
func (l Layout) DoneFile() string        { return path.Join(GenieDirName, DoneFileName) }
func (l Layout) LogFile() string         { return path.Join(GenieDirName, LogsDirName, LogFileName) }

func (l Layout) ApplicationDir(id string) string {
	return path.Join(GenieDirName, ApplicationsDirName, id)
}

func (l Layout) CommandDir(id string) string {
	return path.Join(GenieDirName, CommandDirName, id)
}

func (l Layout) ClusterDir(id string) string {
	return path.Join(GenieDirName, ClusterDirName, id)
}

// ConfigDir is the config staging directory below a resource directory.
func (l Layout) ConfigDir(resourceDir string) string {
	return path.Join(resourceDir, ConfigDirName)
}

// DependenciesDir is the dependency staging directory below a resource directory.
func (l Layout) DependenciesDir(resourceDir string) string {
	return path.Join(resourceDir, DependenciesDirName)
}

// ScriptPath is a path relative to the job directory as the run script
// refers to it.
func ScriptPath(rel string) string {
	return "${" + EnvJobDir + "}/" + rel
}
