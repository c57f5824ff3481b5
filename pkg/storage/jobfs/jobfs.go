// Package jobfs manages the per job working directories below a root
// directory. Every job gets a filesystem that cannot reach outside its own
// directory.
package jobfs

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/afero"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

const (
	errComponent = "JobFS"
	dirPerm      = 0o755
)

var validJobID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Manager creates and removes job directories.
type Manager struct {
	fs   afero.Fs
	root string
}

// NewManager returns a manager for root on fs. fs is usually afero.NewOsFs.
func NewManager(fs afero.Fs, root string) (*Manager, error) {
	if root == "" {
		return nil, genieerrors.New("job directory root must not be blank").
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent)
	}
	root = filepath.Clean(root)
	if err := fs.MkdirAll(root, dirPerm); err != nil {
		return nil, ioError(err, "failed to create job directory root %s", root)
	}
	return &Manager{fs: fs, root: root}, nil
}

func (m *Manager) Root() string {
	return m.root
}

// Dir returns the host path of a job directory.
func (m *Manager) Dir(jobID string) string {
	return filepath.Join(m.root, jobID)
}

// Create makes the job directory and returns its path and a filesystem
// rooted at it. The directory must not exist yet.
func (m *Manager) Create(jobID string) (string, afero.Fs, error) {
	if !validJobID.MatchString(jobID) {
		return "", nil, genieerrors.New("job id %q cannot be used as a directory name", jobID).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("jobID", jobID)
	}
	dir := m.Dir(jobID)
	exists, err := afero.DirExists(m.fs, dir)
	if err != nil {
		return "", nil, ioError(err, "failed to check job directory %s", dir)
	}
	if exists {
		return "", nil, genieerrors.New("job directory %s already exists", dir).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("jobID", jobID)
	}
	if err = m.fs.MkdirAll(dir, dirPerm); err != nil {
		return "", nil, ioError(err, "failed to create job directory %s", dir)
	}
	return dir, afero.NewBasePathFs(m.fs, dir), nil
}

// Delete removes a job directory and everything in it.
func (m *Manager) Delete(jobID string) error {
	if !validJobID.MatchString(jobID) {
		return genieerrors.New("refusing to delete job directory for id %q", jobID).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent)
	}
	if err := m.fs.RemoveAll(m.Dir(jobID)); err != nil {
		return ioError(err, "failed to delete job directory of %s", jobID)
	}
	return nil
}

// ModifiedBefore returns the ids of job directories last modified before t.
func (m *Manager) ModifiedBefore(t time.Time) ([]string, error) {
	entries, err := afero.ReadDir(m.fs, m.root)
	if err != nil {
		return nil, ioError(err, "failed to list job directories in %s", m.root)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() && entry.ModTime().Before(t) && validJobID.MatchString(entry.Name()) {
			ids = append(ids, entry.Name())
		}
	}
	return ids, nil
}

func ioError(err error, format string, args ...any) error {
	e := genieerrors.Wrap(err, format, args...).WithCode(genieerrors.IOError).WithComponent(errComponent)
	if os.IsPermission(err) {
		return e.WithHint("check that the server user can write to the job directory root")
	}
	return e
}
