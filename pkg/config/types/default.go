package types

import (
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
)

// Default is the default configuration for a genie server.
var Default = Genie{
	DataDir: DefaultDataDir(),
	Logging: Logging{
		Level: "info",
		Mode:  "default",
	},
	Jobs: Jobs{
		Memory: Memory{
			Default: 1536 * datasize.MB,
			MaxJob:  30 * datasize.GB,
		},
		MaxRunning: 100,
	},
	Selection: Selection{
		Cluster:       []Selector{{Type: "random"}},
		Command:       []Selector{{Type: "first-match"}},
		AgentLauncher: []Selector{{Type: "first-match"}},
	},
	Retry: Retry{
		InitialInterval: 100 * Millisecond,
		MaxInterval:     2 * Second,
		MaxRetries:      3,
	},
	Registry: Registry{
		Type:           RegistryTypeInMemory,
		AcquireTimeout: 5 * Second,
		QueryTimeout:   30 * Second,
	},
	Transfer: Transfer{
		MaxFileSize: 10 * datasize.GB,
	},
	Launchers: Launchers{
		Disabled: []string{"noop"},
	},
	Housekeeping: Housekeeping{
		Interval:           10 * Minute,
		Workers:            3,
		JobRetention:       30 * Day,
		DirectoryRetention: 7 * Day,
		BatchSize:          100,
	},
	Leader: Leader{
		Static: true,
	},
}

const defaultDataDirName = ".genie"

// DefaultDataDir returns $HOME/.genie, or .genie in the working directory
// when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, defaultDataDirName)
}
