// Package configenv holds the default configuration of each environment a
// genie server runs in, selected with GENIE_ENVIRONMENT.
package configenv

import (
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"

	"github.com/genie-oss/genie/pkg/config/types"
)

// Production persists the registry in postgres. The DSN comes from
// GENIE_REGISTRY_DSN or the config file.
var Production = from(types.Default, func(c *types.Genie) {
	c.Registry.Type = types.RegistryTypePostgres
	c.Logging.Mode = "json"
	c.Leader.Static = false
	c.Jobs.Users.CreationEnabled = true
	c.Jobs.Users.RunAsUserEnabled = true
})

// Development keeps everything on the local machine in a sqlite registry.
var Development = from(types.Default, func(c *types.Genie) {
	c.Registry.Type = types.RegistryTypeSQLite
	c.Logging.Level = "debug"
	c.Jobs.MaxRunning = 10
	c.Launchers.Disabled = nil
	c.Housekeeping.DirectoryRetention = types.Day
})

// Testing is used by tests. It never touches the home directory.
var Testing = from(types.Default, func(c *types.Genie) {
	c.DataDir = filepath.Join(os.TempDir(), "genie-testing")
	c.Registry.Type = types.RegistryTypeInMemory
	c.Logging.Level = "debug"
	c.Jobs.Memory.Default = 1 * datasize.GB
	c.Jobs.Memory.MaxJob = 4 * datasize.GB
	c.Jobs.MaxRunning = 2
	c.Selection.Cluster = []types.Selector{{Type: "first-match"}}
	c.Launchers.Disabled = nil
	c.Housekeeping.Interval = types.Second
})

func from(base types.Genie, modify func(*types.Genie)) types.Genie {
	modify(&base)
	return base
}
