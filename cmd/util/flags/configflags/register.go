// Package configflags declares the command line flags that override
// configuration keys.
package configflags

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/genie-oss/genie/pkg/config/types"
)

// Definition is a flag bound to a config key. The flag default is only
// shown in help; the config default applies while the flag is unset.
type Definition struct {
	FlagName     string
	ConfigPath   string
	DefaultValue any
	Description  string
}

// RegisterFlags adds one flag set per group to the persistent flags of cmd
// and returns the flags keyed by config path, ready for config.WithFlags.
func RegisterFlags(cmd *cobra.Command, register map[string][]Definition) (map[string]*pflag.Flag, error) {
	bound := make(map[string]*pflag.Flag)
	for name, defs := range register {
		fset := pflag.NewFlagSet(name, pflag.ContinueOnError)
		for _, def := range defs {
			switch v := def.DefaultValue.(type) {
			case int:
				fset.Int(def.FlagName, v, def.Description)
			case bool:
				fset.Bool(def.FlagName, v, def.Description)
			case string:
				fset.String(def.FlagName, v, def.Description)
			case []string:
				fset.StringSlice(def.FlagName, v, def.Description)
			case fmt.Stringer:
				// sizes and durations are parsed by the config decoder
				fset.String(def.FlagName, v.String(), def.Description)
			default:
				return nil, fmt.Errorf("unhandled type %T for flag %q", v, def.FlagName)
			}
			bound[def.ConfigPath] = fset.Lookup(def.FlagName)
		}
		cmd.PersistentFlags().AddFlagSet(fset)
	}
	return bound, nil
}

var DataDirFlags = []Definition{
	{
		FlagName:     "data-dir",
		ConfigPath:   types.DataDirKey,
		DefaultValue: types.Default.DataDir,
		Description:  "The directory holding job directories and the sqlite registry",
	},
}

var LogFlags = []Definition{
	{
		FlagName:     "log-mode",
		ConfigPath:   types.LoggingModeKey,
		DefaultValue: types.Default.Logging.Mode,
		Description:  `Log format: 'default','json','combined','quiet'`,
	},
	{
		FlagName:     "log-level",
		ConfigPath:   types.LoggingLevelKey,
		DefaultValue: types.Default.Logging.Level,
		Description:  `Log level: 'trace', 'debug', 'info', 'warn', 'error', 'fatal', 'panic'`,
	},
}

var RegistryFlags = []Definition{
	{
		FlagName:     "registry",
		ConfigPath:   types.RegistryTypeKey,
		DefaultValue: types.Default.Registry.Type,
		Description:  `Registry backend: 'inmemory', 'sqlite' or 'postgres'`,
	},
	{
		FlagName:     "registry-dsn",
		ConfigPath:   types.RegistryDSNKey,
		DefaultValue: types.Default.Registry.DSN,
		Description:  "Data source of the sqlite or postgres registry",
	},
	{
		FlagName:     "seed-file",
		ConfigPath:   types.RegistrySeedFileKey,
		DefaultValue: types.Default.Registry.SeedFile,
		Description:  "YAML or JSON file of applications, commands and clusters loaded at startup",
	},
	{
		FlagName:     "semver-ranges",
		ConfigPath:   types.SelectionSemverRangesKey,
		DefaultValue: types.Default.Selection.SemverRanges,
		Description:  "Match criterion versions as semver constraints",
	},
}

var JobFlags = []Definition{
	{
		FlagName:     "job-directory",
		ConfigPath:   types.JobsDirectoryKey,
		DefaultValue: types.Default.Jobs.Directory,
		Description:  "Root of the job directories. Defaults to <data-dir>/jobs",
	},
	{
		FlagName:     "max-running",
		ConfigPath:   types.JobsMaxRunningKey,
		DefaultValue: types.Default.Jobs.MaxRunning,
		Description:  "Maximum number of job submissions in flight",
	},
	{
		FlagName:     "default-memory",
		ConfigPath:   types.JobsMemoryDefaultKey,
		DefaultValue: types.Default.Jobs.Memory.Default,
		Description:  "Memory of jobs that request none, e.g. 1536MB",
	},
	{
		FlagName:     "max-job-memory",
		ConfigPath:   types.JobsMemoryMaxJobKey,
		DefaultValue: types.Default.Jobs.Memory.MaxJob,
		Description:  "Largest memory a single job may request",
	},
	{
		FlagName:     "max-file-size",
		ConfigPath:   types.TransferMaxFileSizeKey,
		DefaultValue: types.Default.Transfer.MaxFileSize,
		Description:  "Largest dependency file downloaded into a job directory",
	},
	{
		FlagName:     "disable-launcher",
		ConfigPath:   types.LaunchersDisabledKey,
		DefaultValue: types.Default.Launchers.Disabled,
		Description:  "Agent launchers that are never selected",
	},
}

var HousekeepingFlags = []Definition{
	{
		FlagName:     "housekeeping-interval",
		ConfigPath:   types.HousekeepingIntervalKey,
		DefaultValue: types.Default.Housekeeping.Interval,
		Description:  "How often old jobs and job directories are removed",
	},
	{
		FlagName:     "job-retention",
		ConfigPath:   types.HousekeepingJobRetentionKey,
		DefaultValue: types.Default.Housekeeping.JobRetention,
		Description:  "How long finished jobs are kept in the registry",
	},
	{
		FlagName:     "leader",
		ConfigPath:   types.LeaderStaticKey,
		DefaultValue: types.Default.Leader.Static,
		Description:  "Whether this node cleans the shared registry",
	},
}
