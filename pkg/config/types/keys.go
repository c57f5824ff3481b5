package types

// Config keys bound to command line flags and environment variables. Keys are
// case insensitive; GENIE_JOBS_MAXRUNNING sets Jobs.MaxRunning.
const (
	DataDirKey                  = "DataDir"
	LoggingLevelKey             = "Logging.Level"
	LoggingModeKey              = "Logging.Mode"
	JobsDirectoryKey            = "Jobs.Directory"
	JobsMaxRunningKey           = "Jobs.MaxRunning"
	JobsMemoryDefaultKey        = "Jobs.Memory.Default"
	JobsMemoryMaxJobKey         = "Jobs.Memory.MaxJob"
	JobsUsersCreationKey        = "Jobs.Users.CreationEnabled"
	JobsUsersRunAsUserKey       = "Jobs.Users.RunAsUserEnabled"
	RegistryTypeKey             = "Registry.Type"
	RegistryDSNKey              = "Registry.DSN"
	RegistrySeedFileKey         = "Registry.SeedFile"
	HousekeepingIntervalKey     = "Housekeeping.Interval"
	LeaderStaticKey             = "Leader.Static"
	SelectionSemverRangesKey    = "Selection.SemverRanges"
	TransferMaxFileSizeKey      = "Transfer.MaxFileSize"
	LaunchersDisabledKey        = "Launchers.Disabled"
	HousekeepingJobRetentionKey = "Housekeeping.JobRetention"
)
