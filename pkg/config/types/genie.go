package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/c2h5oh/datasize"

	"github.com/genie-oss/genie/pkg/lib/validate"
)

// Validatable is implemented by every configuration root.
type Validatable interface {
	Validate() error
}

type Genie struct {
	// DataDir specifies a location on disk where the genie server keeps its state.
	DataDir      string       `yaml:"DataDir,omitempty"`
	Logging      Logging      `yaml:"Logging,omitempty"`
	Jobs         Jobs         `yaml:"Jobs,omitempty"`
	Selection    Selection    `yaml:"Selection,omitempty"`
	Retry        Retry        `yaml:"Retry,omitempty"`
	Registry     Registry     `yaml:"Registry,omitempty"`
	Transfer     Transfer     `yaml:"Transfer,omitempty"`
	Launchers    Launchers    `yaml:"Launchers,omitempty"`
	Housekeeping Housekeeping `yaml:"Housekeeping,omitempty"`
	Leader       Leader       `yaml:"Leader,omitempty"`
}

// Validate returns an error if the config is invalid
func (c Genie) Validate() error {
	return errors.Join(
		validate.NotBlank(c.DataDir, "DataDir cannot be empty"),
		c.Logging.Validate(),
		c.Jobs.Validate(),
		c.Selection.Validate(),
		c.Retry.Validate(),
		c.Registry.Validate(),
		c.Housekeeping.Validate(),
	)
}

type Logging struct {
	// Level sets the logging level. One of: trace, debug, info, warn, error, fatal, panic.
	Level string `yaml:"Level,omitempty"`
	// Mode specifies the logging mode. One of: default, json, combined, quiet.
	Mode string `yaml:"Mode,omitempty"`
}

func (c Logging) Validate() error {
	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !slices.Contains(validLogLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("logging level %q invalid. must be one of: %v", c.Level, validLogLevels)
	}
	return nil
}

type Jobs struct {
	// Directory is where job directories are created. Defaults to DataDir/jobs.
	Directory string `yaml:"Directory,omitempty"`
	Memory    Memory `yaml:"Memory,omitempty"`
	// MaxRunning bounds the submissions in flight on this node.
	MaxRunning int `yaml:"MaxRunning,omitempty"`
	// DefaultTimeout applies to jobs that do not request one. Zero means no timeout.
	DefaultTimeout Duration  `yaml:"DefaultTimeout,omitempty"`
	Users          JobsUsers `yaml:"Users,omitempty"`
}

func (c Jobs) Validate() error {
	return errors.Join(
		validate.IsGreaterThanZero(c.MaxRunning, "Jobs.MaxRunning must be greater than zero"),
		validate.IsGreaterOrEqualToZero(c.DefaultTimeout, "Jobs.DefaultTimeout cannot be negative"),
		c.Memory.Validate(),
	)
}

type Memory struct {
	// Default is the memory given to jobs when neither the request nor the command sets it.
	Default datasize.ByteSize `yaml:"Default,omitempty"`
	// MaxJob rejects jobs requesting more. Zero means no limit.
	MaxJob datasize.ByteSize `yaml:"MaxJob,omitempty"`
}

func (c Memory) Validate() error {
	if c.Default < datasize.MB {
		return fmt.Errorf("Jobs.Memory.Default must be at least 1MB, got %s", c.Default.HR())
	}
	if c.MaxJob != 0 && c.MaxJob < c.Default {
		return fmt.Errorf("Jobs.Memory.MaxJob %s is below Jobs.Memory.Default %s", c.MaxJob.HR(), c.Default.HR())
	}
	return nil
}

// DefaultMB returns the default memory in MB.
func (c Memory) DefaultMB() int {
	return int(c.Default / datasize.MB)
}

// MaxJobMB returns the per job memory limit in MB. Zero means no limit.
func (c Memory) MaxJobMB() int {
	return int(c.MaxJob / datasize.MB)
}

type JobsUsers struct {
	// CreationEnabled creates the requesting OS user when it does not exist.
	CreationEnabled bool `yaml:"CreationEnabled,omitempty"`
	// RunAsUserEnabled runs the job as the requesting user instead of the server user.
	RunAsUserEnabled bool `yaml:"RunAsUserEnabled,omitempty"`
}

// Selector configures one selection strategy.
type Selector struct {
	// Type is a registered strategy name. One of: first-match, random, expression.
	Type     string `yaml:"Type,omitempty"`
	Identity string `yaml:"Identity,omitempty"`
	// Expression is a CEL expression, used by the expression strategy.
	Expression string `yaml:"Expression,omitempty"`
	// Seed seeds the random strategy. Zero seeds from the clock.
	Seed int64 `yaml:"Seed,omitempty"`
}

func (c Selector) Validate() error {
	if strings.TrimSpace(c.Type) == "" {
		return fmt.Errorf("selector type cannot be empty")
	}
	return nil
}

type Selection struct {
	// Cluster strategies are chained in order.
	Cluster []Selector `yaml:"Cluster,omitempty"`
	// Command strategies are chained in order.
	Command []Selector `yaml:"Command,omitempty"`
	// AgentLauncher strategies are chained in order.
	AgentLauncher []Selector `yaml:"AgentLauncher,omitempty"`
	// SemverRanges lets criterion versions be semver constraints such as ">= 2.1".
	SemverRanges bool `yaml:"SemverRanges,omitempty"`
}

func (c Selection) Validate() error {
	var errs []error
	for kind, selectors := range map[string][]Selector{
		"Cluster":       c.Cluster,
		"Command":       c.Command,
		"AgentLauncher": c.AgentLauncher,
	} {
		if len(selectors) == 0 {
			errs = append(errs, fmt.Errorf("Selection.%s needs at least one selector", kind))
		}
		for _, s := range selectors {
			if err := s.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("Selection.%s: %w", kind, err))
			}
		}
	}
	return errors.Join(errs...)
}

type Retry struct {
	InitialInterval Duration `yaml:"InitialInterval,omitempty"`
	MaxInterval     Duration `yaml:"MaxInterval,omitempty"`
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64 `yaml:"MaxRetries,omitempty"`
}

func (c Retry) Validate() error {
	return errors.Join(
		validate.IsGreaterThanZero(c.InitialInterval, "Retry.InitialInterval must be greater than zero"),
		validate.IsGreaterOrEqualToZero(c.MaxInterval, "Retry.MaxInterval cannot be negative"),
	)
}

const (
	RegistryTypeInMemory = "inmemory"
	RegistryTypeSQLite   = "sqlite"
	RegistryTypePostgres = "postgres"
)

type Registry struct {
	// Type is one of: inmemory, sqlite, postgres.
	Type string `yaml:"Type,omitempty"`
	// DSN is a postgres connection string or a sqlite file path. Defaults
	// to DataDir/genie.db for sqlite.
	DSN string `yaml:"DSN,omitempty"`
	// SeedFile is loaded into the registry on startup.
	SeedFile       string   `yaml:"SeedFile,omitempty"`
	AcquireTimeout Duration `yaml:"AcquireTimeout,omitempty"`
	QueryTimeout   Duration `yaml:"QueryTimeout,omitempty"`
}

func (c Registry) Validate() error {
	switch strings.ToLower(c.Type) {
	case RegistryTypeInMemory, RegistryTypeSQLite:
		return nil
	case RegistryTypePostgres:
		return validate.NotBlank(c.DSN, "Registry.DSN is required for postgres")
	default:
		return fmt.Errorf("registry type %q unknown. must be one of: %v",
			c.Type, []string{RegistryTypeInMemory, RegistryTypeSQLite, RegistryTypePostgres})
	}
}

type Transfer struct {
	// MaxFileSize caps a single downloaded file. Zero means no limit.
	MaxFileSize datasize.ByteSize `yaml:"MaxFileSize,omitempty"`
}

type Launchers struct {
	// Disabled lists launchers that are never selected, e.g. noop.
	Disabled []string `yaml:"Disabled,omitempty"`
}

type Housekeeping struct {
	// Interval specifies how often to run housekeeping tasks.
	Interval Duration `yaml:"Interval,omitempty"`
	// Workers bounds parallel job directory deletions.
	Workers int `yaml:"Workers,omitempty"`
	// JobRetention is how long jobs are kept in the database. Zero disables database cleanup.
	JobRetention Duration `yaml:"JobRetention,omitempty"`
	// DirectoryRetention is how long job directories are kept on disk. Zero disables disk cleanup.
	DirectoryRetention Duration `yaml:"DirectoryRetention,omitempty"`
	BatchSize          int      `yaml:"BatchSize,omitempty"`
}

func (c Housekeeping) Validate() error {
	return errors.Join(
		validate.IsGreaterThanZero(c.Interval, "Housekeeping.Interval must be greater than zero"),
		validate.IsGreaterOrEqualToZero(c.JobRetention, "Housekeeping.JobRetention cannot be negative"),
		validate.IsGreaterOrEqualToZero(c.DirectoryRetention, "Housekeeping.DirectoryRetention cannot be negative"),
	)
}

type Leader struct {
	// Static makes this node the leader. Only the leader cleans up the database.
	Static bool `yaml:"Static,omitempty"`
}
