//go:build unit || !integration

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/config"
	"github.com/genie-oss/genie/pkg/config/configenv"
	"github.com/genie-oss/genie/pkg/config/types"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) newConfig(opts ...config.Option) types.Genie {
	cfg, err := config.New(append([]config.Option{config.WithDefault(configenv.Testing)}, opts...)...)
	s.Require().NoError(err)
	current, err := cfg.Current()
	s.Require().NoError(err)
	return current
}

func (s *ConfigSuite) TestDefaults() {
	cfg := s.newConfig()
	expected := configenv.Testing

	s.Equal(expected.DataDir, cfg.DataDir)
	s.Equal(expected.Jobs.Memory, cfg.Jobs.Memory)
	s.Equal(expected.Jobs.MaxRunning, cfg.Jobs.MaxRunning)
	s.Equal(expected.Retry, cfg.Retry)
	s.Equal(expected.Housekeeping, cfg.Housekeeping)
	s.Equal(expected.Selection.Cluster, cfg.Selection.Cluster)
	s.Equal(filepath.Join(expected.DataDir, config.JobsDirName), cfg.Jobs.Directory)
}

func (s *ConfigSuite) TestValueOverrides() {
	cfg := s.newConfig(config.WithValues(map[string]any{
		"jobs.maxrunning": 7,
		"logging.level":   "warn",
	}))
	s.Equal(7, cfg.Jobs.MaxRunning)
	s.Equal("warn", cfg.Logging.Level)
}

func (s *ConfigSuite) TestFileParsesSizesAndDurations() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
Jobs:
  Memory:
    Default: 2GB
    MaxJob: 16GB
  DefaultTimeout: 1h
Housekeeping:
  Interval: 5m
Selection:
  Cluster:
    - Type: expression
      Expression: 'resource.tags.exists(t, t == "prod")'
    - Type: random
      Seed: 42
`), 0o644))

	cfg := s.newConfig(config.WithPaths(path))
	s.Equal(2*datasize.GB, cfg.Jobs.Memory.Default)
	s.Equal(2048, cfg.Jobs.Memory.DefaultMB())
	s.Equal(16*datasize.GB, cfg.Jobs.Memory.MaxJob)
	s.Equal(time.Hour, cfg.Jobs.DefaultTimeout.AsTimeDuration())
	s.Equal(5*time.Minute, cfg.Housekeeping.Interval.AsTimeDuration())
	s.Require().Len(cfg.Selection.Cluster, 2)
	s.Equal("expression", cfg.Selection.Cluster[0].Type)
	s.Equal(int64(42), cfg.Selection.Cluster[1].Seed)
}

func (s *ConfigSuite) TestLaterFilesOverrideEarlierOnes() {
	dir := s.T().TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	s.Require().NoError(os.WriteFile(first, []byte("Jobs:\n  MaxRunning: 5\nLogging:\n  Level: warn\n"), 0o644))
	s.Require().NoError(os.WriteFile(second, []byte("Jobs:\n  MaxRunning: 9\n"), 0o644))

	cfg := s.newConfig(config.WithPaths(first, second))
	s.Equal(9, cfg.Jobs.MaxRunning)
	s.Equal("warn", cfg.Logging.Level)
}

func (s *ConfigSuite) TestEnvironmentVariables() {
	s.T().Setenv(config.KeyAsEnvVar(types.JobsMemoryMaxJobKey), "8GB")
	s.T().Setenv(config.KeyAsEnvVar(types.HousekeepingIntervalKey), "90s")

	cfg := s.newConfig()
	s.Equal(8*datasize.GB, cfg.Jobs.Memory.MaxJob)
	s.Equal(90*time.Second, cfg.Housekeeping.Interval.AsTimeDuration())
}

func (s *ConfigSuite) TestFlagsOnlyOverrideWhenSet() {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-running", 0, "")
	flags.String("log-level", "", "")
	s.Require().NoError(flags.Parse([]string{"--max-running=3"}))

	cfg := s.newConfig(config.WithFlags(map[string]*pflag.Flag{
		types.JobsMaxRunningKey: flags.Lookup("max-running"),
		types.LoggingLevelKey:   flags.Lookup("log-level"),
	}))
	s.Equal(3, cfg.Jobs.MaxRunning)
	s.Equal(configenv.Testing.Logging.Level, cfg.Logging.Level)
}

func (s *ConfigSuite) TestSQLiteDSNDerivedFromDataDir() {
	cfg := s.newConfig(config.WithValues(map[string]any{
		"registry.type": types.RegistryTypeSQLite,
		"datadir":       "/var/lib/genie",
	}))
	s.Equal("/var/lib/genie/genie.db", cfg.Registry.DSN)
	s.Equal("/var/lib/genie/jobs", cfg.Jobs.Directory)
}

func (s *ConfigSuite) TestExplicitPathsAreKept() {
	cfg := s.newConfig(config.WithValues(map[string]any{
		"registry.type":  types.RegistryTypeSQLite,
		"registry.dsn":   "/data/registry.db",
		"jobs.directory": "/scratch/jobs",
	}))
	s.Equal("/data/registry.db", cfg.Registry.DSN)
	s.Equal("/scratch/jobs", cfg.Jobs.Directory)
}

func (s *ConfigSuite) TestInvalidConfig() {
	testCases := []struct {
		name   string
		values map[string]any
	}{
		{name: "unknown registry", values: map[string]any{"registry.type": "oracle"}},
		{name: "postgres without dsn", values: map[string]any{"registry.type": "postgres"}},
		{name: "bad log level", values: map[string]any{"logging.level": "loud"}},
		{name: "no running jobs", values: map[string]any{"jobs.maxrunning": 0}},
		{name: "max below default", values: map[string]any{"jobs.memory.maxjob": "512MB"}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg, err := config.New(config.WithDefault(configenv.Testing), config.WithValues(tc.values))
			s.Require().NoError(err)
			_, err = cfg.Current()
			s.Error(err)
		})
	}
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := config.New(config.WithPaths(filepath.Join(s.T().TempDir(), "missing.yaml")))
	s.ErrorContains(err, "doesn't exist")
}

func (s *ConfigSuite) TestKeyAsEnvVar() {
	s.Equal("GENIE_JOBS_MEMORY_MAXJOB", config.KeyAsEnvVar(types.JobsMemoryMaxJobKey))
	s.Equal("GENIE_DATADIR", config.KeyAsEnvVar(types.DataDirKey))
}

func (s *ConfigSuite) TestForEnvironment() {
	s.T().Setenv("GENIE_ENVIRONMENT", "production")
	s.Equal(config.EnvironmentProd, config.GetConfigEnvironment())
	s.Equal(types.RegistryTypePostgres, config.ForEnvironment().Registry.Type)

	s.T().Setenv("GENIE_ENVIRONMENT", "Development")
	s.Equal(types.RegistryTypeSQLite, config.ForEnvironment().Registry.Type)

	s.T().Setenv("GENIE_ENVIRONMENT", "staging")
	s.Equal(config.EnvironmentDefault, config.GetConfigEnvironment())
	s.Equal(types.Default.Registry.Type, config.ForEnvironment().Registry.Type)
}
