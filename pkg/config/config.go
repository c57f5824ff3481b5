package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/genie-oss/genie/pkg/config/types"
)

const (
	environmentVariablePrefix = "GENIE"
	inferConfigTypes          = true

	// JobsDirName is the job directory root under DataDir.
	JobsDirName = "jobs"
	// SQLiteFileName is the sqlite registry file under DataDir.
	SQLiteFileName = "genie.db"
)

var (
	environmentVariableReplace = strings.NewReplacer(".", "_")
	DecoderHook                = viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
)

type Config struct {
	// viper instance for holding user provided configuration.
	base *viper.Viper
	// the default configuration values to initialize with.
	defaultCfg types.Validatable

	// paths to configuration files merged from [0] to [N]
	// e.g. file at index 1 overrides index 0, index 2 overrides index 1 and 0, etc.
	paths []string

	flags map[string]*pflag.Flag

	// values to inject into the config, taking highest precedence.
	values map[string]any
}

type Option = func(s *Config)

// WithDefault sets the default config to be used when no values are provided.
func WithDefault(cfg types.Validatable) Option {
	return func(c *Config) {
		c.defaultCfg = cfg
	}
}

// WithPaths sets paths to configuration files to be loaded
// paths to configuration files merged from [0] to [N]
// e.g. file at index 1 overrides index 0, index 2 overrides index 1 and 0, etc.
func WithPaths(path ...string) Option {
	return func(c *Config) {
		c.paths = append(c.paths, path...)
	}
}

// WithFlags binds command line flags to config keys. A flag only overrides
// the config when it was set.
func WithFlags(flags map[string]*pflag.Flag) Option {
	return func(s *Config) {
		s.flags = flags
	}
}

// WithValues sets values to be injected into the config, taking precedence over all other options.
func WithValues(values map[string]any) Option {
	return func(c *Config) {
		c.values = values
	}
}

// New returns a configuration with the provided options applied. If no options are provided, the returned config
// contains only the default values of the current environment.
func New(opts ...Option) (*Config, error) {
	base := viper.New()
	base.SetEnvPrefix(environmentVariablePrefix)
	base.SetTypeByDefaultValue(inferConfigTypes)
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(environmentVariableReplace)

	c := &Config{
		base:       base,
		defaultCfg: ForEnvironment(),
		paths:      make([]string, 0),
	}
	for _, opt := range opts {
		opt(c)
	}

	var defaultMap map[string]interface{}
	if err := mapstructure.Decode(c.defaultCfg, &defaultMap); err != nil {
		return nil, err
	}
	if err := c.base.MergeConfigMap(defaultMap); err != nil {
		return nil, err
	}

	// merge the config files in the order they were passed.
	for _, path := range c.paths {
		if err := c.Merge(path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("the specified configuration file %q doesn't exist", path)
			}
			return nil, fmt.Errorf("opening config file %q: %w", path, err)
		}
	}

	for name, flag := range c.flags {
		if err := c.base.BindPFlag(name, flag); err != nil {
			return nil, fmt.Errorf("binding flag %q to config: %w", name, err)
		}
	}

	// merge the passed values last as they take highest precedence
	for name, value := range c.values {
		c.base.Set(name, value)
	}

	return c, nil
}

// Merge merges a new configuration file specified by `path` with the existing config.
// Merge returns an error if the file cannot be read
func (c *Config) Merge(path string) error {
	log.Debug().Msgf("merging config file: %q", path)
	c.base.SetConfigFile(path)
	return c.base.MergeInConfig()
}

// Unmarshal decodes the current configuration into out and validates it.
func (c *Config) Unmarshal(out types.Validatable) error {
	if err := c.base.Unmarshal(out, DecoderHook); err != nil {
		return err
	}
	return out.Validate()
}

// Current decodes the configuration, fills in the values derived from
// DataDir and validates the result.
func (c *Config) Current() (types.Genie, error) {
	var cfg types.Genie
	if err := c.base.Unmarshal(&cfg, DecoderHook); err != nil {
		return types.Genie{}, err
	}
	cfg = WithDerived(cfg)
	if err := cfg.Validate(); err != nil {
		return types.Genie{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Get returns the raw value of a config key.
func (c *Config) Get(key string) any {
	return c.base.Get(key)
}

// WithDerived fills unset paths relative to DataDir.
func WithDerived(cfg types.Genie) types.Genie {
	derived := types.Genie{
		Jobs: types.Jobs{Directory: filepath.Join(cfg.DataDir, JobsDirName)},
	}
	if strings.EqualFold(cfg.Registry.Type, types.RegistryTypeSQLite) {
		derived.Registry.DSN = filepath.Join(cfg.DataDir, SQLiteFileName)
	}
	// only empty fields of cfg are taken from derived
	if err := mergo.Merge(&cfg, derived); err != nil {
		log.Warn().Err(err).Msg("failed to derive config paths")
	}
	return cfg
}

// Getenv wraps os.Getenv and retrieves the value of the environment variable named by the config key.
// It returns the value, which will be empty if the variable is not present.
func Getenv(key string) string {
	return os.Getenv(KeyAsEnvVar(key))
}

// KeyAsEnvVar returns the environment variable corresponding to a config key
func KeyAsEnvVar(key string) string {
	return strings.ToUpper(
		fmt.Sprintf("%s_%s", environmentVariablePrefix, environmentVariableReplace.Replace(key)),
	)
}
