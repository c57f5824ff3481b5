package util

import (
	"github.com/spf13/pflag"

	"github.com/genie-oss/genie/pkg/config"
	"github.com/genie-oss/genie/pkg/config/types"
)

// ConfigOptions are the config files and flag overrides shared by every
// command.
type ConfigOptions struct {
	Paths []string
	Flags map[string]*pflag.Flag
}

// SetupConfig loads the config files, environment and flags on top of the
// defaults of the current GENIE_ENVIRONMENT.
func SetupConfig(opts ConfigOptions) (types.Genie, error) {
	cfg, err := config.New(
		config.WithPaths(opts.Paths...),
		config.WithFlags(opts.Flags),
	)
	if err != nil {
		return types.Genie{}, err
	}
	return cfg.Current()
}
