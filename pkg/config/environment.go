package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/config/configenv"
	"github.com/genie-oss/genie/pkg/config/types"
)

type Environment string

const (
	EnvironmentProd    Environment = "production"
	EnvironmentDev     Environment = "development"
	EnvironmentTest    Environment = "test"
	EnvironmentDefault Environment = "default"
)

const environmentVariable = "GENIE_ENVIRONMENT"

// GetConfigEnvironment reads the environment from GENIE_ENVIRONMENT.
// Unknown values fall back to the default environment.
func GetConfigEnvironment() Environment {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(environmentVariable)))
	switch Environment(raw) {
	case EnvironmentProd, EnvironmentDev, EnvironmentTest:
		return Environment(raw)
	case "", EnvironmentDefault:
		return EnvironmentDefault
	default:
		log.Warn().Str("Environment", raw).Msgf("unknown %s, using default configuration", environmentVariable)
		return EnvironmentDefault
	}
}

// ForEnvironment returns the default configuration of the current environment.
func ForEnvironment() types.Genie {
	switch GetConfigEnvironment() {
	case EnvironmentProd:
		return configenv.Production
	case EnvironmentDev:
		return configenv.Development
	case EnvironmentTest:
		return configenv.Testing
	default:
		return types.Default
	}
}
