package util

import (
	"context"

	"github.com/genie-oss/genie/pkg/config/types"
)

type contextKey struct {
	name string
}

var configKey = contextKey{name: "context key for the loaded configuration"}

// WithConfig stores the configuration loaded by the root command.
func WithConfig(ctx context.Context, cfg types.Genie) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// GetConfig returns the configuration loaded by the root command.
func GetConfig(ctx context.Context) (types.Genie, bool) {
	cfg, ok := ctx.Value(configKey).(types.Genie)
	return cfg, ok
}
