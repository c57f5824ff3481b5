package provider

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"
)

// ConfiguredProvider prevents access to certain values based on a passed in
// block-list of keys. It appears as if the disabled keys are not installed.
type ConfiguredProvider[Value Providable] struct {
	inner    Provider[Value]
	disabled []string
}

func NewConfiguredProvider[Value Providable](inner Provider[Value], disabled []string) Provider[Value] {
	sanitized := make([]string, len(disabled))
	for i, key := range disabled {
		sanitized[i] = sanitizeKey(key)
	}
	return &ConfiguredProvider[Value]{inner: inner, disabled: sanitized}
}

func (c *ConfiguredProvider[Value]) Get(ctx context.Context, key string) (v Value, err error) {
	if slices.Contains(c.disabled, sanitizeKey(key)) {
		return v, fmt.Errorf("%s is disabled", key)
	}
	return c.inner.Get(ctx, key)
}

func (c *ConfiguredProvider[Value]) Has(ctx context.Context, key string) bool {
	if slices.Contains(c.disabled, sanitizeKey(key)) {
		return false
	}
	return c.inner.Has(ctx, key)
}

func (c *ConfiguredProvider[Value]) Keys(ctx context.Context) (keys []string) {
	for _, key := range c.inner.Keys(ctx) {
		if !slices.Contains(c.disabled, key) {
			keys = append(keys, key)
		}
	}
	return
}

// compile-time check that we implement the interface
var _ Provider[Providable] = &ConfiguredProvider[Providable]{}
