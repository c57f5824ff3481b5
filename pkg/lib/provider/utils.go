package provider

import (
	"context"
	"strings"
)

// InstalledValues returns every installed value of the provider in key order.
func InstalledValues[Value Providable](ctx context.Context, provider Provider[Value]) ([]Value, error) {
	keys := provider.Keys(ctx)
	values := make([]Value, 0, len(keys))
	for _, key := range keys {
		v, err := provider.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// sanitizeKey transforms the provider keys by:
// 1. Converting to lower case to make the matching case in-sensitive
// 2. Trim spaces
func sanitizeKey(key string) string {
	s := strings.TrimSpace(key)
	s = strings.ToLower(s)
	return s
}
