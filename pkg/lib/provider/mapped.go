package provider

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// A MappedProvider is a Provider that stores the providables by key, keeps
// their registration order and caches permanently the results of checking
// installation status.
type MappedProvider[Value Providable] struct {
	mu             sync.RWMutex
	order          []string
	providables    map[string]Value
	installedCache map[string]bool
}

func NewMappedProvider[Value Providable]() *MappedProvider[Value] {
	return &MappedProvider[Value]{
		providables:    make(map[string]Value),
		installedCache: make(map[string]bool),
	}
}

// Add registers value under key. Re-adding a key replaces the value but keeps
// its original position.
func (provider *MappedProvider[Value]) Add(key string, value Value) {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	key = sanitizeKey(key)
	if _, ok := provider.providables[key]; !ok {
		provider.order = append(provider.order, key)
	}
	provider.providables[key] = value
	delete(provider.installedCache, key)
}

// Get implements Provider
func (provider *MappedProvider[Value]) Get(ctx context.Context, key string) (v Value, err error) {
	key = sanitizeKey(key)
	provider.mu.RLock()
	providable, ok := provider.providables[key]
	installed, cached := provider.installedCache[key]
	known := slices.Clone(provider.order)
	provider.mu.RUnlock()

	if !ok {
		return v, fmt.Errorf("no matching key found on this server: %s. Only supports %s", key, known)
	}

	// IsInstalled may be slow so it runs without the lock held. Two callers
	// racing here both check and store the same answer.
	if !cached {
		installed, err = providable.IsInstalled(ctx)
		if err != nil {
			return v, err
		}
		provider.mu.Lock()
		provider.installedCache[key] = installed
		provider.mu.Unlock()
	}

	if !installed {
		return v, fmt.Errorf("key is not installed: %s", key)
	}
	return providable, nil
}

// Has implements Provider
func (provider *MappedProvider[Value]) Has(ctx context.Context, key string) bool {
	_, err := provider.Get(ctx, key)
	return err == nil
}

// Keys implements Provider
func (provider *MappedProvider[Value]) Keys(ctx context.Context) (keys []string) {
	provider.mu.RLock()
	order := slices.Clone(provider.order)
	provider.mu.RUnlock()

	for _, key := range order {
		if provider.Has(ctx, key) {
			keys = append(keys, key)
		}
	}
	return
}

// compile-time check that we implement the interface
var _ Provider[Providable] = &MappedProvider[Providable]{}
