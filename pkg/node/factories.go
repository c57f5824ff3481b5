package node

import (
	"context"
	"fmt"
	"strings"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/agent/local"
	"github.com/genie-oss/genie/pkg/agent/noop"
	"github.com/genie-oss/genie/pkg/config/types"
	"github.com/genie-oss/genie/pkg/lib/provider"
	"github.com/genie-oss/genie/pkg/models/criteria"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/registry/inmemory"
	"github.com/genie-oss/genie/pkg/registry/sqlstore"
	"github.com/genie-oss/genie/pkg/workflow/tasks"
)

// Interfaces to inject dependencies into the stack
type StoreFactory interface {
	Get(ctx context.Context, cfg types.Genie, matcher criteria.Matcher) (registry.Store, error)
}

type LaunchersFactory interface {
	Get(ctx context.Context, cfg types.Genie) (*provider.MappedProvider[agent.Launcher], error)
}

// Functions that implement the factories for easier creation of new implementations
type StoreFactoryFunc func(ctx context.Context, cfg types.Genie, matcher criteria.Matcher) (registry.Store, error)

func (f StoreFactoryFunc) Get(ctx context.Context, cfg types.Genie, matcher criteria.Matcher) (registry.Store, error) {
	return f(ctx, cfg, matcher)
}

type LaunchersFactoryFunc func(ctx context.Context, cfg types.Genie) (*provider.MappedProvider[agent.Launcher], error)

func (f LaunchersFactoryFunc) Get(ctx context.Context, cfg types.Genie) (*provider.MappedProvider[agent.Launcher], error) {
	return f(ctx, cfg)
}

// NodeDependencyInjector replaces parts of the node, mostly in tests.
// Unset fields use the standard implementations.
type NodeDependencyInjector struct {
	StoreFactory     StoreFactory
	LaunchersFactory LaunchersFactory
	// Shell runs the user management commands of the workflow.
	Shell tasks.Shell
}

func NewStandardNodeDependencyInjector() NodeDependencyInjector {
	return NodeDependencyInjector{
		StoreFactory:     NewStandardStoreFactory(),
		LaunchersFactory: NewStandardLaunchersFactory(),
		Shell:            tasks.ExecShell{},
	}
}

// NewStandardStoreFactory opens the store selected by Registry.Type.
func NewStandardStoreFactory() StoreFactory {
	return StoreFactoryFunc(func(ctx context.Context, cfg types.Genie, matcher criteria.Matcher) (registry.Store, error) {
		switch strings.ToLower(cfg.Registry.Type) {
		case types.RegistryTypeInMemory:
			return inmemory.NewStore(inmemory.WithMatcher(matcher)), nil
		case types.RegistryTypeSQLite, types.RegistryTypePostgres:
			store, err := sqlstore.Open(ctx, sqlstore.Params{
				Dialect:        sqlstore.Dialect(strings.ToLower(cfg.Registry.Type)),
				DSN:            cfg.Registry.DSN,
				AcquireTimeout: cfg.Registry.AcquireTimeout.AsTimeDuration(),
				QueryTimeout:   cfg.Registry.QueryTimeout.AsTimeDuration(),
				Matcher:        matcher,
			})
			if err != nil {
				return nil, err
			}
			return store, nil
		default:
			return nil, fmt.Errorf("unknown registry type %q", cfg.Registry.Type)
		}
	})
}

// NewStandardLaunchersFactory registers the local launcher first so that
// first-match selection prefers it, then the noop launcher.
func NewStandardLaunchersFactory() LaunchersFactory {
	return LaunchersFactoryFunc(func(ctx context.Context, cfg types.Genie) (*provider.MappedProvider[agent.Launcher], error) {
		launchers := provider.NewMappedProvider[agent.Launcher]()
		launchers.Add(local.Name, local.NewLauncher())
		launchers.Add(noop.Name, noop.NewLauncher())
		return launchers, nil
	})
}
