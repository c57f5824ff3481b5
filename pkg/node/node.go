// Package node wires the registry, resolver, workflow, launchers and
// background housekeeping of a genie server from its configuration.
package node

import (
	"context"
	"errors"
	"fmt"

	"github.com/imdario/mergo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/config/types"
	"github.com/genie-oss/genie/pkg/leader"
	"github.com/genie-oss/genie/pkg/lib/provider"
	"github.com/genie-oss/genie/pkg/models/criteria"
	"github.com/genie-oss/genie/pkg/orchestrator"
	"github.com/genie-oss/genie/pkg/orchestrator/resolver"
	"github.com/genie-oss/genie/pkg/orchestrator/selection/strategy"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/registry/retrying"
	"github.com/genie-oss/genie/pkg/storage/jobfs"
	"github.com/genie-oss/genie/pkg/storage/transfer"
	"github.com/genie-oss/genie/pkg/system"
	"github.com/genie-oss/genie/pkg/workflow"
	"github.com/genie-oss/genie/pkg/workflow/tasks"
)

// Node is a fully wired genie server.
type Node struct {
	Config types.Genie
	// Store goes through the retrying invoker.
	Store        registry.Store
	Resolver     *resolver.Resolver
	Coordinator  *orchestrator.Coordinator
	Housekeeping *orchestrator.Housekeeping
	JobDirs      *jobfs.Manager
	Launchers    provider.Provider[agent.Launcher]

	cleanupManager *system.CleanupManager
}

// NewNode builds every component of the server. Nothing runs in the
// background until Start is called. On error the resources opened so far
// are released.
func NewNode(ctx context.Context, cfg types.Genie, injector NodeDependencyInjector) (node *Node, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node configuration: %w", err)
	}
	if err = mergo.Merge(&injector, NewStandardNodeDependencyInjector()); err != nil {
		return nil, err
	}

	cm := system.NewCleanupManager()
	defer func() {
		if err != nil {
			err = errors.Join(err, cm.Cleanup(ctx))
		}
	}()

	var matcherOpts []criteria.Option
	if cfg.Selection.SemverRanges {
		matcherOpts = append(matcherOpts, criteria.WithSemverRanges())
	}
	rawStore, err := injector.StoreFactory.Get(ctx, cfg, criteria.NewMatcher(matcherOpts...))
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	cm.RegisterCallback("registry", rawStore.Close)

	if cfg.Registry.SeedFile != "" {
		if err = registry.LoadSeedFile(ctx, rawStore, cfg.Registry.SeedFile); err != nil {
			return nil, err
		}
		log.Ctx(ctx).Info().Str("SeedFile", cfg.Registry.SeedFile).Msg("registry seeded")
	}

	invoker, err := retrying.NewInvoker(retrying.InvokerParams{
		Policy: retrying.Policy{
			InitialInterval: cfg.Retry.InitialInterval.AsTimeDuration(),
			MaxInterval:     cfg.Retry.MaxInterval.AsTimeDuration(),
			MaxRetries:      cfg.Retry.MaxRetries,
		},
	})
	if err != nil {
		return nil, err
	}
	store := retrying.NewStore(rawStore, invoker)

	clusterSelector, err := strategy.NewClusterFactory().Chain("cluster-selectors", specs(cfg.Selection.Cluster)...)
	if err != nil {
		return nil, fmt.Errorf("invalid cluster selection: %w", err)
	}
	commandSelector, err := strategy.NewCommandFactory().Chain("command-selectors", specs(cfg.Selection.Command)...)
	if err != nil {
		return nil, fmt.Errorf("invalid command selection: %w", err)
	}
	launcherSelector, err := strategy.NewAgentLauncherFactory().Chain(
		"agent-launcher-selectors", specs(cfg.Selection.AgentLauncher)...)
	if err != nil {
		return nil, fmt.Errorf("invalid agent launcher selection: %w", err)
	}

	res, err := resolver.NewResolver(resolver.Params{
		Registry:        store,
		ClusterSelector: clusterSelector,
		CommandSelector: commandSelector,
		DefaultMemory:   cfg.Jobs.Memory.DefaultMB(),
		MaxMemory:       cfg.Jobs.Memory.MaxJobMB(),
		DefaultTimeout:  cfg.Jobs.DefaultTimeout.AsTimeDuration(),
	})
	if err != nil {
		return nil, err
	}

	workflowTasks, err := tasks.Default(tasks.Params{
		Transfer:   transfer.NewDefault(cfg.Transfer.MaxFileSize),
		Shell:      injector.Shell,
		CreateUser: cfg.Jobs.Users.CreationEnabled,
		RunAsUser:  cfg.Jobs.Users.RunAsUserEnabled,
	})
	if err != nil {
		return nil, err
	}
	executor, err := workflow.NewExecutor(workflowTasks)
	if err != nil {
		return nil, err
	}

	jobDirs, err := jobfs.NewManager(afero.NewOsFs(), cfg.Jobs.Directory)
	if err != nil {
		return nil, err
	}

	installed, err := injector.LaunchersFactory.Get(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create launchers: %w", err)
	}
	launchers := provider.NewConfiguredProvider[agent.Launcher](installed, cfg.Launchers.Disabled)

	coordinator, err := orchestrator.NewCoordinator(orchestrator.CoordinatorParams{
		JobStore:         store,
		Resolver:         res,
		Workflow:         executor,
		JobDirs:          jobDirs,
		Launchers:        launchers,
		LauncherSelector: launcherSelector,
		Admission:        orchestrator.NewAdmission(cfg.Jobs.MaxRunning),
	})
	if err != nil {
		return nil, err
	}

	housekeeping, err := orchestrator.NewHousekeeping(orchestrator.HousekeepingParams{
		JobStore:     store,
		JobDirs:      jobDirs,
		Leader:       leader.NewStatic(cfg.Leader.Static),
		Interval:     cfg.Housekeeping.Interval.AsTimeDuration(),
		Workers:      cfg.Housekeeping.Workers,
		JobRetention: cfg.Housekeeping.JobRetention.AsTimeDuration(),
		DirRetention: cfg.Housekeeping.DirectoryRetention.AsTimeDuration(),
		BatchSize:    cfg.Housekeeping.BatchSize,
	})
	if err != nil {
		return nil, err
	}
	cm.RegisterCallback("housekeeping", func(ctx context.Context) error {
		housekeeping.Stop(ctx)
		return nil
	})

	return &Node{
		Config:         cfg,
		Store:          store,
		Resolver:       res,
		Coordinator:    coordinator,
		Housekeeping:   housekeeping,
		JobDirs:        jobDirs,
		Launchers:      launchers,
		cleanupManager: cm,
	}, nil
}

// Start runs the background housekeeping.
func (n *Node) Start(ctx context.Context) {
	n.Housekeeping.Start(ctx)
	log.Ctx(ctx).Info().
		Str("Registry", n.Config.Registry.Type).
		Str("JobDirectory", n.JobDirs.Root()).
		Int("MaxRunning", n.Config.Jobs.MaxRunning).
		Strs("Launchers", n.Launchers.Keys(ctx)).
		Msg("genie node started")
}

// Stop stops housekeeping and closes the registry.
func (n *Node) Stop(ctx context.Context) error {
	return n.cleanupManager.Cleanup(ctx)
}

func specs(selectors []types.Selector) []strategy.Spec {
	out := make([]strategy.Spec, len(selectors))
	for i, s := range selectors {
		out[i] = strategy.Spec{
			Type:       s.Type,
			Identity:   s.Identity,
			Expression: s.Expression,
			Seed:       s.Seed,
		}
	}
	return out
}
