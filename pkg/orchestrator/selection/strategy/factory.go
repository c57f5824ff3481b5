package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/orchestrator/selection"
)

// Spec describes one configured selector.
type Spec struct {
	// Type is a registered strategy name, e.g. "random".
	Type string `mapstructure:"Type"`
	// Identity overrides the default identity of the strategy.
	Identity string `mapstructure:"Identity"`
	// Expression is used by the expression strategy.
	Expression string `mapstructure:"Expression"`
	// Seed is used by the random strategy.
	Seed int64 `mapstructure:"Seed"`
}

// Constructor builds a selector from its spec.
type Constructor[R any] func(spec Spec) (selection.Selector[R], error)

// Factory builds selectors by strategy name. Strategies are registered
// explicitly; there is no discovery.
type Factory[R any] struct {
	constructors map[string]Constructor[R]
}

// NewFactory returns a factory with the built-in strategies registered.
func NewFactory[R any](attributes AttributesFunc[R]) *Factory[R] {
	f := &Factory[R]{constructors: make(map[string]Constructor[R])}
	f.mustRegister(RandomType, func(spec Spec) (selection.Selector[R], error) {
		return NewRandom[R](RandomParams{Identity: spec.Identity, Seed: spec.Seed}), nil
	})
	f.mustRegister(FirstMatchType, func(spec Spec) (selection.Selector[R], error) {
		return NewFirstMatch[R](spec.Identity), nil
	})
	f.mustRegister(ExpressionType, func(spec Spec) (selection.Selector[R], error) {
		s, err := NewExpression(ExpressionParams[R]{
			Identity:   spec.Identity,
			Expression: spec.Expression,
			Attributes: attributes,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	return f
}

func NewClusterFactory() *Factory[models.Cluster] {
	return NewFactory[models.Cluster](ResourceAttributes[models.Cluster])
}

func NewCommandFactory() *Factory[models.Command] {
	return NewFactory[models.Command](ResourceAttributes[models.Command])
}

func NewAgentLauncherFactory() *Factory[agent.Launcher] {
	return NewFactory[agent.Launcher](LauncherAttributes)
}

// Register adds a strategy. Names are case insensitive and must be unique.
func (f *Factory[R]) Register(name string, constructor Constructor[R]) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("strategy name must not be blank")
	}
	if _, ok := f.constructors[key]; ok {
		return fmt.Errorf("strategy %s already registered", key)
	}
	f.constructors[key] = constructor
	return nil
}

func (f *Factory[R]) mustRegister(name string, constructor Constructor[R]) {
	if err := f.Register(name, constructor); err != nil {
		panic(err)
	}
}

// Names returns the registered strategy names, sorted.
func (f *Factory[R]) Names() []string {
	names := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the selector described by spec.
func (f *Factory[R]) New(spec Spec) (selection.Selector[R], error) {
	key := strings.ToLower(strings.TrimSpace(spec.Type))
	constructor, ok := f.constructors[key]
	if !ok {
		return nil, fmt.Errorf("unknown selection strategy %q, supported: %s", spec.Type, strings.Join(f.Names(), ", "))
	}
	return constructor(spec)
}

// Chain builds every spec and chains them in order. A single spec is
// returned as is.
func (f *Factory[R]) Chain(identity string, specs ...Spec) (selection.Selector[R], error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no selection strategies configured")
	}
	selectors := make([]selection.Selector[R], 0, len(specs))
	for _, spec := range specs {
		s, err := f.New(spec)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, s)
	}
	if len(selectors) == 1 {
		return selectors[0], nil
	}
	chain, err := NewChain(identity, selectors...)
	if err != nil {
		return nil, err
	}
	return chain, nil
}
