package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/genie-oss/genie/pkg/orchestrator/selection"
)

const ExpressionType = "expression"

const (
	resourceVariable = "resource"
	jobVariable      = "job"
)

// Expression evaluates a CEL expression against each candidate in order and
// picks the first one for which it is true. The expression sees two maps:
// resource (see AttributesFunc) and job (the request).
//
//	'prod' in resource.tags && job.memory <= 4096
type Expression[R any] struct {
	identity   string
	expression string
	attributes AttributesFunc[R]
	program    cel.Program
}

type ExpressionParams[R any] struct {
	// Identity defaults to "expression".
	Identity   string
	Expression string
	Attributes AttributesFunc[R]
}

func NewExpression[R any](params ExpressionParams[R]) (*Expression[R], error) {
	if strings.TrimSpace(params.Expression) == "" {
		return nil, fmt.Errorf("expression selector needs a non blank expression")
	}
	if params.Attributes == nil {
		return nil, fmt.Errorf("expression selector needs an attributes function")
	}
	if params.Identity == "" {
		params.Identity = ExpressionType
	}

	env, err := cel.NewEnv(
		cel.Variable(resourceVariable, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(jobVariable, cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating CEL environment: %w", err)
	}
	ast, issues := env.Compile(params.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("error compiling selector expression %q: %w", params.Expression, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("error creating program for %q: %w", params.Expression, err)
	}
	return &Expression[R]{
		identity:   params.Identity,
		expression: params.Expression,
		attributes: params.Attributes,
		program:    program,
	}, nil
}

func (s *Expression[R]) Identity() string {
	return s.identity
}

func (s *Expression[R]) Select(_ context.Context, sc selection.Context[R]) (selection.Result[R], error) {
	job := JobAttributes(sc)
	candidates := sc.Candidates()
	for i, candidate := range candidates {
		attrs := s.attributes(candidate)
		attrs["index"] = i
		out, _, err := s.program.Eval(map[string]any{
			resourceVariable: attrs,
			jobVariable:      job,
		})
		if err != nil {
			return selection.Result[R]{}, fmt.Errorf("error evaluating %q on candidate %d: %w", s.expression, i, err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return selection.Result[R]{}, fmt.Errorf("expression %q returned %s, not bool", s.expression, out.Type().TypeName())
		}
		if matched {
			return selection.Selected(s.identity, candidate, rationalef("candidate %d satisfies %s", i, s.expression)), nil
		}
	}
	return selection.NoSelection[R](s.identity, "none of %d candidates satisfies %s", len(candidates), s.expression), nil
}

// compile-time check that Expression implements selection.Selector
var _ selection.Selector[any] = (*Expression[any])(nil)
