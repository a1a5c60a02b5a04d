package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/property"
)

// Evaluator is the HCL-specific implementation of the config.Evaluator
// interface. Attribute expressions see the frame.* symbol variables and,
// when a scope is supplied, a ref(name) function resolving local instance
// names.
type Evaluator struct{}

// NewEvaluator creates a new HCL evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate evaluates a single attribute expression.
func (e *Evaluator) Evaluate(ctx context.Context, expr hcl.Expression, scope *config.Scope) (cty.Value, error) {
	evalCtx := baseEvalContext()
	if scope != nil && scope.Resolve != nil {
		evalCtx.Functions["ref"] = refFunc(scope.Resolve)
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// baseEvalContext is the scope every definition expression sees: the
// frame-edge symbols under the `frame` object.
func baseEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"frame": cty.ObjectVal(map[string]cty.Value{
				"left":   property.FrameLeft,
				"right":  property.FrameRight,
				"top":    property.FrameTop,
				"bottom": property.FrameBottom,
			}),
		},
		Functions: map[string]function.Function{},
	}
}

// refFunc builds the ref(name) function over a local-name resolver.
func refFunc(resolve func(name string) (cty.Value, error)) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			v, err := resolve(args[0].AsString())
			if err != nil {
				return cty.NilVal, fmt.Errorf("ref: %w", err)
			}
			return v, nil
		},
	})
}
