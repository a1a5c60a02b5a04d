package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific definition loader.
type Loader interface {
	// Load reads definitions from the given paths, translates them into
	// the format-agnostic model, and returns a matching Evaluator.
	Load(ctx context.Context, paths ...string) (*Model, Evaluator, error)
}

// Scope supplies the names visible to an instance's attribute expressions.
type Scope struct {
	// Resolve maps a local instance name to its value, typically a
	// reference capsule for an already-constructed instance.
	Resolve func(name string) (cty.Value, error)
}

// Evaluator is the interface for format-specific expression evaluation. It
// is the bridge between raw attribute expressions held in the model and the
// cty values the document layer stores.
type Evaluator interface {
	Evaluate(ctx context.Context, expr hcl.Expression, scope *Scope) (cty.Value, error)
}
