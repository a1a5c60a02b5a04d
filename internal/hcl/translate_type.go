// This file contains the logic for parsing HCL type expressions (e.g.
// `string`, `list(number)`, `enum("a", "b")`) into their corresponding
// property.Type values.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/ctxlog"
	"github.com/vk/plotmod/internal/property"
)

// typeExprToPropertyType converts an HCL type expression into its semantic
// property.Type equivalent.
func typeExprToPropertyType(ctx context.Context, expr hcl.Expression) (property.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return property.Type{}, fmt.Errorf("missing type expression")
	}

	// A type switch over the concrete expression types that implement
	// hcl.Expression.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a constructor call.", "call", v.Name)
		switch v.Name {
		case "list":
			if len(v.Args) != 1 {
				return property.Type{}, fmt.Errorf("list(...) requires exactly one argument, got %d", len(v.Args))
			}
			elem, err := typeExprToPropertyType(ctx, v.Args[0])
			if err != nil {
				return property.Type{}, err
			}
			return property.SeqType(elem), nil
		case "enum":
			if len(v.Args) == 0 {
				return property.Type{}, fmt.Errorf("enum(...) requires at least one value")
			}
			values := make([]string, 0, len(v.Args))
			for _, arg := range v.Args {
				val, diags := arg.Value(nil)
				if diags.HasErrors() || !val.Type().Equals(cty.String) {
					return property.Type{}, fmt.Errorf("enum values must be string literals")
				}
				values = append(values, val.AsString())
			}
			return property.EnumType(values...), nil
		default:
			return property.Type{}, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		// Primitive type keywords such as `string` or `coordinate`.
		if len(v.Traversal) != 1 {
			return property.Type{}, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a primitive.", "keyword", rootName)
		switch rootName {
		case "bool":
			return property.BoolType, nil
		case "number":
			return property.NumberType, nil
		case "string":
			return property.StringType, nil
		case "coordinate":
			return property.CoordinateType, nil
		case "ref":
			return property.RefType, nil
		default:
			return property.Type{}, fmt.Errorf("unknown primitive type %q", rootName)
		}

	default:
		return property.Type{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
