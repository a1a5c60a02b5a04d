// This file contains the logic for translating HCL schema structs into the
// format-agnostic definition model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/schema"
)

// translateAttr processes a single attr block, handling its type
// expression and default value. Default expressions evaluate against the
// base scope, so frame.* symbols are usable as defaults.
func (l *Loader) translateAttr(ctx context.Context, in *schema.AttrBlock, ownerKind, ownerName string) (*config.AttrDefinition, error) {
	parsedType, err := typeExprToPropertyType(ctx, in.Type)
	if err != nil {
		return nil, fmt.Errorf("in %s %q, attr %q: %w", ownerKind, ownerName, in.Name, err)
	}

	var defaultVal *cty.Value
	if in.Default != nil {
		val, diags := in.Default.Value(baseEvalContext())
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default for attr %q in %s %q: %w", in.Name, ownerKind, ownerName, diags)
		}
		if !val.IsNull() {
			defaultVal = &val
		}
	}
	if defaultVal == nil && !in.Nullable {
		return nil, fmt.Errorf("attr %q in %s %q needs a default or nullable = true", in.Name, ownerKind, ownerName)
	}

	return &config.AttrDefinition{
		Name:        in.Name,
		Type:        parsedType,
		Nullable:    in.Nullable,
		Default:     defaultVal,
		Description: in.Description,
	}, nil
}

func (l *Loader) translateGroup(ctx context.Context, in *schema.GroupBlock) (*config.GroupDefinition, error) {
	g := &config.GroupDefinition{Name: in.Name}
	for _, a := range in.Attrs {
		attr, err := l.translateAttr(ctx, a, "group", in.Name)
		if err != nil {
			return nil, err
		}
		g.Attrs = append(g.Attrs, attr)
	}
	return g, nil
}

func (l *Loader) translateClass(ctx context.Context, in *schema.ClassBlock) (*config.ClassDefinition, error) {
	c := &config.ClassDefinition{
		Name:   in.Name,
		Parent: in.Parent,
	}
	for _, inc := range in.Includes {
		c.Includes = append(c.Includes, &config.IncludeDefinition{
			Group:  inc.Group,
			Prefix: inc.Prefix,
		})
	}
	for _, a := range in.Attrs {
		attr, err := l.translateAttr(ctx, a, "class", in.Name)
		if err != nil {
			return nil, err
		}
		c.Attrs = append(c.Attrs, attr)
	}
	for _, o := range in.Overrides {
		val, diags := o.Default.Value(baseEvalContext())
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid override default for %q in class %q: %w", o.Name, in.Name, diags)
		}
		ov := &config.OverrideDefinition{Name: o.Name}
		if !val.IsNull() {
			ov.Default = &val
		}
		c.Overrides = append(c.Overrides, ov)
	}
	return c, nil
}
