package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/property"
)

// Model is the unified, format-agnostic representation of a set of
// definition files: reusable attribute groups, model classes, and the
// instance graph to construct from them.
type Model struct {
	Groups    map[string]*GroupDefinition
	Classes   []*ClassDefinition
	Instances []*InstanceDefinition
}

// GroupDefinition is a named, immutable bundle of attribute definitions
// shared across model classes, such as the line/fill/hatch style groups.
// Inclusion is expansion-time copying with renaming, not inheritance.
type GroupDefinition struct {
	Name  string
	Attrs []*AttrDefinition
}

// ClassDefinition describes a model class before it is built: a single
// parent, included groups in declared order, direct attributes, and
// default overrides for inherited or included attributes.
type ClassDefinition struct {
	Name      string
	Parent    string
	Includes  []*IncludeDefinition
	Attrs     []*AttrDefinition
	Overrides []*OverrideDefinition
}

// IncludeDefinition names a group template to expand into a class. A
// non-empty prefix renames every contributed attribute to `{prefix}_{attr}`.
type IncludeDefinition struct {
	Group  string
	Prefix string
}

// AttrDefinition defines a single attribute slot. Default carries a static
// default; DefaultFn and Coercions can only be populated by Go-registered
// definitions, since declarative formats have no function values.
type AttrDefinition struct {
	Name        string
	Type        property.Type
	Nullable    bool
	Default     *cty.Value
	DefaultFn   func() cty.Value
	Coercions   []property.Coercion
	Description string
}

// OverrideDefinition replaces the default of an attribute that the class
// already has from its parent chain or an included group. The attribute's
// type and coercions remain in force.
type OverrideDefinition struct {
	Name      string
	Default   *cty.Value
	DefaultFn func() cty.Value
}

// InstanceDefinition is the format-agnostic representation of a `model`
// block: one instance to construct, with its attribute expressions left
// unevaluated until construction time.
type InstanceDefinition struct {
	Class      string
	Name       string
	Attributes map[string]hcl.Expression
}
