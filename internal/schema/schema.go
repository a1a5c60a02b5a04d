// Package schema defines the HCL wire structures for definition files:
// group templates, class definitions, and model (instance) blocks. The
// structures here mirror the file format only; the hcl package translates
// them into the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// AttrBlock defines a single attribute slot inside a group or class.
type AttrBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Default     hcl.Expression `hcl:"default,optional"`
	Nullable    bool           `hcl:"nullable,optional"`
	Description string         `hcl:"description,optional"`
}

// IncludeBlock expands a group template into a class, optionally renaming
// every contributed attribute under a prefix.
type IncludeBlock struct {
	Group  string `hcl:"group_name,label"`
	Prefix string `hcl:"prefix,optional"`
}

// OverrideBlock replaces the default of an attribute the class already has
// from its parent chain or an included group.
type OverrideBlock struct {
	Name    string         `hcl:"attr_name,label"`
	Default hcl.Expression `hcl:"default"`
}

// GroupBlock represents a reusable `group` template definition.
type GroupBlock struct {
	Name  string       `hcl:"name,label"`
	Attrs []*AttrBlock `hcl:"attr,block"`
}

// ClassBlock represents a `class` definition.
type ClassBlock struct {
	Name      string           `hcl:"name,label"`
	Parent    string           `hcl:"parent,optional"`
	Includes  []*IncludeBlock  `hcl:"include,block"`
	Attrs     []*AttrBlock     `hcl:"attr,block"`
	Overrides []*OverrideBlock `hcl:"override,block"`
}

// AttributesBlock holds the raw attribute assignments of a model block.
type AttributesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ModelBlock represents a `model` block: one instance of a class to
// construct, with a local name other blocks can reference via ref().
type ModelBlock struct {
	Class      string           `hcl:"class_name,label"`
	Name       string           `hcl:"instance_name,label"`
	Attributes *AttributesBlock `hcl:"attributes,block"`
}

// DefinitionConfig represents the top-level structure of a definition file.
type DefinitionConfig struct {
	Groups  []*GroupBlock `hcl:"group,block"`
	Classes []*ClassBlock `hcl:"class,block"`
	Models  []*ModelBlock `hcl:"model,block"`
	Body    hcl.Body      `hcl:",remain"`
}
