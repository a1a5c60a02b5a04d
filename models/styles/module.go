// Package styles registers the shared scalar style group templates that
// annotation and glyph classes include, plain or under a prefix.
package styles

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/property"
	"github.com/vk/plotmod/internal/registry"
)

// Group template names.
const (
	LineStyle  = "line_style"
	FillStyle  = "fill_style"
	HatchStyle = "hatch_style"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func val(v cty.Value) *cty.Value { return &v }

// Register registers the style group templates.
func (m *Module) Register(r *registry.Registry) error {
	r.RegisterGroup(&config.GroupDefinition{
		Name: LineStyle,
		Attrs: []*config.AttrDefinition{
			{Name: "line_color", Type: property.StringType, Nullable: true,
				Default:     val(cty.StringVal("black")),
				Description: "The line color."},
			{Name: "line_alpha", Type: property.NumberType,
				Default:     val(cty.NumberFloatVal(1.0)),
				Description: "The line alpha."},
			{Name: "line_width", Type: property.NumberType,
				Default:     val(cty.NumberIntVal(1)),
				Description: "The line stroke width in pixel units."},
			{Name: "line_join", Type: property.EnumType("miter", "round", "bevel"),
				Default:     val(cty.StringVal("bevel")),
				Description: "How path segments should be joined together."},
			{Name: "line_cap", Type: property.EnumType("butt", "round", "square"),
				Default:     val(cty.StringVal("butt")),
				Description: "How path segments should be terminated."},
			{Name: "line_dash", Type: property.SeqType(property.NumberType),
				DefaultFn:   func() cty.Value { return cty.EmptyTupleVal },
				Description: "An on/off pattern for dashed lines."},
			{Name: "line_dash_offset", Type: property.NumberType,
				Default:     val(cty.NumberIntVal(0)),
				Description: "The distance into the dash pattern to start from."},
		},
	})

	r.RegisterGroup(&config.GroupDefinition{
		Name: FillStyle,
		Attrs: []*config.AttrDefinition{
			{Name: "fill_color", Type: property.StringType, Nullable: true,
				Default:     val(cty.StringVal("gray")),
				Description: "The fill color."},
			{Name: "fill_alpha", Type: property.NumberType,
				Default:     val(cty.NumberFloatVal(1.0)),
				Description: "The fill alpha."},
		},
	})

	r.RegisterGroup(&config.GroupDefinition{
		Name: HatchStyle,
		Attrs: []*config.AttrDefinition{
			{Name: "hatch_color", Type: property.StringType, Nullable: true,
				Default:     val(cty.StringVal("black")),
				Description: "The hatch color."},
			{Name: "hatch_alpha", Type: property.NumberType,
				Default:     val(cty.NumberFloatVal(1.0)),
				Description: "The hatch alpha."},
			{Name: "hatch_scale", Type: property.NumberType,
				Default:     val(cty.NumberFloatVal(12.0)),
				Description: "The scale of the hatching pattern."},
			{Name: "hatch_pattern", Type: property.StringType, Nullable: true,
				Description: "The hatching pattern name, or null for no hatching."},
			{Name: "hatch_weight", Type: property.NumberType,
				Default:     val(cty.NumberFloatVal(1.0)),
				Description: "The line stroke width of the hatching pattern."},
		},
	})

	return nil
}
