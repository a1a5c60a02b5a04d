// Package annotations registers the builtin annotation model classes:
// shaded regions, spans, and slopes rendered over a plot's frame.
package annotations

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/property"
	"github.com/vk/plotmod/internal/registry"
	"github.com/vk/plotmod/models/styles"
)

// CoordinateUnits and Dimension enum values.
var (
	coordinateUnits = property.EnumType("canvas", "screen", "data")
	dimension       = property.EnumType("width", "height")
)

// Module implements the registry.Module interface for this package. It
// depends on the style groups from models/styles being registered first.
type Module struct{}

func val(v cty.Value) *cty.Value { return &v }

// Register builds the annotation classes.
func (m *Module) Register(r *registry.Registry) error {
	if _, err := r.Build(annotation()); err != nil {
		return err
	}
	for _, def := range []*config.ClassDefinition{
		boxAnnotation(), polyAnnotation(), slope(), span(),
	} {
		if _, err := r.Build(def); err != nil {
			return err
		}
	}
	return nil
}

// annotation is the shared base class for all annotation models.
func annotation() *config.ClassDefinition {
	return &config.ClassDefinition{
		Name: "Annotation",
		Attrs: []*config.AttrDefinition{
			{Name: "visible", Type: property.BoolType,
				Default:     val(cty.True),
				Description: "Whether the annotation is rendered."},
		},
	}
}

// edge declares one box edge: a coordinate defaulting to a frame edge,
// with an explicit null coerced back to that frame edge.
func edge(name string, sym cty.Value, help string) *config.AttrDefinition {
	return &config.AttrDefinition{
		Name:        name,
		Type:        property.CoordinateType,
		Default:     val(sym),
		Coercions:   []property.Coercion{property.NullTo(sym)},
		Description: help,
	}
}

func units(name, of string) *config.AttrDefinition {
	return &config.AttrDefinition{
		Name:        name,
		Type:        coordinateUnits,
		Default:     val(cty.StringVal("data")),
		Description: "The unit type for the " + of + " attribute. Interpreted as data units by default.",
	}
}

func limit(name string) *config.AttrDefinition {
	return &config.AttrDefinition{
		Name:        name,
		Type:        property.CoordinateType,
		Nullable:    true,
		Description: "Optional " + name[:len(name)-len("_limit")] + " limit for box movement.",
	}
}

func boxAnnotation() *config.ClassDefinition {
	return &config.ClassDefinition{
		Name:   "BoxAnnotation",
		Parent: "Annotation",
		Includes: []*config.IncludeDefinition{
			{Group: styles.LineStyle},
			{Group: styles.FillStyle},
			{Group: styles.HatchStyle},
			{Group: styles.LineStyle, Prefix: "hover"},
			{Group: styles.FillStyle, Prefix: "hover"},
			{Group: styles.HatchStyle, Prefix: "hover"},
		},
		Attrs: []*config.AttrDefinition{
			edge("left", property.FrameLeft, "The x-coordinates of the left edge of the box annotation."),
			edge("right", property.FrameRight, "The x-coordinates of the right edge of the box annotation."),
			edge("top", property.FrameTop, "The y-coordinates of the top edge of the box annotation."),
			edge("bottom", property.FrameBottom, "The y-coordinates of the bottom edge of the box annotation."),
			units("left_units", "left"),
			units("right_units", "right"),
			units("top_units", "top"),
			units("bottom_units", "bottom"),
			limit("left_limit"),
			limit("right_limit"),
			limit("top_limit"),
			limit("bottom_limit"),
			{Name: "border_radius", Type: property.NumberType,
				Default:     val(cty.NumberIntVal(0)),
				Description: "Allows the box to have rounded corners."},
			{Name: "editable", Type: property.BoolType,
				Default:     val(cty.False),
				Description: "Allows to interactively modify the geometry of this box."},
			{Name: "resizable", Type: property.EnumType("none", "left", "right", "top", "bottom", "x", "y", "all"),
				Default:     val(cty.StringVal("all")),
				Description: "Which combinations of edges are allowed to be moved when editable."},
			{Name: "movable", Type: property.EnumType("none", "x", "y", "both"),
				Default:     val(cty.StringVal("both")),
				Description: "In which directions the box can be moved when editable."},
			{Name: "symmetric", Type: property.BoolType,
				Default:     val(cty.False),
				Description: "Whether the box resizes around its center or its corners."},
		},
		Overrides: []*config.OverrideDefinition{
			{Name: "line_color", Default: val(cty.StringVal("#cccccc"))},
			{Name: "line_alpha", Default: val(cty.NumberFloatVal(0.3))},
			{Name: "fill_color", Default: val(cty.StringVal("#fff9ba"))},
			{Name: "fill_alpha", Default: val(cty.NumberFloatVal(0.4))},
			{Name: "hover_line_color", Default: nil},
			{Name: "hover_line_alpha", Default: val(cty.NumberFloatVal(0.3))},
			{Name: "hover_fill_color", Default: nil},
			{Name: "hover_fill_alpha", Default: val(cty.NumberFloatVal(0.4))},
		},
	}
}

func polyAnnotation() *config.ClassDefinition {
	coords := func(name, axis string) *config.AttrDefinition {
		return &config.AttrDefinition{
			Name:        name,
			Type:        property.SeqType(property.CoordinateType),
			DefaultFn:   func() cty.Value { return cty.EmptyTupleVal },
			Description: "The " + axis + "-coordinates of the region to draw.",
		}
	}
	return &config.ClassDefinition{
		Name:   "PolyAnnotation",
		Parent: "Annotation",
		Includes: []*config.IncludeDefinition{
			{Group: styles.LineStyle},
			{Group: styles.FillStyle},
			{Group: styles.HatchStyle},
			{Group: styles.LineStyle, Prefix: "hover"},
			{Group: styles.FillStyle, Prefix: "hover"},
			{Group: styles.HatchStyle, Prefix: "hover"},
		},
		Attrs: []*config.AttrDefinition{
			coords("xs", "x"),
			coords("ys", "y"),
			units("xs_units", "xs"),
			units("ys_units", "ys"),
			{Name: "editable", Type: property.BoolType,
				Default:     val(cty.False),
				Description: "Allows to interactively modify the geometry of this polygon."},
		},
		Overrides: []*config.OverrideDefinition{
			{Name: "line_color", Default: val(cty.StringVal("#cccccc"))},
			{Name: "line_alpha", Default: val(cty.NumberFloatVal(0.3))},
			{Name: "fill_color", Default: val(cty.StringVal("#fff9ba"))},
			{Name: "fill_alpha", Default: val(cty.NumberFloatVal(0.4))},
			{Name: "hover_line_color", Default: nil},
			{Name: "hover_line_alpha", Default: val(cty.NumberFloatVal(0.3))},
			{Name: "hover_fill_color", Default: nil},
			{Name: "hover_fill_alpha", Default: val(cty.NumberFloatVal(0.4))},
		},
	}
}

func slope() *config.ClassDefinition {
	return &config.ClassDefinition{
		Name:   "Slope",
		Parent: "Annotation",
		Includes: []*config.IncludeDefinition{
			{Group: styles.LineStyle},
			{Group: styles.FillStyle, Prefix: "above"},
			{Group: styles.HatchStyle, Prefix: "above"},
			{Group: styles.FillStyle, Prefix: "below"},
			{Group: styles.HatchStyle, Prefix: "below"},
		},
		Attrs: []*config.AttrDefinition{
			{Name: "gradient", Type: property.NumberType, Nullable: true,
				Description: "The gradient of the line, in data units."},
			{Name: "y_intercept", Type: property.NumberType, Nullable: true,
				Description: "The y intercept of the line, in data units."},
		},
		Overrides: []*config.OverrideDefinition{
			{Name: "above_fill_color", Default: nil},
			{Name: "above_fill_alpha", Default: val(cty.NumberFloatVal(0.4))},
			{Name: "below_fill_color", Default: nil},
			{Name: "below_fill_alpha", Default: val(cty.NumberFloatVal(0.4))},
		},
	}
}

func span() *config.ClassDefinition {
	return &config.ClassDefinition{
		Name:   "Span",
		Parent: "Annotation",
		Includes: []*config.IncludeDefinition{
			{Group: styles.LineStyle},
			{Group: styles.LineStyle, Prefix: "hover"},
		},
		Attrs: []*config.AttrDefinition{
			{Name: "location", Type: property.CoordinateType, Nullable: true,
				Description: "The location of the span, along dimension."},
			units("location_units", "location"),
			{Name: "dimension", Type: dimension,
				Default:     val(cty.StringVal("width")),
				Description: "The direction of the span: height (y direction) or width (x direction)."},
			{Name: "editable", Type: property.BoolType,
				Default:     val(cty.False),
				Description: "Allows to interactively modify the geometry of this span."},
		},
		Overrides: []*config.OverrideDefinition{
			{Name: "hover_line_color", Default: nil},
			{Name: "hover_line_alpha", Default: val(cty.NumberFloatVal(0.3))},
		},
	}
}
