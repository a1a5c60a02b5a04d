package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/property"
)

func val(v cty.Value) *cty.Value { return &v }

func lineGroup() *config.GroupDefinition {
	return &config.GroupDefinition{
		Name: "line",
		Attrs: []*config.AttrDefinition{
			{Name: "line_color", Type: property.StringType, Nullable: true, Default: val(cty.StringVal("black"))},
			{Name: "line_width", Type: property.NumberType, Default: val(cty.NumberIntVal(1))},
		},
	}
}

func TestBuild_Linearization(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.RegisterGroup(lineGroup())

	_, err := r.Build(&config.ClassDefinition{
		Name: "base",
		Attrs: []*config.AttrDefinition{
			{Name: "visible", Type: property.BoolType, Default: val(cty.True)},
		},
	})
	require.NoError(t, err)

	// --- Act ---
	c, err := r.Build(&config.ClassDefinition{
		Name:   "shape",
		Parent: "base",
		Includes: []*config.IncludeDefinition{
			{Group: "line"},
		},
		Attrs: []*config.AttrDefinition{
			{Name: "editable", Type: property.BoolType, Default: val(cty.False)},
		},
	})

	// --- Assert ---
	require.NoError(t, err)
	var names []string
	for _, d := range c.Descriptors() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"visible", "line_color", "line_width", "editable"}, names,
		"order must be parent chain, then includes, then direct attributes")
}

func TestBuild_IncludePrefix(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGroup(lineGroup())

	c, err := r.Build(&config.ClassDefinition{
		Name: "box",
		Includes: []*config.IncludeDefinition{
			{Group: "line"},
			{Group: "line", Prefix: "hover"},
		},
	})
	require.NoError(t, err)

	d, ok := c.Descriptor("hover_line_width")
	require.True(t, ok, "prefixed include must bind prefix_name attributes")
	assert.True(t, d.DefaultValue().RawEquals(cty.NumberIntVal(1)),
		"the prefixed copy keeps the group's default")

	_, ok = c.Descriptor("line_width")
	assert.True(t, ok, "the unprefixed include is independent of the prefixed one")
}

func TestBuild_CollisionWithInherited(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Build(&config.ClassDefinition{
		Name: "base",
		Attrs: []*config.AttrDefinition{
			{Name: "location", Type: property.NumberType, Default: val(cty.Zero)},
		},
	})
	require.NoError(t, err)

	_, err = r.Build(&config.ClassDefinition{
		Name:   "child",
		Parent: "base",
		Attrs: []*config.AttrDefinition{
			{Name: "location", Type: property.StringType, Default: val(cty.StringVal("over"))},
		},
	})
	require.Error(t, err, "redeclaring an inherited attribute is a collision, not a shadow")
	assert.ErrorIs(t, err, ErrNameCollision)
}

func TestBuild_DuplicateClass(t *testing.T) {
	t.Parallel()

	r := New()
	def := &config.ClassDefinition{Name: "span"}
	_, err := r.Build(def)
	require.NoError(t, err)

	_, err = r.Build(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameCollision)
}

func TestBuild_UnknownParentAndGroup(t *testing.T) {
	t.Parallel()

	r := New()

	_, err := r.Build(&config.ClassDefinition{Name: "orphan", Parent: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = r.Build(&config.ClassDefinition{
		Name:     "bare",
		Includes: []*config.IncludeDefinition{{Group: "sparkle"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestBuild_OverrideChangesOnlyDefault(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGroup(lineGroup())

	_, err := r.Build(&config.ClassDefinition{
		Name:     "base",
		Includes: []*config.IncludeDefinition{{Group: "line"}},
	})
	require.NoError(t, err)

	c, err := r.Build(&config.ClassDefinition{
		Name:   "muted",
		Parent: "base",
		Overrides: []*config.OverrideDefinition{
			{Name: "line_color", Default: val(cty.StringVal("#cccccc"))},
		},
	})
	require.NoError(t, err)

	d, ok := c.Descriptor("line_color")
	require.True(t, ok)
	assert.True(t, d.DefaultValue().RawEquals(cty.StringVal("#cccccc")))
	assert.Equal(t, property.String, d.Type.Kind, "an override must not change the declared type")

	// The parent keeps its own default.
	base, _ := r.Class("base")
	pd, _ := base.Descriptor("line_color")
	assert.True(t, pd.DefaultValue().RawEquals(cty.StringVal("black")))
}

func TestBuild_OverrideUnknownAttribute(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Build(&config.ClassDefinition{
		Name: "plain",
		Overrides: []*config.OverrideDefinition{
			{Name: "line_color", Default: val(cty.StringVal("red"))},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `override of unknown attribute "line_color"`)
}

func TestBuild_InconsistentDefaultRejected(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Build(&config.ClassDefinition{
		Name: "broken",
		Attrs: []*config.AttrDefinition{
			{Name: "resizable", Type: property.EnumType("all", "none"), Default: val(cty.StringVal("sideways"))},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, property.ErrTypeMismatch)
}

func TestBuild_MissingDefaultRejected(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Build(&config.ClassDefinition{
		Name: "broken",
		Attrs: []*config.AttrDefinition{
			{Name: "gradient", Type: property.NumberType},
		},
	})
	require.Error(t, err, "a non-nullable attribute without a default cannot instantiate")
}

func TestIsA(t *testing.T) {
	t.Parallel()

	r := New()
	base := r.MustBuild(&config.ClassDefinition{Name: "annotation"})
	box := r.MustBuild(&config.ClassDefinition{Name: "box_annotation", Parent: "annotation"})
	span := r.MustBuild(&config.ClassDefinition{Name: "span", Parent: "annotation"})

	assert.True(t, box.IsA(base))
	assert.True(t, box.IsA(box))
	assert.False(t, base.IsA(box))
	assert.False(t, span.IsA(box))
}

func TestRegisterGroup_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGroup(lineGroup())
	assert.Panics(t, func() { r.RegisterGroup(lineGroup()) })
}
