package property

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ErrTypeMismatch is returned when a value, after coercion, does not
// satisfy a descriptor's declared type.
var ErrTypeMismatch = errors.New("type mismatch")

// Coercion rewrites an incoming raw value before type validation. Coercions
// are tried in declared order; the first whose Match accepts the value has
// its Produce result validated in place of the original.
type Coercion struct {
	Match   func(cty.Value) bool
	Produce func(cty.Value) cty.Value
}

// NullTo is a coercion that replaces an explicit null with the given value.
// The builtin box annotation uses it to turn cleared edges back into frame
// edges.
func NullTo(replacement cty.Value) Coercion {
	return Coercion{
		Match:   func(v cty.Value) bool { return v.IsNull() },
		Produce: func(cty.Value) cty.Value { return replacement },
	}
}

// Descriptor defines a single named, typed attribute slot on a model class.
type Descriptor struct {
	Name     string
	Type     Type
	Nullable bool

	// Default is the static default value. DefaultFn, when set, takes
	// precedence and is invoked freshly for every instantiation so that
	// no mutable default state is shared between instances.
	Default   cty.Value
	DefaultFn func() cty.Value

	Coercions []Coercion
	Help      string
}

// DefaultValue computes the descriptor's default for a new instance.
func (d *Descriptor) DefaultValue() cty.Value {
	if d.DefaultFn != nil {
		return d.DefaultFn()
	}
	if d.Default == cty.NilVal {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	return d.Default
}

// Resolve runs a raw value through the descriptor's coercions and type
// validation, returning the value to store. A failure means the triggering
// assignment or construction must be aborted; no partial state is kept.
func (d *Descriptor) Resolve(raw cty.Value) (cty.Value, error) {
	v := raw
	if v == cty.NilVal {
		v = cty.NullVal(cty.DynamicPseudoType)
	}
	for _, c := range d.Coercions {
		if c.Match(v) {
			v = c.Produce(v)
			break
		}
	}
	if v.IsNull() {
		if d.Nullable {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return cty.NilVal, fmt.Errorf("attribute %q: %w: null is not allowed", d.Name, ErrTypeMismatch)
	}
	out, err := d.Type.Validate(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("attribute %q: %w", d.Name, err)
	}
	return out, nil
}
