package property

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Kind is the semantic tag of a descriptor's declared type.
type Kind int

const (
	// Bool accepts boolean values, with cty's usual conversions.
	Bool Kind = iota
	// Number accepts numeric values, with cty's usual conversions.
	Number
	// String accepts string values only. No implicit conversion from
	// numbers or booleans; a plot color of 5 is a bug, not a string.
	String
	// Enum accepts one of a fixed set of string values.
	Enum
	// Seq accepts a sequence whose elements validate against Elem.
	Seq
	// Coordinate accepts a number, a categorical factor string, a
	// reference to another instance, or a frame-edge symbol.
	Coordinate
	// Ref accepts only a reference to another instance.
	Ref
)

// Type is the declared type of a descriptor: a kind plus kind-specific
// detail (enum values, sequence element type).
type Type struct {
	Kind       Kind
	EnumValues []string
	Elem       *Type
}

var (
	BoolType       = Type{Kind: Bool}
	NumberType     = Type{Kind: Number}
	StringType     = Type{Kind: String}
	CoordinateType = Type{Kind: Coordinate}
	RefType        = Type{Kind: Ref}
)

// EnumType declares an enum over the given values.
func EnumType(values ...string) Type {
	return Type{Kind: Enum, EnumValues: values}
}

// SeqType declares a sequence of the given element type.
func SeqType(elem Type) Type {
	return Type{Kind: Seq, Elem: &elem}
}

// String returns the friendly name of the type, as used in error messages
// and definition files.
func (t Type) String() string {
	switch t.Kind {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Enum:
		return fmt.Sprintf("enum(%s)", strings.Join(t.EnumValues, ", "))
	case Seq:
		return fmt.Sprintf("list(%s)", t.Elem)
	case Coordinate:
		return "coordinate"
	case Ref:
		return "ref"
	default:
		return fmt.Sprintf("unknown(%d)", t.Kind)
	}
}

// Validate checks a non-null value against the type and returns its
// normalized form. Scalar kinds use cty conversion, so e.g. "3" is accepted
// where a number is required, exactly as far as cty's convert rules allow.
func (t Type) Validate(v cty.Value) (cty.Value, error) {
	switch t.Kind {
	case Bool:
		return t.convertPrimitive(v, cty.Bool)
	case Number:
		return t.convertPrimitive(v, cty.Number)
	case String:
		if !v.Type().Equals(cty.String) {
			return cty.NilVal, t.mismatch(v)
		}
		return v, nil
	case Enum:
		if !v.Type().Equals(cty.String) {
			return cty.NilVal, t.mismatch(v)
		}
		if !slices.Contains(t.EnumValues, v.AsString()) {
			return cty.NilVal, fmt.Errorf("%w: %q is not one of %s",
				ErrTypeMismatch, v.AsString(), t)
		}
		return v, nil
	case Seq:
		return t.validateSeq(v)
	case Coordinate:
		if IsRef(v) || IsSymbol(v) {
			return v, nil
		}
		if v.Type().Equals(cty.String) {
			// Categorical factor.
			return v, nil
		}
		return t.convertPrimitive(v, cty.Number)
	case Ref:
		if !IsRef(v) {
			return cty.NilVal, t.mismatch(v)
		}
		return v, nil
	default:
		return cty.NilVal, fmt.Errorf("%w: unknown kind %d", ErrTypeMismatch, t.Kind)
	}
}

func (t Type) validateSeq(v cty.Value) (cty.Value, error) {
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return cty.NilVal, t.mismatch(v)
	}
	elems := make([]cty.Value, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		out, err := t.Elem.Validate(ev)
		if err != nil {
			return cty.NilVal, fmt.Errorf("element %d: %w", len(elems), err)
		}
		elems = append(elems, out)
	}
	if len(elems) == 0 {
		return cty.EmptyTupleVal, nil
	}
	// Tuples rather than lists: coordinate sequences legitimately mix
	// numbers, factors and references.
	return cty.TupleVal(elems), nil
}

func (t Type) convertPrimitive(v cty.Value, want cty.Type) (cty.Value, error) {
	if IsRef(v) || IsSymbol(v) {
		return cty.NilVal, t.mismatch(v)
	}
	out, err := convert.Convert(v, want)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: cannot use %s as %s",
			ErrTypeMismatch, v.Type().FriendlyName(), t)
	}
	return out, nil
}

func (t Type) mismatch(v cty.Value) error {
	return fmt.Errorf("%w: cannot use %s as %s",
		ErrTypeMismatch, v.Type().FriendlyName(), t)
}
