package property

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Reference is the payload of a reference capsule value. It points at
// another instance by document id; the relation is non-owning and is
// resolved by the enclosing document.
type Reference struct {
	ID string
}

// Symbol is the payload of a symbol capsule value: a named placeholder the
// rendering layer resolves at draw time, such as a frame edge.
type Symbol struct {
	Name string
}

var refCapsule = cty.CapsuleWithOps("reference", reflect.TypeOf(Reference{}), &cty.CapsuleOps{
	RawEquals: func(a, b interface{}) bool {
		return a.(*Reference).ID == b.(*Reference).ID
	},
	GoString: func(v interface{}) string {
		return fmt.Sprintf("property.RefVal(%q)", v.(*Reference).ID)
	},
})

var symbolCapsule = cty.CapsuleWithOps("symbol", reflect.TypeOf(Symbol{}), &cty.CapsuleOps{
	RawEquals: func(a, b interface{}) bool {
		return a.(*Symbol).Name == b.(*Symbol).Name
	},
	GoString: func(v interface{}) string {
		return fmt.Sprintf("property.SymbolVal(%q)", v.(*Symbol).Name)
	},
})

// RefVal wraps an instance id in a reference capsule value.
func RefVal(id string) cty.Value {
	return cty.CapsuleVal(refCapsule, &Reference{ID: id})
}

// IsRef reports whether v is a reference capsule value.
func IsRef(v cty.Value) bool {
	return !v.IsNull() && v.Type().Equals(refCapsule)
}

// RefID unwraps a reference value, returning the referenced instance id.
func RefID(v cty.Value) (string, bool) {
	if !IsRef(v) {
		return "", false
	}
	return v.EncapsulatedValue().(*Reference).ID, true
}

// SymbolVal wraps a placeholder name in a symbol capsule value.
func SymbolVal(name string) cty.Value {
	return cty.CapsuleVal(symbolCapsule, &Symbol{Name: name})
}

// IsSymbol reports whether v is a symbol capsule value.
func IsSymbol(v cty.Value) bool {
	return !v.IsNull() && v.Type().Equals(symbolCapsule)
}

// SymbolName unwraps a symbol value, returning the placeholder name.
func SymbolName(v cty.Value) (string, bool) {
	if !IsSymbol(v) {
		return "", false
	}
	return v.EncapsulatedValue().(*Symbol).Name, true
}

// Frame-edge symbols used as coordinate defaults by the builtin annotation
// models. The rendering layer substitutes the current frame extent.
var (
	FrameLeft   = SymbolVal("frame.left")
	FrameRight  = SymbolVal("frame.right")
	FrameTop    = SymbolVal("frame.top")
	FrameBottom = SymbolVal("frame.bottom")
)
