package document

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/plotmod/internal/property"
)

// Wire shapes for the two capsule kinds. Everything else is a plain JSON
// scalar or array handled by cty/json.
type refToken struct {
	Ref string `json:"ref"`
}

type symbolToken struct {
	Symbol string `json:"symbol"`
}

// EncodeValue renders an attribute value into its wire form: null for a
// null, {"ref": id} for references, {"symbol": name} for frame-edge
// placeholders, a JSON array for sequences, and a bare scalar otherwise.
func EncodeValue(v cty.Value) (json.RawMessage, error) {
	switch {
	case v == cty.NilVal || v.IsNull():
		return json.RawMessage("null"), nil
	case property.IsRef(v):
		id, _ := property.RefID(v)
		return json.Marshal(refToken{Ref: id})
	case property.IsSymbol(v):
		name, _ := property.SymbolName(v)
		return json.Marshal(symbolToken{Symbol: name})
	case v.Type().IsTupleType() || v.Type().IsListType() || v.Type().IsSetType():
		elems := make([]json.RawMessage, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			raw, err := EncodeValue(ev)
			if err != nil {
				return nil, err
			}
			elems = append(elems, raw)
		}
		return json.Marshal(elems)
	default:
		raw, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return nil, fmt.Errorf("encoding %s value: %w", v.Type().FriendlyName(), err)
		}
		return raw, nil
	}
}

// DecodeValue parses a wire value back into a cty value. Decoding is
// type-agnostic; the caller re-resolves the result against the owning
// descriptor, which restores validation.
func DecodeValue(raw json.RawMessage) (cty.Value, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	switch raw[0] {
	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(raw, &keys); err != nil {
			return cty.NilVal, fmt.Errorf("malformed value object: %w", err)
		}
		if id, ok := keys["ref"]; ok && len(keys) == 1 {
			var s string
			if err := json.Unmarshal(id, &s); err != nil {
				return cty.NilVal, fmt.Errorf("malformed ref token: %w", err)
			}
			return property.RefVal(s), nil
		}
		if name, ok := keys["symbol"]; ok && len(keys) == 1 {
			var s string
			if err := json.Unmarshal(name, &s); err != nil {
				return cty.NilVal, fmt.Errorf("malformed symbol token: %w", err)
			}
			return property.SymbolVal(s), nil
		}
		return cty.NilVal, fmt.Errorf("unrecognized value object %s", string(raw))
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return cty.NilVal, fmt.Errorf("malformed value array: %w", err)
		}
		if len(elems) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(elems))
		for i, e := range elems {
			v, err := DecodeValue(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			vals[i] = v
		}
		return cty.TupleVal(vals), nil
	default:
		ty, err := ctyjson.ImpliedType(raw)
		if err != nil {
			return cty.NilVal, fmt.Errorf("unrecognized scalar %s: %w", string(raw), err)
		}
		v, err := ctyjson.Unmarshal(raw, ty)
		if err != nil {
			return cty.NilVal, err
		}
		return v, nil
	}
}
