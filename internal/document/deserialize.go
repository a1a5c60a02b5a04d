package document

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/property"
	"github.com/vk/plotmod/internal/registry"
)

// Deserialize reads a serialized document back into a live one, resolving
// classes against the given registry. It runs in two passes: first every
// instance is materialized with its decoded attribute values, then all
// reference tokens are checked against the materialized set, so forward
// references inside the document are permitted.
//
// Returned alongside the document are the root instances, in the order
// the document listed them.
func Deserialize(reg *registry.Registry, data []byte) (*Document, []*Instance, error) {
	var wire docWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	if wire.Version != wireVersion {
		return nil, nil, fmt.Errorf("%w: unsupported document version %d", ErrDeserialization, wire.Version)
	}

	doc := NewDocument(reg)

	// Pass 1: allocate. Values decode without reference resolution; each
	// one re-runs the owning descriptor's coercion and validation.
	for _, iw := range wire.Instances {
		class, ok := reg.Class(iw.Class)
		if !ok {
			return nil, nil, fmt.Errorf("%w: instance %s: %w: %q", ErrDeserialization, iw.ID, registry.ErrUnknownClass, iw.Class)
		}
		values := make(map[string]cty.Value, len(iw.Attributes))
		for name, raw := range iw.Attributes {
			desc, ok := class.Descriptor(name)
			if !ok {
				return nil, nil, fmt.Errorf("%w: instance %s: %w: %q", ErrDeserialization, iw.ID, ErrUnknownAttribute, name)
			}
			decoded, err := DecodeValue(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: instance %s, attribute %q: %w", ErrDeserialization, iw.ID, name, err)
			}
			v, err := desc.Resolve(decoded)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: instance %s: %w", ErrDeserialization, iw.ID, err)
			}
			values[name] = v
		}
		// A document written by an older definition set may omit
		// attributes added since; those take their defaults.
		for _, desc := range class.Descriptors() {
			if _, ok := values[desc.Name]; ok {
				continue
			}
			v, err := desc.Resolve(desc.DefaultValue())
			if err != nil {
				return nil, nil, fmt.Errorf("%w: instance %s: %w", ErrDeserialization, iw.ID, err)
			}
			values[desc.Name] = v
		}
		if _, exists := doc.instances[iw.ID]; exists {
			return nil, nil, fmt.Errorf("%w: duplicate instance id %s", ErrDeserialization, iw.ID)
		}
		in := &Instance{doc: doc, class: class, id: iw.ID, values: values}
		doc.instances[iw.ID] = in
		doc.order = append(doc.order, iw.ID)
		doc.bumpID(iw.ID)
	}

	// Pass 2: link. Every reference token must resolve within the
	// document.
	for _, in := range doc.Instances() {
		for name, v := range in.values {
			if err := checkRefs(doc, v); err != nil {
				return nil, nil, fmt.Errorf("%w: instance %s, attribute %q: %w", ErrDeserialization, in.id, name, err)
			}
		}
	}

	roots := make([]*Instance, 0, len(wire.Roots))
	for _, id := range wire.Roots {
		in, ok := doc.instances[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: root %s not present in document", ErrDeserialization, id)
		}
		roots = append(roots, in)
	}
	return doc, roots, nil
}

func checkRefs(doc *Document, v cty.Value) error {
	if v == cty.NilVal || v.IsNull() {
		return nil
	}
	if id, ok := property.RefID(v); ok {
		if _, ok := doc.instances[id]; !ok {
			return fmt.Errorf("reference to unknown instance %s", id)
		}
		return nil
	}
	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if err := checkRefs(doc, ev); err != nil {
				return err
			}
		}
	}
	return nil
}
