package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/property"
)

var (
	// ErrCyclicReference is returned when the instance graph reachable
	// from the serialization roots contains a cycle. The document wire
	// format is acyclic-only.
	ErrCyclicReference = errors.New("cyclic reference unsupported")
	// ErrDeserialization wraps any failure while reading a serialized
	// document.
	ErrDeserialization = errors.New("deserialization failed")
)

const wireVersion = 1

type docWire struct {
	Version   int        `json:"version"`
	Roots     []string   `json:"roots"`
	Instances []instWire `json:"instances"`
}

type instWire struct {
	ID         string                     `json:"id"`
	Class      string                     `json:"class"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// Serialize emits the flat document form of the instance graph reachable
// from the given roots. Each instance is emitted exactly once, identified
// by id; every later occurrence is a {"ref": id} token inside some
// attribute value. An empty root set serializes to an empty document.
func (d *Document) Serialize(roots ...*Instance) ([]byte, error) {
	w := &walker{
		doc:   d,
		state: make(map[string]int),
	}
	out := docWire{Version: wireVersion, Roots: []string{}, Instances: []instWire{}}
	for _, root := range roots {
		out.Roots = append(out.Roots, root.ID())
		if err := w.visit(root, &out); err != nil {
			return nil, err
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

const (
	visiting = 1
	done     = 2
)

type walker struct {
	doc   *Document
	state map[string]int
}

func (w *walker) visit(in *Instance, out *docWire) error {
	switch w.state[in.id] {
	case done:
		return nil
	case visiting:
		return fmt.Errorf("%w: instance %s (%s) reaches itself", ErrCyclicReference, in.id, in.class.Name())
	}
	w.state[in.id] = visiting

	attrs := make(map[string]json.RawMessage, len(in.values))
	for _, desc := range in.class.Descriptors() {
		v := in.values[desc.Name]
		if err := w.visitRefs(v, out); err != nil {
			return fmt.Errorf("instance %s, attribute %q: %w", in.id, desc.Name, err)
		}
		raw, err := EncodeValue(v)
		if err != nil {
			return fmt.Errorf("instance %s, attribute %q: %w", in.id, desc.Name, err)
		}
		attrs[desc.Name] = raw
	}

	w.state[in.id] = done
	out.Instances = append(out.Instances, instWire{
		ID:         in.id,
		Class:      in.class.Name(),
		Attributes: attrs,
	})
	return nil
}

// visitRefs descends into a value, following reference capsules into their
// target instances so the whole reachable graph gets emitted.
func (w *walker) visitRefs(v cty.Value, out *docWire) error {
	if v == cty.NilVal || v.IsNull() {
		return nil
	}
	if id, ok := property.RefID(v); ok {
		target, ok := w.doc.instances[id]
		if !ok {
			return fmt.Errorf("dangling reference to %s", id)
		}
		return w.visit(target, out)
	}
	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if err := w.visitRefs(ev, out); err != nil {
				return err
			}
		}
	}
	return nil
}
