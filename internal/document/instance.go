package document

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/registry"
)

// Instance is a constructed model object: concrete values for every
// descriptor resolvable from its class, identified by a document-unique id.
type Instance struct {
	doc    *Document
	class  *registry.Class
	id     string
	values map[string]cty.Value
}

// ID returns the instance's document-unique id.
func (in *Instance) ID() string { return in.id }

// Class returns the model class the instance conforms to.
func (in *Instance) Class() *registry.Class { return in.class }

// Get returns the current value of an attribute.
func (in *Instance) Get(name string) (cty.Value, error) {
	v, ok := in.values[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("%s: %w: %q", in.class.Name(), ErrUnknownAttribute, name)
	}
	return v, nil
}

// Set assigns an attribute. The raw value runs through the descriptor's
// coercions and validation first; only a fully resolved value is stored,
// so a failed assignment leaves the instance untouched. On success every
// registered observer is notified synchronously, before Set returns.
func (in *Instance) Set(name string, raw cty.Value) error {
	desc, ok := in.class.Descriptor(name)
	if !ok {
		return fmt.Errorf("%s: %w: %q", in.class.Name(), ErrUnknownAttribute, name)
	}
	v, err := desc.Resolve(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", in.class.Name(), err)
	}
	old := in.values[name]
	in.values[name] = v
	in.doc.notify(Event{
		InstanceID: in.id,
		Attribute:  name,
		Old:        old,
		New:        v,
	})
	return nil
}
