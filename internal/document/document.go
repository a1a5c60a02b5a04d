package document

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/registry"
)

var (
	// ErrUnknownAttribute is returned when a provided value names an
	// attribute that no descriptor of the class resolves.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrConstruction wraps any failure during instantiation; no partial
	// instance is ever added to the document.
	ErrConstruction = errors.New("construction failed")
)

// Event describes one successful attribute assignment on an existing
// instance, delivered synchronously to registered observers.
type Event struct {
	InstanceID string
	Attribute  string
	Old        cty.Value
	New        cty.Value
}

// ChangeFunc receives change events. Observers must not re-enter
// resolution for the same attribute on the same instance; reentrancy is a
// programming error, not a recoverable condition.
type ChangeFunc func(Event)

// Document owns a set of model instances and the references between them.
type Document struct {
	registry  *registry.Registry
	instances map[string]*Instance
	order     []string
	nextID    int
	observers []ChangeFunc
}

// NewDocument creates an empty document backed by the given registry.
func NewDocument(reg *registry.Registry) *Document {
	return &Document{
		registry:  reg,
		instances: make(map[string]*Instance),
		nextID:    1000,
	}
}

// Registry returns the registry the document resolves classes against.
func (d *Document) Registry() *registry.Registry { return d.registry }

// OnChange registers an observer for attribute changes on every instance
// in the document.
func (d *Document) OnChange(fn ChangeFunc) {
	d.observers = append(d.observers, fn)
}

// Instance returns an instance by id.
func (d *Document) Instance(id string) (*Instance, bool) {
	in, ok := d.instances[id]
	return in, ok
}

// Instances returns all instances in construction order.
func (d *Document) Instances() []*Instance {
	out := make([]*Instance, 0, len(d.order))
	for _, id := range d.order {
		if in, ok := d.instances[id]; ok {
			out = append(out, in)
		}
	}
	return out
}

// Remove detaches an instance from the document. Its id is never reused.
// References held by other instances are left in place; they simply stop
// resolving, which serialization reports as an error.
func (d *Document) Remove(id string) bool {
	if _, ok := d.instances[id]; !ok {
		return false
	}
	delete(d.instances, id)
	return true
}

// New constructs an instance of the given class. Every descriptor
// resolvable from the class receives a value: the provided one if present
// (after coercion and validation), otherwise the descriptor's default,
// computed freshly for this instance. Any failure aborts construction
// entirely.
func (d *Document) New(class *registry.Class, values map[string]cty.Value) (*Instance, error) {
	for name := range values {
		if _, ok := class.Descriptor(name); !ok {
			return nil, fmt.Errorf("%w: new %s: %w: %q", ErrConstruction, class.Name(), ErrUnknownAttribute, name)
		}
	}

	resolved := make(map[string]cty.Value, len(class.Descriptors()))
	for _, desc := range class.Descriptors() {
		raw, provided := values[desc.Name]
		if !provided {
			raw = desc.DefaultValue()
		}
		v, err := desc.Resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: new %s: %w", ErrConstruction, class.Name(), err)
		}
		resolved[desc.Name] = v
	}

	in := &Instance{
		doc:    d,
		class:  class,
		id:     d.allocID(),
		values: resolved,
	}
	d.instances[in.id] = in
	d.order = append(d.order, in.id)
	return in, nil
}

func (d *Document) allocID() string {
	id := fmt.Sprintf("p%d", d.nextID)
	d.nextID++
	return id
}

// bumpID advances the id allocator past an externally supplied id, so ids
// loaded from a serialized document are never handed out again.
func (d *Document) bumpID(id string) {
	var n int
	if _, err := fmt.Sscanf(id, "p%d", &n); err == nil && n >= d.nextID {
		d.nextID = n + 1
	}
}

func (d *Document) notify(ev Event) {
	for _, fn := range d.observers {
		fn(ev)
	}
}
