package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/plotmod/internal/config"
)

var (
	// ErrNameCollision is returned when two sources would bind the same
	// resolved attribute name, or when a class name is registered twice.
	ErrNameCollision = errors.New("name collision")
	// ErrUnknownGroup is returned when a class includes a group template
	// that is not registered.
	ErrUnknownGroup = errors.New("unknown group")
	// ErrUnknownClass is returned when a parent class is not registered.
	ErrUnknownClass = errors.New("unknown class")
)

// Module is the interface that builtin model packages implement to be
// registered.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the registered group templates and built model classes
// for a single application instance. It is populated at load time and
// read-only thereafter.
type Registry struct {
	groups     map[string]*config.GroupDefinition
	groupOrder []string
	classes    map[string]*Class
	classOrder []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		groups:  make(map[string]*config.GroupDefinition),
		classes: make(map[string]*Class),
	}
}

// RegisterGroup registers a group template. Registering the same name
// twice is a programmer error.
func (r *Registry) RegisterGroup(g *config.GroupDefinition) {
	if _, exists := r.groups[g.Name]; exists {
		panic(fmt.Sprintf("group template %q already registered", g.Name))
	}
	slog.Debug("Registering group template.", "name", g.Name, "attrs", len(g.Attrs))
	r.groups[g.Name] = g
	r.groupOrder = append(r.groupOrder, g.Name)
}

// Group returns a registered group template by name.
func (r *Registry) Group(name string) (*config.GroupDefinition, bool) {
	g, ok := r.groups[name]
	return g, ok
}

// Class returns a built model class by name.
func (r *Registry) Class(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Classes returns all built classes in registration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.classOrder))
	for _, name := range r.classOrder {
		out = append(out, r.classes[name])
	}
	return out
}

// PopulateFromModel registers the groups and builds the classes of a loaded
// definition model, in declared order. Classes may name previously built
// classes (builtin or earlier in the model) as parents.
func (r *Registry) PopulateFromModel(model *config.Model) error {
	for _, g := range model.Groups {
		r.RegisterGroup(g)
	}
	for _, def := range model.Classes {
		if _, err := r.Build(def); err != nil {
			return err
		}
	}
	return nil
}
