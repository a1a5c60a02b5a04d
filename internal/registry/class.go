package registry

import (
	"github.com/vk/plotmod/internal/property"
)

// Class is a built, immutable model class: a name, an optional parent, and
// the fully linearized attribute descriptor set. The descriptor order is
// stable: ancestors first in their own declared order, then included
// groups, then direct attributes.
type Class struct {
	name        string
	parent      *Class
	descriptors []*property.Descriptor
	index       map[string]*property.Descriptor
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class, or nil for a root class.
func (c *Class) Parent() *Class { return c.parent }

// Descriptor returns the resolved descriptor for an attribute name,
// whether declared directly, inherited, or contributed by an included
// group.
func (c *Class) Descriptor(name string) (*property.Descriptor, bool) {
	d, ok := c.index[name]
	return d, ok
}

// Descriptors returns all resolved descriptors in linearized order. The
// returned slice must not be mutated.
func (c *Class) Descriptors() []*property.Descriptor {
	return c.descriptors
}

// IsA reports whether the class is other or a descendant of it.
func (c *Class) IsA(other *Class) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (c *Class) add(d *property.Descriptor) bool {
	if _, exists := c.index[d.Name]; exists {
		return false
	}
	c.descriptors = append(c.descriptors, d)
	c.index[d.Name] = d
	return true
}

// replace swaps the descriptor bound to name, keeping its position in the
// linearized order so an override stays in the same logical slot.
func (c *Class) replace(name string, d *property.Descriptor) {
	for i, cur := range c.descriptors {
		if cur.Name == name {
			c.descriptors[i] = d
			break
		}
	}
	c.index[name] = d
}
