package registry

import (
	"fmt"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/property"
)

// Build constructs a model class from its definition and registers it.
//
// The attribute namespace is linearized in a fixed order: the parent
// chain's descriptors first (already linearized when the parent was
// built), then each included group expanded in declared order, then the
// class's direct attributes. Overrides are applied last and only replace
// the default of an attribute the class already has.
func (r *Registry) Build(def *config.ClassDefinition) (*Class, error) {
	if _, exists := r.classes[def.Name]; exists {
		return nil, fmt.Errorf("%w: class %q already registered", ErrNameCollision, def.Name)
	}

	c := &Class{
		name:  def.Name,
		index: make(map[string]*property.Descriptor),
	}

	if def.Parent != "" {
		parent, ok := r.classes[def.Parent]
		if !ok {
			return nil, fmt.Errorf("class %q: %w: parent %q", def.Name, ErrUnknownClass, def.Parent)
		}
		c.parent = parent
		c.descriptors = append(c.descriptors, parent.descriptors...)
		for name, d := range parent.index {
			c.index[name] = d
		}
	}

	for _, inc := range def.Includes {
		group, ok := r.groups[inc.Group]
		if !ok {
			return nil, fmt.Errorf("class %q: %w: %q", def.Name, ErrUnknownGroup, inc.Group)
		}
		for _, attr := range group.Attrs {
			d := descriptorFrom(attr)
			if inc.Prefix != "" {
				d.Name = inc.Prefix + "_" + attr.Name
			}
			if !c.add(d) {
				return nil, fmt.Errorf("class %q: %w: attribute %q from group %q already bound",
					def.Name, ErrNameCollision, d.Name, inc.Group)
			}
		}
	}

	for _, attr := range def.Attrs {
		d := descriptorFrom(attr)
		if !c.add(d) {
			return nil, fmt.Errorf("class %q: %w: attribute %q already bound; use an override to change its default",
				def.Name, ErrNameCollision, attr.Name)
		}
	}

	for _, o := range def.Overrides {
		existing, ok := c.index[o.Name]
		if !ok {
			return nil, fmt.Errorf("class %q: override of unknown attribute %q", def.Name, o.Name)
		}
		// Same logical slot: only the default changes, the declared type
		// and coercions of the original descriptor remain in force.
		d := *existing
		d.DefaultFn = o.DefaultFn
		if o.Default != nil {
			d.Default = *o.Default
		} else if o.DefaultFn == nil {
			d.Default = cty.NullVal(cty.DynamicPseudoType)
		}
		c.replace(o.Name, &d)
	}

	if err := checkDefaults(c); err != nil {
		return nil, fmt.Errorf("class %q: %w", def.Name, err)
	}

	slog.Debug("Built model class.", "name", def.Name, "attributes", len(c.descriptors))
	r.classes[def.Name] = c
	r.classOrder = append(r.classOrder, def.Name)
	return c, nil
}

// MustBuild is Build for builtin definitions, where a failure is a
// programmer error.
func (r *Registry) MustBuild(def *config.ClassDefinition) *Class {
	c, err := r.Build(def)
	if err != nil {
		panic(err)
	}
	return c
}

// checkDefaults enforces descriptor self-consistency: the computed default
// must pass the descriptor's own coercion and validation rules.
func checkDefaults(c *Class) error {
	for _, d := range c.descriptors {
		if _, err := d.Resolve(d.DefaultValue()); err != nil {
			return fmt.Errorf("default for attribute %q is inconsistent: %w", d.Name, err)
		}
	}
	return nil
}

func descriptorFrom(a *config.AttrDefinition) *property.Descriptor {
	d := &property.Descriptor{
		Name:      a.Name,
		Type:      a.Type,
		Nullable:  a.Nullable,
		DefaultFn: a.DefaultFn,
		Coercions: a.Coercions,
		Help:      a.Description,
	}
	if a.Default != nil {
		d.Default = *a.Default
	} else {
		d.Default = cty.NullVal(cty.DynamicPseudoType)
	}
	return d
}
