package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/plotmod/internal/ctxlog"
)

// Validate performs a whole-registry consistency check after population.
// Build already rejects inconsistent classes one at a time; this pass
// re-checks every class so that startup fails with a single, complete
// report when definitions disagree.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.classOrder {
		c := r.classes[name]
		for _, d := range c.descriptors {
			def := d.DefaultValue()
			if _, err := d.Resolve(def); err != nil {
				errs = append(errs, fmt.Sprintf("class '%s': %v", name, err))
			}
		}
	}

	for _, name := range r.groupOrder {
		g := r.groups[name]
		for _, a := range g.Attrs {
			d := descriptorFrom(a)
			if _, err := d.Resolve(d.DefaultValue()); err != nil {
				errs = append(errs, fmt.Sprintf("group '%s': %v", name, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "classes", len(r.classOrder), "groups", len(r.groupOrder))
	return nil
}
