// Package registry provides the central "glue" for the model system.
//
// The Registry stores the group templates (reusable attribute bundles such
// as the line/fill/hatch style groups) and the built model classes. Classes
// are built through an explicit Build step that linearizes the attribute
// namespace: inherited descriptors first, then included groups expanded in
// declared order, then direct attributes, then default overrides.
//
// During application startup the registry is populated and then validated
// to ensure every descriptor's default satisfies its own declared type,
// preventing a wide class of runtime errors.
package registry
