// Package property implements the attribute descriptor engine: the typed,
// validated, observable slots that model classes are composed of.
//
// A Descriptor pairs a semantic Type with a default value (static, or a
// producer invoked freshly per instance), an ordered list of coercions, and
// a nullable flag. Resolve runs an incoming raw value through coercions and
// type validation, leaning on go-cty's conversion rules for scalar kinds.
//
// Instance references and frame-edge placeholders travel through the same
// cty plumbing as scalars, encoded as capsule values (RefVal, SymbolVal).
package property
