// Package document owns the mutable side of the model system: constructed
// instances, the reference graph between them, change notification, and
// the flat serialized form consumed by the rendering layer.
//
// A Document allocates stable instance ids (never reused, even after
// removal) and fires synchronous change events on every successful
// attribute assignment. The core assumes a single-writer execution
// context; anything concurrent (a UI tick, a network loop) must marshal
// back into that context before mutating.
package document
