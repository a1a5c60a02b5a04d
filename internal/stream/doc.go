// Package stream exposes the document to a rendering/interaction client
// over a websocket: the full serialized document on connect, then a feed
// of attribute-change events as they fire.
//
// The document core is single-writer and unlocked; the server only reads
// the document while producing the connect snapshot, so callers must
// finish structural edits before accepting connections, and subsequent
// mutations reach clients through the change feed alone.
package stream
