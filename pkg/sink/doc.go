// Package sink builds the writable destination of a merge.
//
// A Sink is a stack of layers, innermost first:
//
//	file -> buffer (optional) -> encoder (optional)
//
// The buffer sits below the encoder so the many small writes an encoder
// issues are coalesced before they reach the filesystem. Closing a Sink
// closes every layer exactly once, outermost first, so the encoder footer is
// flushed through the buffer before the file is closed.
//
// Build creates a fresh output (applying the compression suffix); Open
// reopens an existing output for writing at a given offset, which is how the
// append and rename strategies continue a file.
package sink
