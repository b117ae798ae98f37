// Package filesystem provides filesystem implementations for the merge engine.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and afero-backed filesystems
// used for hermetic tests.
package filesystem
