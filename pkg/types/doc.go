// Package types defines the core types and interfaces used throughout the
// concatenation engine. This includes the FS, Copier and Progress interfaces
// as well as data structures like CompressionMode, OutputTarget and MergePlan.
package types
