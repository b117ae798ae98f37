// Package testutil provides utilities for testing fqconcat components.
//
// Key components:
//   - Input / WriteInputs / Concat: deterministic input fixtures and the
//     concatenation they are expected to produce
//   - FaultyFS: a types.FS decorator that injects errors per operation and
//     records calls, used to force the rename fallback and error paths
//   - Assert*: small assertion helpers for tests that do not use testify
//
// Usage guidelines:
//   - Prefer filesystem.NewMemory() for speed and isolation
//   - Use t.TempDir() with filesystem.NewOS() when real rename semantics matter
//   - All test data should be defined inline, not in external files
package testutil
