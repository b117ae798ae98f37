// Package merge decides how a list of input files becomes one output and
// then carries that decision out.
//
// Plan inspects the request and the filesystem and resolves exactly one
// strategy, checked in this order:
//
//   - an empty input list is a no-op;
//   - a compressed output is always written from scratch through an
//     encoder, and an append request is reported rather than honored;
//   - an append request against an existing output continues writing at
//     its current size;
//   - otherwise the output is created fresh. When the first input can be
//     renamed into place its bytes are never copied, and only the
//     remaining inputs are appended after it.
//
// Merge runs the plan through a types.Copier and reports a Result. Preview
// walks the same decisions without touching the filesystem.
package merge
