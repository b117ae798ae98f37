// Package progress reports how many bytes a merge has written so far.
//
// Every reporter implements types.Progress. Counter only counts; Bar draws a
// pterm progress bar for interactive terminals; Ticker emits a zerolog line
// at a fixed interval, which reads better in CI logs and redirected stderr.
// New picks one of them from a Mode.
package progress
