// Package executor provides the copy engine used by merges.
//
// The Executor copies an ordered list of input files into a single writer.
// Up to Workers files are read ahead concurrently, each into its own bounded
// queue of chunks, while one writer drains the queues strictly in list order.
// The output is therefore always the exact concatenation of the inputs no
// matter how the reads interleave.
package executor
