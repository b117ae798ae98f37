package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Concatenate files into one output, optionally compressed"
	MsgMergeShort      = "Merge input files into a single output"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgVersionFormat = "fqconcat version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrReadList = "failed to read input list"
	MsgErrNoOutput = "an output path is required (-o)"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default $XDG_CONFIG_HOME/fqconcat/config.toml)"
	MsgFlagOutput      = "Output path; the compression suffix is added automatically"
	MsgFlagCompression = "Compression: none, gzip, bzip2, zstd or lz4"
	MsgFlagLevel       = "Compression level, 0 for the codec default"
	MsgFlagAppend      = "Continue an existing output instead of replacing it"
	MsgFlagForce       = "Overwrite an existing output"
	MsgFlagBufferSize  = "Output buffer and read chunk size, e.g. 64KiB"
	MsgFlagWorkers     = "Number of inputs read ahead concurrently"
	MsgFlagQueueWait   = "How long a reader waits on a full queue before retrying"
	MsgFlagChecksum    = "Print a BLAKE3 digest of the finished output"
	MsgFlagProgress    = "Progress display: auto, bar, log or none"
	MsgFlagFormat      = "Result format: auto, term, text, json, yaml or xml"
	MsgFlagDryRun      = "Show what would be done without touching any file"
	MsgFlagFrom        = "Read input paths from a file, one per line ('-' for stdin)"
	MsgFlagDefaults    = "Print the commented default configuration instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/merge-long.txt
	msgMergeLongRaw string
	MsgMergeLong    = strings.TrimSpace(msgMergeLongRaw)

	//go:embed msgs/merge-example.txt
	msgMergeExampleRaw string
	MsgMergeExample    = strings.TrimSpace(msgMergeExampleRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
