// Package paths provides centralized path handling for fqconcat.
//
// This package implements the XDG Base Directory specification for the few
// files fqconcat keeps for itself, and the naming rules for merge outputs.
// It handles:
//
//   - XDG directory structure (config, state)
//   - Output naming with compression suffixes
//   - Path normalization and expansion
//   - Rejecting paths no filesystem call could accept
//
// # Environment Variables
//
//   - FQCONCAT_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/fqconcat)
//   - FQCONCAT_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/fqconcat)
//
// # Usage
//
//	import "github.com/taoziyu97/sra-tools/pkg/paths"
//
//	cfgFile := paths.FindConfigFile()                                 // "" or .../fqconcat/config.toml
//	out := paths.OutputPath("reads.fastq", types.CompressionGzip)    // reads.fastq.gz
package paths
