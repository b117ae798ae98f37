package merge

import (
	"time"

	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Result reports what a merge did, or for a preview, what it would do.
type Result struct {
	Strategy   types.Strategy
	OutputPath string

	// Renamed is set when the first input became the output without being
	// copied. In a preview it means a rename would be attempted.
	Renamed    bool
	AppendUsed bool

	// StartOffset is the number of bytes the output held before copying.
	StartOffset int64

	// BytesCopied is the number of bytes written by the copier.
	BytesCopied int64

	// OutputSize is the final size of the output file.
	OutputSize int64

	// Files is the number of inputs, Copied how many went through the
	// copier.
	Files  int
	Copied int

	// Checksum is the hex BLAKE3 digest of the output, when requested.
	Checksum string

	Warnings []string
	DryRun   bool
	Duration time.Duration
}

func newResult(plan *types.MergePlan) *Result {
	return &Result{
		Strategy:    plan.Strategy,
		OutputPath:  plan.OutputPath,
		Renamed:     plan.Renamed,
		AppendUsed:  plan.AppendUsed,
		StartOffset: plan.StartOffset,
		Files:       len(plan.Files),
		Copied:      len(plan.Remaining()),
		Warnings:    plan.Warnings,
	}
}
