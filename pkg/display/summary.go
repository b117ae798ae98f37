package display

import (
	"github.com/taoziyu97/sra-tools/pkg/merge"
)

// Summary is the serializable view of a merge result.
type Summary struct {
	Strategy    string   `json:"strategy" yaml:"strategy"`
	Output      string   `json:"output" yaml:"output"`
	DryRun      bool     `json:"dryRun" yaml:"dryRun"`
	Renamed     bool     `json:"renamed" yaml:"renamed"`
	AppendUsed  bool     `json:"appendUsed" yaml:"appendUsed"`
	StartOffset int64    `json:"startOffset" yaml:"startOffset"`
	BytesCopied int64    `json:"bytesCopied" yaml:"bytesCopied"`
	OutputSize  int64    `json:"outputSize" yaml:"outputSize"`
	Files       int      `json:"files" yaml:"files"`
	Copied      int      `json:"copied" yaml:"copied"`
	Checksum    string   `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration    string   `json:"duration" yaml:"duration"`
}

// NewSummary converts a merge result.
func NewSummary(res *merge.Result) Summary {
	return Summary{
		Strategy:    res.Strategy.String(),
		Output:      res.OutputPath,
		DryRun:      res.DryRun,
		Renamed:     res.Renamed,
		AppendUsed:  res.AppendUsed,
		StartOffset: res.StartOffset,
		BytesCopied: res.BytesCopied,
		OutputSize:  res.OutputSize,
		Files:       res.Files,
		Copied:      res.Copied,
		Checksum:    res.Checksum,
		Warnings:    res.Warnings,
		Duration:    res.Duration.String(),
	}
}

// errorView is the serializable view of a failure.
type errorView struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code" yaml:"code"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}
