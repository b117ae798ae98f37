package types

import (
	"fmt"
	"io"
)

// CreateMode controls what happens when the output file already exists.
type CreateMode int

const (
	// CreateExclusive fails if the file exists.
	CreateExclusive CreateMode = iota

	// CreateTruncate empties an existing file.
	CreateTruncate
)

// String returns the human-readable name of a create mode.
func (c CreateMode) String() string {
	if c == CreateTruncate {
		return "truncate"
	}
	return "exclusive"
}

// CreateModeFor maps the force flag onto a create mode.
func CreateModeFor(force bool) CreateMode {
	if force {
		return CreateTruncate
	}
	return CreateExclusive
}

// OutputTarget describes the sink to build.
type OutputTarget struct {
	// Path is the requested output path before the compression suffix.
	Path string

	// BufferSize is the write buffer size; 0 means unbuffered.
	BufferSize int

	// CreateMode is truncate-if-exists or fail-if-exists.
	CreateMode CreateMode

	// AppendRequested records the caller's append flag.
	AppendRequested bool

	// Compression selects the encoder layer.
	Compression CompressionMode

	// Level is the encoder level; 0 selects the codec default.
	Level int
}

// FinalPath returns Path with the compression suffix applied.
func (t OutputTarget) FinalPath() string {
	return t.Path + t.Compression.Suffix()
}

// Strategy is the merge algorithm chosen for one invocation.
type Strategy int

const (
	// StrategyNone is the no-op taken for an empty input list.
	StrategyNone Strategy = iota

	// StrategyCompressed writes every input through a fresh encoder.
	StrategyCompressed

	// StrategyAppend adds every input after an existing output.
	StrategyAppend

	// StrategyFresh creates the output, renaming the first input into
	// place when the filesystem allows it.
	StrategyFresh
)

// String returns the human-readable name of a strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyCompressed:
		return "compressed"
	case StrategyAppend:
		return "append"
	case StrategyFresh:
		return "fresh"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MergePlan is the resolved decision of the strategy selector. It owns Sink
// until Close is called.
type MergePlan struct {
	Strategy   Strategy
	OutputPath string
	Sink       io.WriteCloser

	// Files is the full input list; Files[StartIndex:] remain to be copied.
	Files      []string
	StartIndex int

	// StartOffset is the number of bytes already present in the output.
	StartOffset int64

	AppendUsed bool
	Renamed    bool

	// Warnings collects non-fatal notes raised while planning.
	Warnings []string
}

// Remaining returns the inputs still to be copied.
func (p *MergePlan) Remaining() []string {
	if p == nil || p.StartIndex >= len(p.Files) {
		return nil
	}
	return p.Files[p.StartIndex:]
}

// Close releases the sink. It is safe to call on a plan without one.
func (p *MergePlan) Close() error {
	if p == nil || p.Sink == nil {
		return nil
	}
	err := p.Sink.Close()
	p.Sink = nil
	return err
}
