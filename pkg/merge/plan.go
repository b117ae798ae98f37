package merge

import (
	"os"
	"path/filepath"

	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/paths"
	"github.com/taoziyu97/sra-tools/pkg/sink"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Request describes one merge.
type Request struct {
	// Files is the ordered input list. Duplicates are allowed.
	Files []string

	// Output is the requested output path, before any compression suffix.
	Output string

	Compression types.CompressionMode
	Append      bool
	Force       bool
}

// decision is what the selector resolved before any side effect.
type decision struct {
	strategy types.Strategy
	base     string // expanded output path without suffix
	output   string // final output path

	// offset is the existing output size for StrategyAppend and the size
	// of the first input for StrategyFresh.
	offset    int64
	tryRename bool
	warnings  []string
}

// decide resolves the strategy for req. It only reads the filesystem.
func (m *Merger) decide(req Request) (*decision, error) {
	if len(req.Files) == 0 {
		return &decision{
			strategy: types.StrategyNone,
			base:     req.Output,
			output:   req.Output + req.Compression.Suffix(),
		}, nil
	}

	if err := paths.ValidatePath(req.Output); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid output path")
	}
	for i, f := range req.Files {
		if err := paths.ValidatePath(f); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid input %d", i).
				WithDetail("index", i)
		}
	}

	d := &decision{
		base:   paths.OutputPath(req.Output, types.CompressionNone),
		output: paths.OutputPath(req.Output, req.Compression),
	}
	for _, f := range req.Files {
		if paths.SamePath(f, d.output) {
			return nil, errors.Newf(errors.ErrInvalidInput, "output %s is also an input", d.output).
				WithDetail("path", d.output)
		}
	}

	info, exists, err := m.statOutput(d.output)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Compression.Compressed():
		d.strategy = types.StrategyCompressed
		if req.Append {
			if m.policy == PolicyError {
				return nil, errors.Newf(errors.ErrAppendCompressed,
					"cannot append to %s output %s", req.Compression, d.output).
					WithDetail("path", d.output)
			}
			msg := "append ignored: " + req.Compression.String() + " output is always written from scratch"
			m.logger.Warn().Str("output", d.output).Msg(msg)
			d.warnings = append(d.warnings, msg)
		}
		if exists && !req.Force {
			return nil, alreadyExists(d.output)
		}

	case req.Append && exists:
		if info.IsDir() {
			return nil, errors.Newf(errors.ErrInvalidInput, "output %s is a directory", d.output).
				WithDetail("path", d.output)
		}
		d.strategy = types.StrategyAppend
		d.offset = info.Size()

	default:
		d.strategy = types.StrategyFresh
		if exists && !req.Force {
			return nil, alreadyExists(d.output)
		}
		first, err := m.fs.Stat(req.Files[0])
		if err != nil {
			return nil, errors.WrapOp(err, errors.ErrFileSize, "stat", req.Files[0])
		}
		if !first.Mode().IsRegular() {
			return nil, errors.Newf(errors.ErrInvalidInput, "input %s is not a regular file", req.Files[0]).
				WithDetail("path", req.Files[0]).
				WithDetail("mode", first.Mode().String())
		}
		d.offset = first.Size()
		d.tryRename = !m.disableRename && !repeatsFirst(req.Files)
	}

	return d, nil
}

func (m *Merger) statOutput(path string) (os.FileInfo, bool, error) {
	info, err := m.fs.Stat(path)
	if err == nil {
		return info, true, nil
	}
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	return nil, false, errors.WrapOp(err, errors.ErrFileSize, "stat", path)
}

func alreadyExists(path string) error {
	return errors.Newf(errors.ErrAlreadyExists, "output %s already exists, use force to overwrite", path).
		WithDetail("path", path)
}

// repeatsFirst reports whether files[0] appears again later. Renaming it
// away would make the later read fail.
func repeatsFirst(files []string) bool {
	for _, f := range files[1:] {
		if paths.SamePath(f, files[0]) {
			return true
		}
	}
	return false
}

// Plan resolves the strategy for req and prepares the output. The returned
// plan owns an open sink, except for StrategyNone, and must be closed by
// the caller.
func (m *Merger) Plan(req Request) (*types.MergePlan, error) {
	d, err := m.decide(req)
	if err != nil {
		return nil, err
	}

	plan := &types.MergePlan{
		Strategy:   d.strategy,
		OutputPath: d.output,
		Files:      req.Files,
		Warnings:   d.warnings,
	}

	switch d.strategy {
	case types.StrategyNone:
		m.logger.Debug().Msg("No input files, nothing to merge")
		return plan, nil

	case types.StrategyCompressed:
		s, err := sink.Build(m.fs, types.OutputTarget{
			Path:            d.base,
			BufferSize:      m.bufferSize,
			CreateMode:      types.CreateModeFor(req.Force),
			AppendRequested: req.Append,
			Compression:     req.Compression,
			Level:           m.level,
		})
		if err != nil {
			return nil, err
		}
		plan.Sink = s

	case types.StrategyAppend:
		s, err := sink.Open(m.fs, d.output, d.offset, m.bufferSize)
		if err != nil {
			return nil, err
		}
		plan.Sink = s
		plan.StartOffset = d.offset
		plan.AppendUsed = true

	case types.StrategyFresh:
		if err := m.planFresh(plan, d); err != nil {
			return nil, err
		}
	}

	m.logger.Info().
		Str("strategy", plan.Strategy.String()).
		Str("output", plan.OutputPath).
		Int("startIndex", plan.StartIndex).
		Int64("startOffset", plan.StartOffset).
		Bool("renamed", plan.Renamed).
		Msg("Merge planned")

	return plan, nil
}

func (m *Merger) planFresh(plan *types.MergePlan, d *decision) error {
	first := plan.Files[0]

	if d.tryRename {
		dir := filepath.Dir(d.output)
		if err := m.fs.MkdirAll(dir, 0755); err != nil {
			return errors.WrapOp(err, errors.ErrDirCreate, "mkdir", dir)
		}

		err := m.fs.Rename(first, d.output)
		if err == nil {
			s, err := sink.Open(m.fs, d.output, d.offset, m.bufferSize)
			if err != nil {
				return errors.Wrapf(err, errors.ErrRename, "reopen %s after rename", d.output).
					WithDetail("renamedFrom", first)
			}
			plan.Sink = s
			plan.Renamed = true
			plan.StartIndex = 1
			plan.StartOffset = d.offset
			return nil
		}

		m.logger.Debug().
			Err(err).
			Str("from", first).
			Str("to", d.output).
			Msg("Rename failed, copying first input instead")
	}

	s, err := sink.Build(m.fs, types.OutputTarget{
		Path:       d.base,
		BufferSize: m.bufferSize,
		CreateMode: types.CreateTruncate,
	})
	if err != nil {
		return err
	}
	plan.Sink = s
	return nil
}

// Preview reports the plan Merge would execute for req without creating,
// renaming or writing anything.
func (m *Merger) Preview(req Request) (*Result, error) {
	d, err := m.decide(req)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Strategy:   d.strategy,
		OutputPath: d.output,
		Files:      len(req.Files),
		Copied:     len(req.Files),
		Warnings:   d.warnings,
		DryRun:     true,
	}
	switch d.strategy {
	case types.StrategyAppend:
		res.AppendUsed = true
		res.StartOffset = d.offset
	case types.StrategyFresh:
		if d.tryRename {
			res.Renamed = true
			res.StartOffset = d.offset
			res.Copied--
		}
	}

	skip := len(req.Files) - res.Copied
	if d.strategy != types.StrategyNone {
		res.BytesCopied = m.inputBytes(req.Files[skip:])
	}
	if d.strategy == types.StrategyAppend || d.strategy == types.StrategyFresh {
		res.OutputSize = res.StartOffset + res.BytesCopied
	}

	m.logger.Debug().
		Str("strategy", res.Strategy.String()).
		Str("output", res.OutputPath).
		Bool("renamed", res.Renamed).
		Msg("Merge previewed")
	return res, nil
}
