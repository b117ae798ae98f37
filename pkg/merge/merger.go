package merge

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/executor"
	"github.com/taoziyu97/sra-tools/pkg/filesystem"
	"github.com/taoziyu97/sra-tools/pkg/logging"
	"github.com/taoziyu97/sra-tools/pkg/progress"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Options contains configuration for the merger
type Options struct {
	// FS is the filesystem inputs and output live on. Defaults to the OS.
	FS types.FS

	// Logger defaults to the "merge" component logger. A disabled logger,
	// zerolog.Nop() included, counts as unset.
	Logger zerolog.Logger

	// Copier moves the bytes. Defaults to an executor on FS.
	Copier types.Copier

	// Progress receives byte counts. Defaults to a silent counter.
	Progress types.Progress

	// BufferSize is the output write buffer and the copy chunk size.
	BufferSize int

	// Level is the compression level; 0 selects the codec default.
	Level int

	// QueueWait is handed to the copier with every request.
	QueueWait time.Duration

	CompressedAppend CompressedAppendPolicy

	// Checksum computes a BLAKE3 digest of the finished output.
	Checksum bool

	// DisableRename always copies the first input instead of moving it.
	DisableRename bool
}

// Merger plans and runs merges.
type Merger struct {
	fs            types.FS
	logger        zerolog.Logger
	copier        types.Copier
	progress      types.Progress
	bufferSize    int
	level         int
	queueWait     time.Duration
	policy        CompressedAppendPolicy
	checksum      bool
	disableRename bool
}

// New creates a new merger instance
func New(opts Options) *Merger {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("merge")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	copier := opts.Copier
	if copier == nil {
		copier = executor.New(executor.Options{FS: fs})
	}

	prog := opts.Progress
	if prog == nil {
		prog = progress.NewCounter()
	}

	policy := opts.CompressedAppend
	if policy == "" {
		policy = PolicyWarn
	}

	return &Merger{
		fs:            fs,
		logger:        logger,
		copier:        copier,
		progress:      prog,
		bufferSize:    opts.BufferSize,
		level:         opts.Level,
		queueWait:     opts.QueueWait,
		policy:        policy,
		checksum:      opts.Checksum,
		disableRename: opts.DisableRename,
	}
}

// Merge plans req and copies the remaining inputs into the output. The
// output is closed before Merge returns. A failed copy leaves whatever was
// written in place; the partial Result is returned alongside the error.
func (m *Merger) Merge(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	done := logging.LogOperationStart(m.logger, "merge")
	defer done()

	// sizes are taken before planning since a rename moves the first input
	total := m.inputBytes(req.Files)

	plan, err := m.Plan(req)
	if err != nil {
		return nil, err
	}
	res := newResult(plan)

	m.progress.Start(total)
	defer m.progress.Stop()

	if plan.Strategy == types.StrategyNone {
		res.Duration = time.Since(start)
		return res, nil
	}
	if plan.Renamed {
		m.progress.Add(plan.StartOffset)
	}

	n, copyErr := m.copier.Copy(ctx, plan.Sink, types.CopyRequest{
		Files:       plan.Files,
		StartIndex:  plan.StartIndex,
		StartOffset: plan.StartOffset,
		BufferSize:  m.bufferSize,
		QueueWait:   m.queueWait,
		Progress:    m.progress,
	})
	res.BytesCopied = n
	closeErr := plan.Close()
	res.Duration = time.Since(start)

	if copyErr != nil {
		return res, copyErr
	}
	if closeErr != nil {
		return res, closeErr
	}

	info, err := m.fs.Stat(res.OutputPath)
	if err != nil {
		return res, errors.WrapOp(err, errors.ErrFileSize, "stat", res.OutputPath)
	}
	res.OutputSize = info.Size()

	if m.checksum {
		sum, err := Checksum(m.fs, res.OutputPath)
		if err != nil {
			return res, err
		}
		res.Checksum = sum
	}

	res.Duration = time.Since(start)
	m.logger.Info().
		Str("strategy", res.Strategy.String()).
		Int64("bytesCopied", res.BytesCopied).
		Int64("outputSize", res.OutputSize).
		Dur("duration", res.Duration).
		Msg("Merge completed")
	return res, nil
}

// inputBytes sums the sizes of files. Inputs that cannot be stat'ed count
// as zero; the copier reports them.
func (m *Merger) inputBytes(files []string) int64 {
	var total int64
	for _, f := range files {
		if info, err := m.fs.Stat(f); err == nil {
			total += info.Size()
		}
	}
	return total
}
