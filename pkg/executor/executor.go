package executor

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/filesystem"
	"github.com/taoziyu97/sra-tools/pkg/logging"
	"github.com/taoziyu97/sra-tools/pkg/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultWorkers    = 4
	DefaultQueueDepth = 8
	DefaultChunkSize  = 1 << 20
)

// Options contains configuration for the executor
type Options struct {
	// Workers is the number of files read concurrently.
	Workers int
	// QueueDepth is the number of chunks buffered per file.
	QueueDepth int
	// ChunkSize is the read size used when a request has no BufferSize.
	ChunkSize int
	// Logger defaults to the "executor" component logger when disabled.
	Logger zerolog.Logger
	// Filesystem operations interface for testing
	FS types.FS
}

// Executor copies files in order with parallel read-ahead.
type Executor struct {
	workers    int
	queueDepth int
	chunkSize  int
	logger     zerolog.Logger
	fs         types.FS
}

var _ types.Copier = (*Executor)(nil)

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	e := &Executor{
		workers:    opts.Workers,
		queueDepth: opts.QueueDepth,
		chunkSize:  opts.ChunkSize,
		logger:     logger,
		fs:         fs,
	}
	if e.workers <= 0 {
		e.workers = DefaultWorkers
	}
	if e.queueDepth <= 0 {
		e.queueDepth = DefaultQueueDepth
	}
	if e.chunkSize <= 0 {
		e.chunkSize = DefaultChunkSize
	}
	return e
}

type chunk struct {
	buf *[]byte
	n   int
}

// Copy writes Files[StartIndex:] to dst in list order and returns the number
// of bytes written. dst is never closed. The first failure cancels every
// reader and is returned.
func (e *Executor) Copy(ctx context.Context, dst io.Writer, req types.CopyRequest) (int64, error) {
	if req.StartIndex < 0 || req.StartIndex > len(req.Files) {
		return 0, errors.Newf(errors.ErrInvalidInput, "start index %d outside [0,%d]", req.StartIndex, len(req.Files))
	}
	files := req.Files[req.StartIndex:]
	if len(files) == 0 {
		return 0, nil
	}

	size := e.chunkSize
	if req.BufferSize > 0 {
		size = req.BufferSize
	}
	pool := &sync.Pool{New: func() any {
		b := make([]byte, size)
		return &b
	}}

	start := time.Now()
	e.logger.Debug().
		Int("files", len(files)).
		Int("startIndex", req.StartIndex).
		Int64("startOffset", req.StartOffset).
		Int("chunkSize", size).
		Int("workers", e.workers).
		Dur("queueWait", req.QueueWait).
		Msg("Copy started")

	queues := make([]chan chunk, len(files))
	for i := range queues {
		queues[i] = make(chan chunk, e.queueDepth)
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(e.workers))

	// Readers are admitted strictly in list order so the file the writer
	// needs next always holds a slot.
	g.Go(func() error {
		for i, path := range files {
			i, path := i, path // per-iteration copies (go.mod targets go1.21)
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			g.Go(func() error {
				defer sem.Release(1)
				return e.read(gctx, path, queues[i], pool, req.QueueWait)
			})
		}
		return nil
	})

	var written int64
	g.Go(func() error {
		n, err := e.drain(gctx, dst, files, queues, pool, req.Progress)
		written = n
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrap(err, errors.ErrCopy, "copy interrupted").
				WithDetail("written", written)
		}
		e.logger.Debug().Err(err).Int64("written", written).Msg("Copy failed")
		return written, err
	}

	e.logger.Debug().
		Int64("written", written).
		Dur("duration", time.Since(start)).
		Msg("Copy finished")
	return written, nil
}

// read streams one file into out. out is closed only after the whole file
// was queued; on failure it stays open so the writer never mistakes a
// truncated file for a finished one.
func (e *Executor) read(ctx context.Context, path string, out chan<- chunk, pool *sync.Pool, wait time.Duration) error {
	f, err := e.fs.Open(path)
	if err != nil {
		return errors.WrapOp(err, errors.ErrFileAccess, "open", path)
	}
	defer func() { _ = f.Close() }()

	for {
		bp := pool.Get().(*[]byte)
		n, err := io.ReadFull(f, *bp)
		if n > 0 {
			if qerr := e.enqueue(ctx, out, chunk{buf: bp, n: n}, path, wait); qerr != nil {
				pool.Put(bp)
				return qerr
			}
		} else {
			pool.Put(bp)
		}

		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			close(out)
			return nil
		default:
			return errors.WrapOp(err, errors.ErrFileAccess, "read", path)
		}
	}
}

// enqueue blocks until c is accepted. A full queue is logged every wait
// interval so a stalled writer is visible at trace level.
func (e *Executor) enqueue(ctx context.Context, out chan<- chunk, c chunk, path string, wait time.Duration) error {
	if wait <= 0 {
		select {
		case out <- c:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case out <- c:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			e.logger.Trace().
				Str("path", path).
				Dur("wait", wait).
				Msg("Queue full, waiting for writer")
			timer.Reset(wait)
		}
	}
}

// drain writes the queues to dst one after another.
func (e *Executor) drain(ctx context.Context, dst io.Writer, files []string, queues []chan chunk, pool *sync.Pool, progress types.Progress) (int64, error) {
	var written int64
	for i, q := range queues {
		for {
			var c chunk
			var ok bool
			select {
			case c, ok = <-q:
			case <-ctx.Done():
				return written, ctx.Err()
			}
			if !ok {
				break
			}

			n, err := dst.Write((*c.buf)[:c.n])
			pool.Put(c.buf)
			written += int64(n)
			if progress != nil && n > 0 {
				progress.Add(int64(n))
			}
			if err == nil && n < c.n {
				err = io.ErrShortWrite
			}
			if err != nil {
				if errors.GetErrorCode(err) != errors.ErrUnknown {
					return written, err
				}
				return written, errors.WrapOp(err, errors.ErrFileWrite, "write", files[i])
			}
		}

		e.logger.Trace().
			Str("path", files[i]).
			Int64("written", written).
			Msg("Input copied")
	}
	return written, nil
}
