package executor_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/executor"
	"github.com/taoziyu97/sra-tools/pkg/filesystem"
	"github.com/taoziyu97/sra-tools/pkg/progress"
	"github.com/taoziyu97/sra-tools/pkg/testutil"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// recordingWriter remembers the size of every write.
type recordingWriter struct {
	bytes.Buffer
	sizes []int
	delay time.Duration
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	w.sizes = append(w.sizes, len(p))
	return w.Buffer.Write(p)
}

// failingWriter accepts limit bytes and then fails with err.
type failingWriter struct {
	limit int
	err   error
	n     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		return 0, w.err
	}
	w.n += len(p)
	return len(p), nil
}

func newExecutor(fs types.FS, workers, depth, chunk int) *executor.Executor {
	return executor.New(executor.Options{
		Workers:    workers,
		QueueDepth: depth,
		ChunkSize:  chunk,
		FS:         fs,
		Logger:     zerolog.New(io.Discard),
	})
}

func TestCopyPreservesOrder(t *testing.T) {
	memfs := filesystem.NewMemory()
	inputs := []testutil.Input{
		{Name: "a.fastq", Size: 50},
		{Name: "b.fastq", Size: 0},
		{Name: "c.fastq", Size: 333},
		{Name: "d.fastq", Size: 7},
		{Name: "e.fastq", Size: 1024},
		{Name: "f.fastq", Size: 100},
	}
	files := testutil.WriteInputs(t, memfs, "/in", inputs...)

	for _, workers := range []int{1, 2, 6, 16} {
		var out bytes.Buffer
		n, err := newExecutor(memfs, workers, 1, 7).Copy(context.Background(), &out, types.CopyRequest{Files: files})
		require.NoError(t, err, "workers=%d", workers)

		want := testutil.Concat(inputs...)
		assert.Equal(t, int64(len(want)), n, "workers=%d", workers)
		assert.Equal(t, want, out.Bytes(), "workers=%d", workers)
	}
}

func TestCopyDuplicateInputs(t *testing.T) {
	memfs := filesystem.NewMemory()
	a := testutil.Input{Name: "a", Size: 40}
	b := testutil.Input{Name: "b", Size: 30}
	files := testutil.WriteInputs(t, memfs, "/in", a, b)
	files = append(files, files[0])

	var out bytes.Buffer
	_, err := newExecutor(memfs, 2, 2, 16).Copy(context.Background(), &out, types.CopyRequest{Files: files})
	require.NoError(t, err)
	assert.Equal(t, testutil.Concat(a, b, a), out.Bytes())
}

func TestCopyStartIndex(t *testing.T) {
	memfs := filesystem.NewMemory()
	inputs := []testutil.Input{{Name: "a", Size: 50}, {Name: "b", Size: 100}, {Name: "c", Size: 25}}
	files := testutil.WriteInputs(t, memfs, "/in", inputs...)
	counter := progress.NewCounter()

	var out bytes.Buffer
	n, err := newExecutor(memfs, 0, 0, 0).Copy(context.Background(), &out, types.CopyRequest{
		Files:       files,
		StartIndex:  1,
		StartOffset: 50,
		Progress:    counter,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(125), n)
	assert.Equal(t, testutil.Concat(inputs[1:]...), out.Bytes())
	assert.Equal(t, int64(125), counter.Current())
}

func TestCopyStartIndexBounds(t *testing.T) {
	ex := newExecutor(filesystem.NewMemory(), 1, 1, 1)
	files := []string{"/a", "/b"}

	n, err := ex.Copy(context.Background(), &bytes.Buffer{}, types.CopyRequest{Files: files, StartIndex: 2})
	require.NoError(t, err, "start index equal to len(files) copies nothing")
	assert.Zero(t, n)

	for _, idx := range []int{-1, 3} {
		_, err := ex.Copy(context.Background(), &bytes.Buffer{}, types.CopyRequest{Files: files, StartIndex: idx})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "index %d: %v", idx, err)
	}
}

func TestCopyEmptyList(t *testing.T) {
	counter := progress.NewCounter()
	var out bytes.Buffer

	n, err := newExecutor(filesystem.NewMemory(), 1, 1, 1).Copy(context.Background(), &out, types.CopyRequest{Progress: counter})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
	assert.Zero(t, counter.Current())
}

func TestCopyBufferSizeOverridesChunkSize(t *testing.T) {
	memfs := filesystem.NewMemory()
	files := testutil.WriteInputs(t, memfs, "/in", testutil.Input{Name: "a", Size: 100})

	out := &recordingWriter{}
	_, err := newExecutor(memfs, 1, 1, 64).Copy(context.Background(), out, types.CopyRequest{Files: files, BufferSize: 30})
	require.NoError(t, err)
	assert.Equal(t, []int{30, 30, 30, 10}, out.sizes)
}

func TestCopyMissingInput(t *testing.T) {
	memfs := filesystem.NewMemory()
	files := testutil.WriteInputs(t, memfs, "/in", testutil.Input{Name: "a", Size: 10})
	files = append(files, "/in/missing", "/in/a")

	var out bytes.Buffer
	_, err := newExecutor(memfs, 1, 1, 4).Copy(context.Background(), &out, types.CopyRequest{Files: files})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess), "got %v", err)
	assert.Equal(t, "/in/missing", errors.GetErrorDetails(err)["path"])
	assert.LessOrEqual(t, out.Len(), 10, "nothing after the missing input is written")
}

func TestCopyWriteFailure(t *testing.T) {
	memfs := filesystem.NewMemory()
	files := testutil.WriteInputs(t, memfs, "/in",
		testutil.Input{Name: "a", Size: 64},
		testutil.Input{Name: "b", Size: 64},
	)
	boom := stderrors.New("disk full")

	n, err := newExecutor(memfs, 2, 1, 16).Copy(context.Background(), &failingWriter{limit: 80, err: boom}, types.CopyRequest{Files: files})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite), "got %v", err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, files[1], errors.GetErrorDetails(err)["path"])
	assert.Equal(t, int64(80), n)
}

func TestCopyKeepsTaggedWriteErrors(t *testing.T) {
	memfs := filesystem.NewMemory()
	files := testutil.WriteInputs(t, memfs, "/in", testutil.Input{Name: "a", Size: 10})
	codecErr := errors.New(errors.ErrCodecWrite, "encoder failed")

	_, err := newExecutor(memfs, 1, 1, 4).Copy(context.Background(), &failingWriter{err: codecErr}, types.CopyRequest{Files: files})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodecWrite), "got %v", err)
}

func TestCopyCancelled(t *testing.T) {
	memfs := filesystem.NewMemory()
	files := testutil.WriteInputs(t, memfs, "/in", testutil.Input{Name: "a", Size: 10})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newExecutor(memfs, 1, 1, 4).Copy(ctx, &bytes.Buffer{}, types.CopyRequest{Files: files})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopy), "got %v", err)
	assert.ErrorIs(t, err, context.Canceled)
}

// syncBuffer guards log output written from reader goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestCopyLogsQueueWait(t *testing.T) {
	memfs := filesystem.NewMemory()
	inputs := []testutil.Input{{Name: "a", Size: 64}, {Name: "b", Size: 64}}
	files := testutil.WriteInputs(t, memfs, "/in", inputs...)

	logs := &syncBuffer{}
	ex := executor.New(executor.Options{
		Workers:    2,
		QueueDepth: 1,
		ChunkSize:  8,
		FS:         memfs,
		Logger:     zerolog.New(logs).Level(zerolog.TraceLevel),
	})

	out := &recordingWriter{delay: 5 * time.Millisecond}
	_, err := ex.Copy(context.Background(), out, types.CopyRequest{Files: files, QueueWait: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, testutil.Concat(inputs...), out.Bytes())
	assert.Contains(t, logs.String(), "Queue full, waiting for writer")
	assert.Contains(t, logs.String(), "Copy finished")
}
