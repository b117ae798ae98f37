package types

import (
	"context"
	"io"
	"io/fs"
	"time"
)

// FS is the filesystem interface required for merge operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// File is an open file handed out by an FS. Both *os.File and afero.File
// satisfy it.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	Name() string
	Stat() (fs.FileInfo, error)
}

// Progress receives byte-count deltas while a merge is running. The
// cumulative total reported by Current never decreases.
type Progress interface {
	// Start announces the expected number of bytes. A zero total is valid.
	Start(total int64)

	// Add records n more bytes as done.
	Add(n int64)

	// Current returns the cumulative byte count.
	Current() int64

	// Stop finishes reporting. Further Adds are ignored by display
	// implementations but still counted.
	Stop()
}

// CopyRequest describes one invocation of a Copier.
type CopyRequest struct {
	// Files is the complete, ordered input list.
	Files []string

	// StartIndex is the first entry of Files to copy.
	StartIndex int

	// StartOffset is the number of bytes already present in the output
	// before this copy begins.
	StartOffset int64

	// BufferSize overrides the read chunk size when > 0.
	BufferSize int

	// QueueWait bounds how long a reader blocks on a full queue before
	// retrying.
	QueueWait time.Duration

	// Progress receives a delta after every chunk written. May be nil.
	Progress Progress
}

// Copier copies Files[StartIndex:] into dst in list order. It never closes
// dst and returns the number of bytes it wrote.
type Copier interface {
	Copy(ctx context.Context, dst io.Writer, req CopyRequest) (int64, error)
}
