package sink

import (
	"io"
	"os"
	"path/filepath"

	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/logging"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// FileMode is the permission used for new outputs.
const FileMode os.FileMode = 0664

// Sink is the layered writable destination of a merge.
type Sink struct {
	path    string
	layers  []Layer // innermost first
	written int64
	closed  bool
}

// Build creates the output described by target and stacks the buffer and
// encoder layers on top of it. On success the file exists on disk even
// before any payload is written.
func Build(fs types.FS, target types.OutputTarget) (*Sink, error) {
	logger := logging.GetLogger("sink")

	if target.Path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output path is empty")
	}
	if target.BufferSize < 0 {
		return nil, errors.Newf(errors.ErrBuffer, "buffer size %d is negative", target.BufferSize)
	}
	newEncoder, compressed := encoders[target.Compression]
	if target.Compression.Compressed() && !compressed {
		return nil, errors.Newf(errors.ErrCodecInit, "unsupported compression mode %s", target.Compression)
	}
	if err := target.Compression.ValidateLevel(target.Level); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodecInit, "invalid compression level").
			WithDetail("level", target.Level)
	}

	path := target.FinalPath()
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.WrapOp(err, errors.ErrDirCreate, "mkdir", filepath.Dir(path))
	}

	flag := os.O_WRONLY | os.O_CREATE
	if target.CreateMode == types.CreateTruncate {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_EXCL
	}
	f, err := fs.OpenFile(path, flag, FileMode)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.WrapOp(err, errors.ErrAlreadyExists, "create", path)
		}
		return nil, errors.WrapOp(err, errors.ErrFileCreate, "create", path)
	}

	s := &Sink{path: path}
	s.push(&fileLayer{f: f})
	if target.BufferSize > 0 {
		s.push(newBufferLayer(s.top(), target.BufferSize))
	}
	if compressed {
		enc, err := newEncoder(s.top(), target.Level)
		if err != nil {
			_ = s.Close()
			return nil, errors.WrapOp(err, errors.ErrCodecInit, "init "+target.Compression.String(), path).
				WithDetail("level", target.Level)
		}
		s.push(&encoderLayer{name: target.Compression.String(), enc: enc})
	}

	logger.Debug().
		Str("path", path).
		Str("createMode", target.CreateMode.String()).
		Strs("layers", s.Layers()).
		Msg("Sink built")

	return s, nil
}

// Open reopens an existing file for writing without truncating it and
// positions it at offset. A buffer layer is added when bufferSize > 0.
func Open(fs types.FS, path string, offset int64, bufferSize int) (*Sink, error) {
	if path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output path is empty")
	}
	if bufferSize < 0 {
		return nil, errors.Newf(errors.ErrBuffer, "buffer size %d is negative", bufferSize)
	}

	f, err := fs.OpenFile(path, os.O_WRONLY, FileMode)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapOp(err, errors.ErrFileNotFound, "open", path)
		}
		return nil, errors.WrapOp(err, errors.ErrFileAccess, "open", path)
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, errors.WrapOp(err, errors.ErrFileAccess, "seek", path).WithDetail("offset", offset)
	}

	s := &Sink{path: path}
	s.push(&fileLayer{f: f})
	if bufferSize > 0 {
		s.push(newBufferLayer(s.top(), bufferSize))
	}

	logger := logging.GetLogger("sink")
	logger.Debug().
		Str("path", path).
		Int64("offset", offset).
		Strs("layers", s.Layers()).
		Msg("Sink reopened")

	return s, nil
}

func (s *Sink) push(l Layer) {
	s.layers = append(s.layers, l)
}

func (s *Sink) top() Layer {
	return s.layers[len(s.layers)-1]
}

// Write writes through the outermost layer.
func (s *Sink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, errors.WrapOp(os.ErrClosed, errors.ErrFileWrite, "write", s.path)
	}
	top := s.top()
	n, err := top.Write(p)
	s.written += int64(n)
	if err != nil {
		code := errors.ErrFileWrite
		if _, ok := top.(*encoderLayer); ok {
			code = errors.ErrCodecWrite
		}
		return n, errors.WrapOp(err, code, "write", s.path)
	}
	return n, nil
}

// Close finalizes every layer, outermost first. All layers are closed even
// if one fails; the first error is returned.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var first error
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		if err := l.Close(); err != nil && first == nil {
			code := errors.ErrFileWrite
			if _, ok := l.(*encoderLayer); ok {
				code = errors.ErrCodecWrite
			}
			first = errors.WrapOp(err, code, "close "+l.Name(), s.path)
		}
	}
	return first
}

// Path returns the on-disk path, including any compression suffix.
func (s *Sink) Path() string {
	return s.path
}

// Written returns the number of payload bytes accepted by the outermost
// layer.
func (s *Sink) Written() int64 {
	return s.written
}

// Layers returns the layer names, innermost first.
func (s *Sink) Layers() []string {
	names := make([]string, len(s.layers))
	for i, l := range s.layers {
		names[i] = l.Name()
	}
	return names
}
