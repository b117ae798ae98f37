package sink

import (
	"bufio"
	"io"

	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Layer is one decorator in a sink stack.
type Layer interface {
	io.Writer
	Name() string

	// Close finalizes this layer only. It must not close the layer below.
	Close() error
}

type fileLayer struct {
	f types.File
}

func (l *fileLayer) Write(p []byte) (int, error) { return l.f.Write(p) }
func (l *fileLayer) Name() string                { return "file" }
func (l *fileLayer) Close() error                { return l.f.Close() }

type bufferLayer struct {
	bw *bufio.Writer
}

func newBufferLayer(w io.Writer, size int) *bufferLayer {
	return &bufferLayer{bw: bufio.NewWriterSize(w, size)}
}

func (l *bufferLayer) Write(p []byte) (int, error) { return l.bw.Write(p) }
func (l *bufferLayer) Name() string                { return "buffer" }
func (l *bufferLayer) Close() error                { return l.bw.Flush() }

type encoderLayer struct {
	name string
	enc  io.WriteCloser
}

func (l *encoderLayer) Write(p []byte) (int, error) { return l.enc.Write(p) }
func (l *encoderLayer) Name() string                { return l.name }
func (l *encoderLayer) Close() error                { return l.enc.Close() }
