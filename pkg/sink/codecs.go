package sink

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// encoderFunc wraps w in a streaming encoder. Level 0 selects the codec
// default.
type encoderFunc func(w io.Writer, level int) (io.WriteCloser, error)

var encoders = map[types.CompressionMode]encoderFunc{
	types.CompressionGzip:  newGzip,
	types.CompressionBzip2: newBzip2,
	types.CompressionZstd:  newZstd,
	types.CompressionLz4:   newLz4,
}

func newGzip(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return zw, nil
}

func newBzip2(w io.Writer, level int) (io.WriteCloser, error) {
	conf := &bzip2.WriterConfig{Level: level}
	if level == 0 {
		conf.Level = bzip2.DefaultCompression
	}
	zw, err := bzip2.NewWriter(w, conf)
	if err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}
	return zw, nil
}

func newZstd(w io.Writer, level int) (io.WriteCloser, error) {
	var opts []zstd.EOption
	if level != 0 {
		if level < 1 || level > 22 {
			return nil, fmt.Errorf("zstd: level %d out of range [1,22]", level)
		}
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	zw, err := zstd.NewWriter(w, opts...)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return zw, nil
}

var lz4Levels = []lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

func newLz4(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if level != 0 {
		if level < 1 || level > len(lz4Levels) {
			return nil, fmt.Errorf("lz4: level %d out of range [1,%d]", level, len(lz4Levels))
		}
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level-1])); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
	}
	return zw, nil
}
