package config

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/taoziyu97/sra-tools/pkg/display"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/merge"
	"github.com/taoziyu97/sra-tools/pkg/progress"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Config is the complete fqconcat configuration.
type Config struct {
	Merge  Merge  `koanf:"merge" toml:"merge" yaml:"merge"`
	Copy   Copy   `koanf:"copy" toml:"copy" yaml:"copy"`
	Output Output `koanf:"output" toml:"output" yaml:"output"`
}

// Merge holds the strategy settings
type Merge struct {
	BufferSize       ByteSize `koanf:"buffer_size" toml:"buffer_size" yaml:"buffer_size"`
	Compression      string   `koanf:"compression" toml:"compression" yaml:"compression"`
	Level            int      `koanf:"level" toml:"level" yaml:"level"`
	Force            bool     `koanf:"force" toml:"force" yaml:"force"`
	Append           bool     `koanf:"append" toml:"append" yaml:"append"`
	CompressedAppend string   `koanf:"compressed_append" toml:"compressed_append" yaml:"compressed_append"`
	DisableRename    bool     `koanf:"disable_rename" toml:"disable_rename" yaml:"disable_rename"`
}

// Copy holds the copy engine settings
type Copy struct {
	Workers    int      `koanf:"workers" toml:"workers" yaml:"workers"`
	ChunkSize  ByteSize `koanf:"chunk_size" toml:"chunk_size" yaml:"chunk_size"`
	QueueDepth int      `koanf:"queue_depth" toml:"queue_depth" yaml:"queue_depth"`
	QueueWait  Duration `koanf:"queue_wait" toml:"queue_wait" yaml:"queue_wait"`
}

// Output holds reporting settings
type Output struct {
	Format   string `koanf:"format" toml:"format" yaml:"format"`
	Progress string `koanf:"progress" toml:"progress" yaml:"progress"`
	Checksum bool   `koanf:"checksum" toml:"checksum" yaml:"checksum"`
}

// ByteSize is a byte count written as "1MiB" or a plain integer.
type ByteSize int64

func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(humanize.IBytes(uint64(b))), nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	n, err := humanize.ParseBytes(string(text))
	if err != nil {
		return err
	}
	*b = ByteSize(n)
	return nil
}

// Int returns the size as an int.
func (b ByteSize) Int() int {
	return int(b)
}

// Duration is a time.Duration written as "500ms".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CompressionMode returns the parsed merge.compression value.
func (c *Config) CompressionMode() (types.CompressionMode, error) {
	return types.ParseCompressionMode(c.Merge.Compression)
}

// Validate checks every value and returns the first problem found.
func (c *Config) Validate() error {
	if c.Merge.BufferSize < 0 {
		return invalid("merge.buffer_size", c.Merge.BufferSize, "must not be negative")
	}
	mode, err := c.CompressionMode()
	if err != nil {
		return invalid("merge.compression", c.Merge.Compression, err.Error())
	}
	if c.Merge.Level < 0 {
		return invalid("merge.level", c.Merge.Level, "must not be negative")
	}
	if err := mode.ValidateLevel(c.Merge.Level); err != nil {
		return invalid("merge.level", c.Merge.Level, err.Error())
	}
	if _, err := merge.ParsePolicy(c.Merge.CompressedAppend); err != nil {
		return invalid("merge.compressed_append", c.Merge.CompressedAppend, "must be warn or error")
	}

	if c.Copy.Workers < 1 {
		return invalid("copy.workers", c.Copy.Workers, "must be at least 1")
	}
	if c.Copy.ChunkSize < 1 {
		return invalid("copy.chunk_size", c.Copy.ChunkSize, "must be positive")
	}
	if c.Copy.QueueDepth < 1 {
		return invalid("copy.queue_depth", c.Copy.QueueDepth, "must be at least 1")
	}
	if c.Copy.QueueWait < 0 {
		return invalid("copy.queue_wait", c.Copy.QueueWait.Std().String(), "must not be negative")
	}

	if _, err := display.ParseFormat(c.Output.Format); err != nil {
		return invalid("output.format", c.Output.Format, err.Error())
	}
	if _, err := progress.ParseMode(c.Output.Progress); err != nil {
		return invalid("output.progress", c.Output.Progress, err.Error())
	}
	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "invalid %s: %s", key, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
