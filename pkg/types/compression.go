package types

import (
	"fmt"
	"strings"
)

// CompressionMode selects the encoder wrapped around the output sink and the
// suffix appended to the output name.
type CompressionMode int

const (
	// CompressionNone writes the concatenation as-is.
	CompressionNone CompressionMode = iota

	// CompressionGzip wraps the sink in a gzip stream (".gz").
	CompressionGzip

	// CompressionBzip2 wraps the sink in a bzip2 stream (".bz2").
	CompressionBzip2

	// CompressionZstd wraps the sink in a zstd stream (".zst").
	CompressionZstd

	// CompressionLz4 wraps the sink in an LZ4 frame stream (".lz4").
	CompressionLz4
)

// String returns the human-readable name of a compression mode.
func (m CompressionMode) String() string {
	switch m {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionZstd:
		return "zstd"
	case CompressionLz4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Suffix returns the extension appended to the output path.
func (m CompressionMode) Suffix() string {
	switch m {
	case CompressionGzip:
		return ".gz"
	case CompressionBzip2:
		return ".bz2"
	case CompressionZstd:
		return ".zst"
	case CompressionLz4:
		return ".lz4"
	default:
		return ""
	}
}

// Compressed reports whether the mode adds an encoder layer.
func (m CompressionMode) Compressed() bool {
	return m != CompressionNone
}

// LevelRange returns the encoder levels accepted for m. Level 0 is always
// accepted and selects the codec default; CompressionNone ignores the level.
func (m CompressionMode) LevelRange() (min, max int) {
	switch m {
	case CompressionGzip, CompressionBzip2, CompressionLz4:
		return 1, 9
	case CompressionZstd:
		return 1, 22
	default:
		return 0, 0
	}
}

// ValidateLevel checks level against LevelRange.
func (m CompressionMode) ValidateLevel(level int) error {
	if level == 0 || !m.Compressed() {
		return nil
	}
	lo, hi := m.LevelRange()
	if level < lo || level > hi {
		return fmt.Errorf("%s level %d out of range [%d,%d]", m, level, lo, hi)
	}
	return nil
}

// ParseCompressionMode parses a compression mode from its name. The empty
// string means none; common aliases like "gz" and "bz2" are accepted.
func ParseCompressionMode(name string) (CompressionMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "bzip2", "bz2":
		return CompressionBzip2, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLz4, nil
	default:
		return CompressionNone, fmt.Errorf("unknown compression mode: %q", name)
	}
}

// CompressionModes lists every supported mode in declaration order.
func CompressionModes() []CompressionMode {
	return []CompressionMode{
		CompressionNone,
		CompressionGzip,
		CompressionBzip2,
		CompressionZstd,
		CompressionLz4,
	}
}
