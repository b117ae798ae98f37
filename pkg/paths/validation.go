package paths

import (
	"strings"

	"github.com/taoziyu97/sra-tools/pkg/errors"
)

// MaxPathLength is the longest path accepted, the common PATH_MAX.
const MaxPathLength = 4096

// ValidatePath rejects paths no filesystem call could succeed with:
// empty paths, embedded null bytes and paths longer than MaxPathLength.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes").
			WithDetail("path", strings.ReplaceAll(path, "\x00", `\0`))
	}

	if len(path) > MaxPathLength {
		return errors.Newf(errors.ErrInvalidInput, "path exceeds maximum length of %d", MaxPathLength).
			WithDetail("length", len(path))
	}

	return nil
}
