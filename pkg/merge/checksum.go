package merge

import (
	"encoding/hex"
	"io"

	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/types"
	"github.com/zeebo/blake3"
)

// Checksum returns the hex BLAKE3 digest of the file at path.
func Checksum(fs types.FS, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", errors.WrapOp(err, errors.ErrFileAccess, "open", path)
	}
	defer func() { _ = f.Close() }()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", errors.WrapOp(err, errors.ErrFileAccess, "read", path)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
