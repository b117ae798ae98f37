package merge

import (
	"strings"

	"github.com/taoziyu97/sra-tools/pkg/errors"
)

// CompressedAppendPolicy decides what happens when append is requested for
// a compressed output, which can only ever be written from scratch.
type CompressedAppendPolicy string

const (
	// PolicyWarn ignores the append flag and records a warning.
	PolicyWarn CompressedAppendPolicy = "warn"

	// PolicyError refuses the request.
	PolicyError CompressedAppendPolicy = "error"
)

// ParsePolicy parses a policy name; the empty string means PolicyWarn.
func ParsePolicy(s string) (CompressedAppendPolicy, error) {
	switch p := CompressedAppendPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyWarn, nil
	case PolicyWarn, PolicyError:
		return p, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown compressed append policy %q", s).
		WithDetail("accepted", []string{string(PolicyWarn), string(PolicyError)})
}
