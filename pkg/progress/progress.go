package progress

import (
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Mode selects a reporter.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeBar  Mode = "bar"
	ModeLog  Mode = "log"
	ModeNone Mode = "none"
)

// Modes lists the accepted modes.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeBar, ModeLog, ModeNone}
}

// ParseMode parses a mode name; the empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeBar, ModeLog, ModeNone:
		return m, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown progress mode %q", s).
		WithDetail("accepted", Modes())
}

// New returns the reporter for mode. ModeAuto draws a bar when out is a
// terminal and logs otherwise.
func New(mode Mode, out io.Writer, logger zerolog.Logger) (types.Progress, error) {
	if mode == ModeAuto {
		if IsTerminal(out) {
			mode = ModeBar
		} else {
			mode = ModeLog
		}
	}

	switch mode {
	case ModeBar:
		return NewBar(out, "Merging"), nil
	case ModeLog:
		return NewTicker(logger, DefaultInterval), nil
	case ModeNone:
		return NewCounter(), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown progress mode %q", string(mode))
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
