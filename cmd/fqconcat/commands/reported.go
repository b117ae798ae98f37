package commands

import stderrors "errors"

// reportedError marks an error that has already been rendered for the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	return reportedError{err}
}

// Reported reports whether err was already shown to the user, so callers
// only need to set the exit status.
func Reported(err error) bool {
	var r reportedError
	return stderrors.As(err, &r)
}
