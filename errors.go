package coinsum

import "errors"

// Pipeline failures fall in three families. They are sentinel errors so that
// callers can test with errors.Is after any number of fmt.Errorf wrappings.
var (
	// ErrSourceUnavailable reports a source that is missing or unreadable.
	// It is a configuration fault: no retry will help.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMissingColumn reports a column absent from a source schema.
	ErrMissingColumn = errors.New("missing column")

	// ErrBadValue reports a cell that does not match the encoding its
	// transform expects.
	ErrBadValue = errors.New("bad value")
)
