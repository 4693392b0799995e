package dataset

import "errors"

var (
	// ErrDataUnavailable reports that the remote source has no data for
	// the requested indicator, location, or year combination.
	ErrDataUnavailable = errors.New("no data available for request")

	// ErrEmptyTable reports that a table has no rows to work with,
	// typically because every observation was missing.
	ErrEmptyTable = errors.New("table has no rows")
)
