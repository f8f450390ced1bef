package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrUnsupportedSource is returned when no fetcher handles a source's scheme.
	ErrUnsupportedSource = errors.New("unsupported source")
)

// DataLoadError reports that a source could not be fetched or parsed.
// Nothing downstream of a failed load is rendered.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
