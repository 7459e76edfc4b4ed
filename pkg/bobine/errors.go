package bobine

import (
	"errors"
	"fmt"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// Errors shared with the parsing packages.
var (
	ErrSourceNotFound     = models.ErrSourceNotFound
	ErrAmbiguousSource    = models.ErrAmbiguousSource
	ErrBlockNotRecognized = models.ErrBlockNotRecognized
	ErrInvalidMassInput   = models.ErrInvalidMassInput
)

// ErrSectionUnavailable indicates a requested section cannot be built
// from the data at hand.
var ErrSectionUnavailable = errors.New("section unavailable")

// ErrUnknownSection indicates a request names a section no source offers.
var ErrUnknownSection = errors.New("unknown section")

// SourceError represents an error while loading or rendering one source.
type SourceError struct {
	Source    models.Source
	Component string // "load", "check", "render"
	Err       error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s error in source %q: %v", e.Component, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(src models.Source, component string, err error) *SourceError {
	return &SourceError{
		Source:    src,
		Component: component,
		Err:       err,
	}
}
