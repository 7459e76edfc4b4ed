package models

import "errors"

// ErrSourceNotFound indicates a source directory or file is missing.
var ErrSourceNotFound = errors.New("source not found")

// ErrAmbiguousSource indicates several files qualify for one source.
var ErrAmbiguousSource = errors.New("ambiguous source")

// ErrBlockNotRecognized indicates an expected block could not be located.
var ErrBlockNotRecognized = errors.New("block not recognized")

// ErrInvalidMassInput indicates a mass reading that makes yields meaningless.
var ErrInvalidMassInput = errors.New("invalid mass input")
