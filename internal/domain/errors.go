package domain

import "errors"

var (
	// ErrMissingInput reports an absent input file or directory.
	ErrMissingInput = errors.New("missing input")
	// ErrMissingColumn reports a required column absent from an input table.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptyResult reports that nothing survived filtering.
	ErrEmptyResult = errors.New("empty result")
)
