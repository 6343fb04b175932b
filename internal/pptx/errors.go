package pptx

import "errors"

var (
	// ErrInvalidContainer means a required top-level part is missing
	// from the package.
	ErrInvalidContainer = errors.New("pptx: invalid container structure")

	// ErrMalformedRelationships means the relationships part does not
	// have the expected document shape.
	ErrMalformedRelationships = errors.New("pptx: malformed relationships document")
)
