package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrInvalidAddress     = errors.New("Invalid address")
	ErrUnsupportedChain   = errors.New("unsupported chain")
	ErrUnresolvedName     = errors.New("name could not be resolved")
	ErrMalformedPayload   = errors.New("malformed balance payload")
	ErrUnsupportedBackend = errors.New("unsupported balance backend")
	// ErrStaleGeneration is returned for a batch superseded by a newer input
	ErrStaleGeneration = errors.New("stale carousel generation")
)
