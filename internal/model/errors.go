package model

import "errors"

var (
	// ErrNotInitialized is returned when the store is used before Connect succeeded.
	ErrNotInitialized = errors.New("store not initialized")
	// ErrMalformedInput marks a request body that does not have the required structure.
	ErrMalformedInput = errors.New("malformed input")
	// ErrNotFound is returned by stores when no record carries the identifier.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidStoreID is returned by stores that cannot parse an identifier.
	ErrInvalidStoreID = errors.New("invalid store id")
)
