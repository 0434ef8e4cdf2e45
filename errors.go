package circuits

import "errors"

// Common errors for circuit registry and store operations.
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidStoreType   = errors.New("invalid store type")
	ErrInvalidHandleEntry = errors.New("invalid handle entry")
	ErrUnknownCircuit     = errors.New("circuit not hosted by this directory")
	ErrStoreClosed        = errors.New("store closed")
)
