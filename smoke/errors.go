package smoke

import "errors"

// Errors reported by the probe.
var (
	ErrInvalidConfig    = errors.New("invalid smoke configuration")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingContent   = errors.New("expected content not rendered")
	ErrEmptyContent     = errors.New("static content is empty")
)
