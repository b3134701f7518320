package service

import "errors"

var (
	ErrInvalidPayload   = errors.New("invalid JSON payload")
	ErrConfig           = errors.New("server configuration error")
	ErrStoreUnavailable = errors.New("remote store error")
	ErrConflict         = errors.New("collection was modified concurrently, resubmit the summary")
	ErrCorruptStore     = errors.New("stored collection is not a valid JSON array")
)
