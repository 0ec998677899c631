package directory

import "errors"

var (
	// ErrNotFound indicates the identity has no record
	ErrNotFound = errors.New("directory.not_found")

	// ErrStorage wraps failures of the underlying backend
	ErrStorage = errors.New("directory.storage_failed")

	// ErrUnknownDriver indicates an unsupported STORAGE_DRIVER value
	ErrUnknownDriver = errors.New("directory.unknown_driver")
)
