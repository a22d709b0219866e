package nasus

import "errors"

var (
	// ErrNotFound is returned when a filesystem entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnsafePath is returned when a request path fails safety validation
	ErrUnsafePath = errors.New("unsafe path")
)
