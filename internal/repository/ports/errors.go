package ports

import "errors"

var (
	// ErrNotFound is returned when a record or stored value does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUpstream wraps any non-2xx answer from the places API.
	ErrUpstream = errors.New("places api returned an error")
	// ErrUnavailable wraps transport failures reaching the places API.
	ErrUnavailable = errors.New("places api unreachable")
)
