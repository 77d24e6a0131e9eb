// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across key-value backends

package storage

import "errors"

// ErrNotFound is returned when a slot holds no value.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the storage medium cannot be used at all.
var ErrUnavailable = errors.New("storage unavailable")

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = errors.New("storage is closed")
