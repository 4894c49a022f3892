package repository

import "errors"

// ErrConflict reports a unique-key violation (e.g. duplicate email) raced
// past the service-level existence check.
var ErrConflict = errors.New("duplicate key")
