package repositories

import "errors"

// ErrNotFound is returned when a requested row does not exist or is excluded
// by an active-row filter. Services translate it into the error taxonomy.
var ErrNotFound = errors.New("record not found")
