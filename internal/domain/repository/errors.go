package repository

import "errors"

// Sentinel errors shared by every repository implementation. Services map
// these to API error responses; implementations translate driver errors
// (e.g. unique or foreign key violations) into them.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate value")
	ErrInvalidReference = errors.New("referenced row does not exist")
)
