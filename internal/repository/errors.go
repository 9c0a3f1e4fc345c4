// Package repository implements the MongoDB-backed document store for the
// four marketplace collections. Driver errors are converted to the domain
// errors below so callers never depend on mongo error types.
package repository

import "errors"

var (
	// ErrNotFound is returned when a document matching the filter does not
	// exist, including compound owner filters on update and delete.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned on unique index violations (email).
	ErrDuplicate = errors.New("duplicate: entity already exists")
)
