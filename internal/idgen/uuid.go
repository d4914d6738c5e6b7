// Package idgen provides the host-side domain.IDGenerator implementation.
package idgen

import "github.com/google/uuid"

// UUID mints identifiers with google/uuid.
type UUID struct{}

// New returns a ready-to-use UUID generator.
func New() UUID { return UUID{} }

// NewID implements domain.IDGenerator.
func (UUID) NewID() string {
	return uuid.NewString()
}
