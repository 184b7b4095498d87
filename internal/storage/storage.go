// Package storage defines the Storage interface — the contract any
// database backend must satisfy to hold submitted registrations.
//
// The form's submit step and the HTTP handlers depend only on this
// interface, so tests can pass an in-memory fake instead of a database.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-registration/internal/types"
)

// ErrNotFound is returned when no registration matches the requested id.
var ErrNotFound = errors.New("registration not found")

// Storage is the database contract.
type Storage interface {
	// CreateRegistration inserts a submitted registration and returns the
	// auto-generated primary-key ID.
	CreateRegistration(reg types.Registration) (int64, error)

	// GetRegistrationByID fetches a single registration by primary key.
	// Returns an error wrapping ErrNotFound if there is no such row.
	GetRegistrationByID(id int64) (types.StoredRegistration, error)

	// GetRegistrations returns every stored registration, oldest first.
	// Returns an empty slice (not nil) if there are none.
	GetRegistrations() ([]types.StoredRegistration, error)

	// DeleteRegistrationByID removes a registration permanently.
	// Returns an error wrapping ErrNotFound if there is no such row.
	DeleteRegistrationByID(id int64) error
}
