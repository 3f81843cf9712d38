package seo

import "github.com/rotisserie/eris"

var (
	// ErrValidation indicates a missing or malformed argument.
	ErrValidation = eris.New("invalid argument")

	// ErrNotFound indicates no matching profession, city or page exists.
	ErrNotFound = eris.New("resource not found")

	// ErrConfiguration indicates a required page template is missing.
	ErrConfiguration = eris.New("page template not configured")

	// ErrPersistenceConflict is returned by the store when a slug is already taken.
	ErrPersistenceConflict = eris.New("slug already exists")

	// ErrTrackingFailure marks a failed view count increment. It is only ever logged.
	ErrTrackingFailure = eris.New("view tracking failed")
)
