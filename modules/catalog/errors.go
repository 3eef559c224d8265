package catalog

import "errors"

// Sentinel errors for catalog operations. The messages travel across the
// service container, so the API layer matches on them to pick status codes.
var (
	// ErrBookNotFound is returned when the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrNotOwner is returned when a caller tries an owner-only operation on
	// someone else's listing.
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrOwnListing is returned when an owner tries to request an exchange
	// on their own listing.
	ErrOwnListing = errors.New("cannot request your own listing")

	// ErrValidation is returned when a required field is missing or an enum
	// value is outside its closed set.
	ErrValidation = errors.New("validation failed")
)
