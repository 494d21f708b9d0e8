package domain

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySaved is returned when a (user, article) bookmark
	// already exists.
	ErrAlreadySaved = errors.New("article already saved")

	// ErrImageRequired is returned when a publish carries no media.
	ErrImageRequired = errors.New("image is required")

	// ErrInvalidQuery is returned for malformed feed queries.
	ErrInvalidQuery = errors.New("invalid feed query")

	// ErrUnauthorized is returned when no valid identity is presented.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the session lacks the admin role.
	ErrForbidden = errors.New("forbidden")
)
