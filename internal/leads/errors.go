package leads

import "errors"

var (
	// ErrMissingField is returned when a required field is absent or empty
	ErrMissingField = errors.New("missing required fields")

	// ErrInvalidEmail is returned when the email fails syntactic validation
	ErrInvalidEmail = errors.New("invalid email")

	// ErrPersistence is returned when the durable write cannot be completed
	ErrPersistence = errors.New("lead store write failed")
)
