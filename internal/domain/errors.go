package domain

import "errors"

var (
	// ErrGroupNotFound signals a lookup for an unknown function group id.
	ErrGroupNotFound = errors.New("function group not found")
	// ErrNoMatch signals that no function group scored above zero for a title.
	ErrNoMatch = errors.New("no matching function group")
	// ErrMalformedGroup signals a taxonomy entry that cannot produce queries.
	ErrMalformedGroup = errors.New("malformed function group")
	// ErrDuplicateGroup signals two taxonomy entries sharing an id.
	ErrDuplicateGroup = errors.New("duplicate function group id")
	// ErrInvalidVacancy signals a vacancy row that fails input validation.
	ErrInvalidVacancy = errors.New("invalid vacancy input")
)
