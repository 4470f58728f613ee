package identity

import "errors"

var (
	// ErrMalformedAddress is returned when the input is not a syntactically valid email address
	ErrMalformedAddress = errors.New("malformed email address")

	// ErrDomainRejected is returned when the address, after alias resolution,
	// does not belong to the required organizational domain
	ErrDomainRejected = errors.New("email domain not permitted")
)
