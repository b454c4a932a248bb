package catalog

import "errors"

var (
	// ErrNotFound indicates the catalog has no entry for the requested code,
	// identity or curriculum version.
	ErrNotFound = errors.New("catalog entry not found")

	// ErrUnavailable indicates the catalog server is unreachable.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrTimeout indicates a catalog call exceeded the configured timeout.
	ErrTimeout = errors.New("catalog request timed out")

	// ErrUnexpectedStatus indicates a non-success HTTP status other than 404.
	ErrUnexpectedStatus = errors.New("unexpected catalog status")

	// ErrInvalidResponse indicates the response body could not be decoded.
	ErrInvalidResponse = errors.New("invalid catalog response")
)
