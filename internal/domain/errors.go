package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrNotConfigured    = errors.New("not configured")
)

// InvalidRequestError rejects malformed input. The reason is safe to
// show to the client.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return e.Reason }

func InvalidRequest(reason string) error { return &InvalidRequestError{Reason: reason} }

func IsInvalidRequest(err error) bool {
	var ire *InvalidRequestError
	return errors.As(err, &ire)
}
