package domain

import "fmt"

// ValidationError reports malformed or missing input, caught before any
// mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// AuthorizationError reports an ownership mismatch between the acting user
// and the record.
type AuthorizationError struct {
	Resource string
}

func (e AuthorizationError) Error() string {
	return fmt.Sprintf("not allowed to access this %s", e.Resource)
}

// EmptyCartError is returned when an operation requires a populated cart.
type EmptyCartError struct{}

func (e EmptyCartError) Error() string {
	return "cart is empty"
}

// UpstreamError wraps a failure from an external collaborator (object store,
// payment gateway, mail delivery). One attempt per request, no retries.
type UpstreamError struct {
	Service string
	Err     error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}
