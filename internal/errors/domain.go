package errors

import "fmt"

// DomainError is an expected business outcome carrying the stable numeric
// status code exposed to callers. It is returned, never panicked, and never
// wraps infrastructure errors.
type DomainError struct {
	Code    int
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// WithMessage returns a copy of the error with a substituted message, used
// when a rule or the message catalog supplies localized text.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg}
}
