// Package errs define custom error types and utilities.
//
// Two layers of errors live here:
//   - DomainError is raised by the service layer. It knows nothing about
//     HTTP and only carries a kind (rule violation or not found), a stable
//     machine code and a human-readable message.
//   - HTTPError is the response shape written by the global error handler.
//
// DomainError.HTTPError() is the single translation point between the two.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindRuleViolation marks malformed input or a failed business precondition.
	KindRuleViolation Kind = iota + 1

	// KindNotFound marks an id-addressed operation on a missing record.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindRuleViolation:
		return "rule_violation"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// DomainError is a business-level failure raised by services.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// HTTPError translates the domain error into its response representation.
func (e *DomainError) HTTPError() *HTTPError {
	code := e.Code

	switch e.Kind {
	case KindNotFound:
		return NewNotFoundError(e.Message, true, &code)
	default:
		return NewBadRequestError(e.Message, true, &code, nil, nil)
	}
}

// NewRuleViolation creates a rule-violation domain error.
func NewRuleViolation(code, format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    KindRuleViolation,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewNotFound creates a not-found domain error for entity with the given id.
//
//	NewNotFound("Booking", id) -> code "BOOKING_NOT_FOUND", "Booking with ID <id> not found"
func NewNotFound(entity string, id fmt.Stringer) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    MakeUpperCaseWithUnderscores(entity) + "_NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// IsKind reports whether err wraps a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}
