package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrOverpayment is returned when a payment would exceed the remaining
	// balance. The ledger is left untouched.
	ErrOverpayment = errors.New("payment exceeds remaining balance")

	// ErrEditNotAllowed is returned when mutating a bill whose status
	// forbids it (paid or cancelled).
	ErrEditNotAllowed = errors.New("bill can no longer be modified")

	// ErrDuplicateSubmission is returned when a payment reuses an
	// idempotency key, or repeats the same amount from the same payer
	// within the duplicate window.
	ErrDuplicateSubmission = errors.New("duplicate payment submission")

	ErrBillNotFound    = errors.New("bill not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// ValidationError reports an invalid request field. It never indicates a
// storage problem.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a request-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
