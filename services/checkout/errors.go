package checkout

import (
	"errors"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// SubmissionError means the order endpoint rejected the order or could not be reached.
// The cart is left as it was, so the user can try again.
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	return "order submission failed: " + e.Reason
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

var ErrSubmissionInProgress = errors.New("order submission already in progress")
