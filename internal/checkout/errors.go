package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrMissingDetails     = errors.New("delivery details are missing")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrAlreadyNavigated   = errors.New("checkout already left this screen")
)

// SubmitError wraps a failed order write.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return "submit order failed"
	}
	return "submit order: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Message is the text shown to the user after a failed write.
func (e *SubmitError) Message() string {
	reason := "Unknown error"
	if e.Err != nil && e.Err.Error() != "" {
		reason = e.Err.Error()
	}
	return fmt.Sprintf("There was an error placing your order: %s. Please try again.", reason)
}
