package lib

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a single part lookup failed.
type ErrorKind string

const (
	InvalidInput      ErrorKind = "INVALID_INPUT"
	Network           ErrorKind = "NETWORK"
	HttpStatus        ErrorKind = "HTTP_STATUS"
	MalformedResponse ErrorKind = "MALFORMED_RESPONSE"
	NotFound          ErrorKind = "NOT_FOUND"
)

const (
	msgNoSuchPart   = "No such part found. Check part number or URL!"
	msgLookupFailed = "Lookup failed. Check your connection and try again."
)

// LookupError is returned for every failed lookup. None of the kinds are
// retried; each one ends the attempt.
type LookupError struct {
	Kind    ErrorKind
	Input   string
	Status  int
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error { return e.Err }

// UserMessage is the wording the CLI shows. Transport-level failures are
// collapsed into one message; a missing part and bad input share another.
func (e *LookupError) UserMessage() string {
	switch e.Kind {
	case NotFound, InvalidInput:
		return msgNoSuchPart
	default:
		return msgLookupFailed
	}
}

func newInvalidInput(input string) *LookupError {
	return &LookupError{
		Kind:    InvalidInput,
		Input:   input,
		Message: fmt.Sprintf("no part code in %q", input),
	}
}

func newNetwork(code string, err error) *LookupError {
	return &LookupError{
		Kind:    Network,
		Input:   code,
		Message: "request to vendor failed",
		Err:     err,
	}
}

func newHttpStatus(code string, status int) *LookupError {
	return &LookupError{
		Kind:    HttpStatus,
		Input:   code,
		Status:  status,
		Message: fmt.Sprintf("vendor answered with status %d", status),
	}
}

func newMalformed(code string, err error) *LookupError {
	return &LookupError{
		Kind:    MalformedResponse,
		Input:   code,
		Message: "response is not valid JSON",
		Err:     err,
	}
}

func newNotFound(code, reason string) *LookupError {
	return &LookupError{
		Kind:    NotFound,
		Input:   code,
		Message: reason,
	}
}

// IsKind reports whether err, or anything it wraps, is a LookupError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var lErr *LookupError
	if errors.As(err, &lErr) {
		return lErr.Kind == kind
	}
	return false
}

// UserMessage returns the message to show for err. Errors that are not
// lookup errors are shown verbatim.
func UserMessage(err error) string {
	var lErr *LookupError
	if errors.As(err, &lErr) {
		return lErr.UserMessage()
	}
	return err.Error()
}
