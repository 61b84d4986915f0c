package arnak

import (
	"fmt"
	"strings"
)

// TransportError represents a failure at the network level: DNS, TLS,
// connection refused, or a request that could not be sent at all.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// HTTPError represents a response with an unexpected status code.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// TimeoutError is returned when the collection endpoint kept answering
// "request accepted, not ready" until the retry budget ran out. It is
// distinct from HTTPError so callers can tell "the server never finished"
// apart from "the server rejected the request".
type TimeoutError struct {
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("data still not ready after %d attempts", e.Attempts)
}

// CancelledError is returned when the caller's context is cancelled during
// a request or a retry wait. It unwraps to the underlying context error.
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("request cancelled: %v", e.Cause)
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}

// ParseError represents malformed XML in a response body.
type ParseError struct {
	Message string
	// Snippet holds the beginning of the offending document, for diagnosis.
	Snippet string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// DecodeErrorKind classifies a mismatch between the expected and actual
// shape of a well-formed response.
type DecodeErrorKind int

const (
	// MissingField means a required attribute or element was absent.
	MissingField DecodeErrorKind = iota
	// InvalidNumber means a numeric field failed to parse.
	InvalidNumber
	// UnexpectedValue means a field held a value outside its known set.
	UnexpectedValue
)

// DecodeError represents a structural or semantic mismatch between the
// expected response schema and what the server actually returned.
type DecodeError struct {
	Kind    DecodeErrorKind
	Element string
	Field   string
	Value   string
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("missing field %q in element <%s>", e.Field, e.Element)
	case InvalidNumber:
		return fmt.Sprintf("invalid number %q for field %q in element <%s>", e.Value, e.Field, e.Element)
	default:
		return fmt.Sprintf("unexpected value %q for field %q in element <%s>", e.Value, e.Field, e.Element)
	}
}

// APIError represents an in-band error payload returned by the API with a
// 200 status, as a list of human readable messages.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	switch len(e.Messages) {
	case 0:
		return "got error from API with no message"
	case 1:
		return fmt.Sprintf("got error from API: %s", e.Messages[0])
	default:
		return fmt.Sprintf("got errors from API: %s", strings.Join(e.Messages, ", "))
	}
}

// UnknownUsernameError is returned when a collection is requested for a
// username that does not exist.
type UnknownUsernameError struct {
	Username string
}

func (e *UnknownUsernameError) Error() string {
	if e.Username == "" {
		return "username not found"
	}
	return fmt.Sprintf("username %q not found", e.Username)
}

// NotFoundError is returned when an item requested by ID does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item with ID %d not found", e.ID)
}

func newTransportError(url string, cause error) *TransportError {
	return &TransportError{URL: url, Cause: cause}
}

func newHTTPError(statusCode int) *HTTPError {
	return &HTTPError{StatusCode: statusCode}
}

func newTimeoutError(attempts int) *TimeoutError {
	return &TimeoutError{Attempts: attempts}
}

func newCancelledError(cause error) *CancelledError {
	return &CancelledError{Cause: cause}
}

func newParseError(message, snippet string, cause error) *ParseError {
	return &ParseError{Message: message, Snippet: snippet, Cause: cause}
}

func newMissingFieldError(element, field string) *DecodeError {
	return &DecodeError{Kind: MissingField, Element: element, Field: field}
}

func newInvalidNumberError(element, field, value string) *DecodeError {
	return &DecodeError{Kind: InvalidNumber, Element: element, Field: field, Value: value}
}

func newUnexpectedValueError(element, field, value string) *DecodeError {
	return &DecodeError{Kind: UnexpectedValue, Element: element, Field: field, Value: value}
}
