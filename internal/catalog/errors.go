package catalog

import (
	"context"
	"errors"
	"fmt"
)

const (
	CodeEmptyQuery        = "empty_query"
	CodeInvalidURL        = "invalid_url"
	CodeNetwork           = "network"
	CodeUpstreamHTTP      = "upstream_http"
	CodeMalformedResponse = "malformed_response"
	CodeCancelled         = "cancelled"
)

// Error is the typed failure surfaced by every catalog operation. Status is
// the upstream HTTP status for CodeUpstreamHTTP and zero otherwise.
type Error struct {
	Code    string
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// ErrorCode classifies err, returning "" for nil or foreign errors.
func ErrorCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func NewEmptyQueryError() error {
	return &Error{Code: CodeEmptyQuery, Message: "search query is empty"}
}

func NewInvalidURLError(raw string, cause error) error {
	return &Error{Code: CodeInvalidURL, Message: "bad request url: " + raw, cause: cause}
}

func NewNetworkError(cause error) error {
	return &Error{Code: CodeNetwork, Message: cause.Error(), cause: cause}
}

func NewUpstreamHTTPError(status int) error {
	return &Error{Code: CodeUpstreamHTTP, Message: "unexpected upstream status", Status: status}
}

func NewMalformedResponseError(cause error) error {
	return &Error{Code: CodeMalformedResponse, Message: "upstream payload shape mismatch: " + cause.Error(), cause: cause}
}

func NewCancelledError(cause error) error {
	return &Error{Code: CodeCancelled, Message: "operation cancelled", cause: cause}
}

// WrapTransport maps a transport-level failure onto the taxonomy. Caller
// cancellation is surfaced as CodeCancelled so it is never mistaken for a
// network fault; an elapsed request deadline stays a network error.
func WrapTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return NewCancelledError(err)
	}
	return NewNetworkError(err)
}
