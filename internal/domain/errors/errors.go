// Package errors defines the closed taxonomy of client-visible API errors
// and the mapping from completed HTTP responses into it. Every client
// operation surfaces exactly one of these kinds (or success) to its caller.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"reelmatch/internal/errors"
)

// Kind identifies one member of the error taxonomy.
type Kind string

const (
	// KindInvalidURL means the request URL could not be built.
	KindInvalidURL Kind = "invalid_url"
	// KindDecoding means a 2xx response body failed JSON decoding.
	KindDecoding Kind = "decoding"
	// KindServer is a non-2xx status with no server-supplied detail.
	KindServer Kind = "server"
	// KindServerMessage is a non-2xx status whose body carried a detail string.
	KindServerMessage Kind = "server_message"
	// KindNoData means an expected JSON payload was absent or empty.
	KindNoData Kind = "no_data"
	// KindUnauthorized means the request was rejected for missing or invalid
	// credentials; it additionally terminates the local session.
	KindUnauthorized Kind = "unauthorized"
	// KindTransport is a connectivity-level failure: DNS, refused
	// connection, or timeout. The request never completed.
	KindTransport Kind = "transport"
)

// APIError is the single error type crossing the client boundary.
type APIError struct {
	kind   Kind
	status int
	detail string
	cause  error
}

// Sentinel values for the kinds that carry no per-instance data. Compare
// with errors.Is; matching is by kind, not identity.
var (
	ErrInvalidURL   = &APIError{kind: KindInvalidURL}
	ErrNoData       = &APIError{kind: KindNoData}
	ErrUnauthorized = &APIError{kind: KindUnauthorized, status: http.StatusUnauthorized}
)

// NewServerError reports a non-2xx status with no usable error body.
func NewServerError(status int) *APIError {
	return &APIError{kind: KindServer, status: status}
}

// NewServerMessage reports a non-2xx status with a server-supplied detail.
func NewServerMessage(status int, detail string) *APIError {
	return &APIError{kind: KindServerMessage, status: status, detail: detail}
}

// NewDecodingError wraps a JSON decode failure of a 2xx response body.
func NewDecodingError(cause error) *APIError {
	return &APIError{kind: KindDecoding, cause: cause}
}

// NewTransportError wraps a connectivity failure from the HTTP layer.
func NewTransportError(cause error) *APIError {
	return &APIError{kind: KindTransport, cause: cause}
}

// Error returns the human-readable message shown to users. Server-supplied
// detail is preferred over generic status text.
func (e *APIError) Error() string {
	switch e.kind {
	case KindInvalidURL:
		return "invalid backend URL"
	case KindDecoding:
		if e.cause != nil {
			return fmt.Sprintf("failed to decode response: %v", e.cause)
		}
		return "failed to decode response"
	case KindServer:
		return fmt.Sprintf("server responded with status %d", e.status)
	case KindServerMessage:
		return fmt.Sprintf("%s (code %d)", e.detail, e.status)
	case KindNoData:
		return "empty response from server"
	case KindUnauthorized:
		return "not authenticated, please sign in again"
	case KindTransport:
		if e.cause != nil {
			return fmt.Sprintf("request failed: %v", e.cause)
		}
		return "request failed"
	default:
		return "unknown API error"
	}
}

// Kind returns the taxonomy member this error belongs to.
func (e *APIError) Kind() Kind { return e.kind }

// StatusCode returns the HTTP status for server-originated kinds, 0 otherwise.
func (e *APIError) StatusCode() int { return e.status }

// Detail returns the server-supplied detail string, if any.
func (e *APIError) Detail() string { return e.detail }

// Unwrap exposes the underlying cause for transport and decoding errors.
func (e *APIError) Unwrap() error { return e.cause }

// Is matches two APIErrors by kind, so errors.Is(err, ErrUnauthorized)
// holds for any unauthorized error regardless of how it was produced.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.kind == e.kind
}

// IsUnauthorized reports whether err classifies as an unauthorized response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// errorBody is the wire shape of backend error responses.
type errorBody struct {
	Detail string `json:"detail"`
}

// FromResponse classifies a completed HTTP response. A 2xx status returns
// nil and the body passes through to decoding. Otherwise a non-empty
// "detail" field wins, then a bare 401 maps to unauthorized, and anything
// else becomes a plain server error carrying the status.
func FromResponse(status int, body []byte) *APIError {
	if status >= 200 && status < 300 {
		return nil
	}
	if len(body) > 0 {
		var parsed errorBody
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
			return NewServerMessage(status, parsed.Detail)
		}
	}
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return NewServerError(status)
}
