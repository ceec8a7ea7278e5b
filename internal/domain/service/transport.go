// Package service defines the abstract collaborator contracts of the client;
// concrete implementations live under internal/infra.
package service

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes one HTTP exchange against the backend. Path is relative
// to the configured base URL. A non-nil Body is JSON-encoded.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
}

// Response is the raw outcome of a completed exchange. The transport does
// not interpret status codes; classification is the error mapper's job.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport issues HTTP requests against the backend. It fails with a
// transport-kind error on connectivity problems, malformed URLs, or
// timeouts, and never reports an empty success in their place.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
