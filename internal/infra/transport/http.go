// Package transport implements the HTTP transport used by the API client.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"reelmatch/config"
	domainerrors "reelmatch/internal/domain/errors"
	"reelmatch/internal/domain/service"

	"github.com/pkg/errors"
)

// HTTPTransport executes requests against a single base URL. It hands raw
// status and bytes back to the caller; non-2xx statuses are not failures at
// this layer, only connectivity problems are.
type HTTPTransport struct {
	baseURL *url.URL
	client  *http.Client
	logger  *slog.Logger
}

// New builds a transport from the API section of the configuration.
// RequestTimeout bounds dialing, TLS setup and the wait for response
// headers; ResourceTimeout bounds the entire exchange including the body.
func New(cfg *config.Config, logger *slog.Logger) (service.Transport, error) {
	base, err := url.Parse(cfg.API.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Wrapf(domainerrors.ErrInvalidURL, "parse base URL %q", cfg.API.BaseURL)
	}

	dialer := &net.Dialer{Timeout: cfg.API.RequestTimeout}
	httpTransport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.API.RequestTimeout,
		ResponseHeaderTimeout: cfg.API.RequestTimeout,
	}

	return &HTTPTransport{
		baseURL: base,
		client: &http.Client{
			Timeout:   cfg.API.ResourceTimeout,
			Transport: httpTransport,
		},
		logger: logger,
	}, nil
}

var _ service.Transport = (*HTTPTransport)(nil)

// Do issues the request and returns the raw status and body. Connectivity
// failures, timeouts and cancellations surface as transport-kind errors.
func (t *HTTPTransport) Do(ctx context.Context, req *service.Request) (*service.Response, error) {
	httpReq, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Debug("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Any("error", err))

		return nil, domainerrors.NewTransportError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, domainerrors.NewTransportError(err)
	}

	t.logger.Debug("request completed",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", httpResp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	return &service.Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}

func (t *HTTPTransport) buildRequest(ctx context.Context, req *service.Request) (*http.Request, error) {
	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrInvalidURL, "parse path %q", req.Path)
	}
	target := t.baseURL.ResolveReference(ref)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrInvalidURL, "build request for %q", target.String())
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	return httpReq, nil
}
