// Package client implements the ReelMatch API client. Operations are
// thin wrappers over a shared round trip that attaches the bearer
// token, maps non-2xx responses to domain errors and decodes JSON
// payloads into entities.
package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"reelmatch/internal/domain/entity"
	domainerrors "reelmatch/internal/domain/errors"
	"reelmatch/internal/domain/service"
	"reelmatch/internal/session"
)

// Client talks to the ReelMatch backend through a Transport and keeps
// the auth session up to date as responses come back.
type Client struct {
	transport service.Transport
	session   *session.Controller
	validate  *validator.Validate
	logger    *slog.Logger

	mu     sync.Mutex
	swiped map[uuid.UUID]entity.SwipeDirection
}

// New builds a Client on top of the given transport and session
// controller.
func New(transport service.Transport, sess *session.Controller, logger *slog.Logger) *Client {
	return &Client{
		transport: transport,
		session:   sess,
		validate:  validator.New(),
		logger:    logger,
		swiped:    make(map[uuid.UUID]entity.SwipeDirection),
	}
}

// Session exposes the controller so callers can subscribe to session
// events or inspect the current state.
func (c *Client) Session() *session.Controller {
	return c.session
}

// roundTrip sends the request, attaching the stored access token when
// authed is set, and maps the response status to a domain error. A 401
// from the server terminates the session regardless of which operation
// triggered it; callers learn about it through the returned error and
// subscribers through the session event.
func (c *Client) roundTrip(ctx context.Context, req *service.Request, authed bool) (*service.Response, error) {
	if authed {
		if token, ok := c.session.AccessToken(); ok {
			if req.Header == nil {
				req.Header = make(http.Header)
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.HandleUnauthorized()
	}

	if apiErr := domainerrors.FromResponse(resp.StatusCode, resp.Body); apiErr != nil {
		c.logger.DebugContext(ctx, "request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apiErr
	}

	return resp, nil
}

// do performs the request and decodes the JSON response body into T.
// An empty body on a successful response yields ErrNoData; a body that
// does not parse yields a decoding error.
func do[T any](ctx context.Context, c *Client, req *service.Request, authed bool) (T, error) {
	var zero T

	resp, err := c.roundTrip(ctx, req, authed)
	if err != nil {
		return zero, err
	}

	if len(resp.Body) == 0 {
		return zero, domainerrors.ErrNoData
	}

	var decoded T
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return zero, domainerrors.NewDecodingError(err)
	}

	return decoded, nil
}

// doVoid performs the request and discards any response body. Used for
// operations where the server answers with 204 or a payload the client
// has no use for.
func doVoid(ctx context.Context, c *Client, req *service.Request, authed bool) error {
	_, err := c.roundTrip(ctx, req, authed)
	return err
}
