// Package session owns authentication state: it is the only writer of the
// token store and the source of session lifecycle events for the
// presentation layer.
package session

import (
	"log/slog"
	"sync"
	"time"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// State is the controller's view of the session.
type State int

const (
	// Unauthenticated means no token pair is stored.
	Unauthenticated State = iota
	// Authenticated means a token pair is present (it may still be
	// rejected server-side; that rejection transitions back).
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// EndReason explains why a session ended.
type EndReason string

const (
	// ReasonLogout is an explicit local logout.
	ReasonLogout EndReason = "logout"
	// ReasonUnauthorized is a server-side rejection of the credentials.
	ReasonUnauthorized EndReason = "unauthorized"
)

// Event is published to subscribers when the session ends. The presentation
// layer reacts by offering re-authentication; the networking layer never
// reaches into it directly.
type Event struct {
	Reason EndReason
	At     time.Time
}

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Controller holds the two-state session machine. Authenticated ->
// Unauthenticated happens on logout or an unauthorized response;
// the reverse only through StoreTokens after a successful auth call.
type Controller struct {
	store  service.TokenStore
	logger *slog.Logger

	mu   sync.Mutex
	subs []chan Event
}

// NewController is the constructor for Controller.
func NewController(store service.TokenStore, logger *slog.Logger) *Controller {
	return &Controller{store: store, logger: logger}
}

// State derives the current state from token presence.
func (c *Controller) State() State {
	if _, ok := c.store.Get(accessTokenKey); ok {
		return Authenticated
	}
	return Unauthenticated
}

// StoreTokens persists a freshly issued pair. Access and refresh tokens are
// written together under the lock; a partial pair is never observable.
func (c *Controller) StoreTokens(pair entity.TokenPair) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Set(accessTokenKey, pair.AccessToken); err != nil {
		return errors.Wrap(err, "store access token")
	}
	if err := c.store.Set(refreshTokenKey, pair.RefreshToken); err != nil {
		// Roll back so the pair invariant holds.
		_ = c.store.Delete(accessTokenKey)

		return errors.Wrap(err, "store refresh token")
	}

	c.logger.Debug("session tokens stored")

	return nil
}

// AccessToken returns the stored access token, if any.
func (c *Controller) AccessToken() (string, bool) {
	return c.store.Get(accessTokenKey)
}

// RefreshToken returns the stored refresh token, if any.
func (c *Controller) RefreshToken() (string, bool) {
	return c.store.Get(refreshTokenKey)
}

// Logout clears the session locally. The backend keeps no client-visible
// logout endpoint; discarding the pair is the whole operation.
func (c *Controller) Logout() {
	c.clearTokens()
	c.publish(Event{Reason: ReasonLogout, At: time.Now()})
	c.logger.Info("logged out")
}

// HandleUnauthorized reacts to a server-side credential rejection: clear the
// pair and notify subscribers. Fire-and-forget; it never blocks the failing
// request's caller.
func (c *Controller) HandleUnauthorized() {
	c.clearTokens()
	c.publish(Event{Reason: ReasonUnauthorized, At: time.Now()})
	c.logger.Warn("session terminated by unauthorized response")
}

// Subscribe returns a channel receiving session-end events. The channel is
// buffered and a slow subscriber drops events rather than blocking the
// networking path.
func (c *Controller) Subscribe() <-chan Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Event, 1)
	c.subs = append(c.subs, ch)

	return ch
}

// TokenExpiresAt inspects the stored access token's exp claim without
// verifying the signature. Display-only; expiry never triggers a proactive
// refresh.
func (c *Controller) TokenExpiresAt() (time.Time, bool) {
	token, ok := c.store.Get(accessTokenKey)
	if !ok {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

func (c *Controller) clearTokens() {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.store.Delete(accessTokenKey)
	_ = c.store.Delete(refreshTokenKey)
}

func (c *Controller) publish(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
