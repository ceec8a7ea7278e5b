package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/infra/keystore"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() (*Controller, *keystore.MemoryStore) {
	store := keystore.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewController(store, logger), store
}

func TestController_StartsUnauthenticated(t *testing.T) {
	c, _ := newTestController()

	assert.Equal(t, Unauthenticated, c.State())
	_, ok := c.AccessToken()
	assert.False(t, ok)
}

func TestController_StoreTokensTransitionsToAuthenticated(t *testing.T) {
	c, _ := newTestController()

	require.NoError(t, c.StoreTokens(entity.TokenPair{
		AccessToken:  "A",
		RefreshToken: "R",
		TokenType:    "bearer",
	}))

	assert.Equal(t, Authenticated, c.State())

	access, ok := c.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "A", access)

	refresh, ok := c.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "R", refresh)
}

func TestController_LogoutClearsBothTokens(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.StoreTokens(entity.TokenPair{AccessToken: "A", RefreshToken: "R"}))

	c.Logout()

	assert.Equal(t, Unauthenticated, c.State())
	_, ok := c.AccessToken()
	assert.False(t, ok)
	_, ok = c.RefreshToken()
	assert.False(t, ok)
}

func TestController_HandleUnauthorizedClearsAndNotifies(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.StoreTokens(entity.TokenPair{AccessToken: "A", RefreshToken: "R"}))

	events := c.Subscribe()
	c.HandleUnauthorized()

	assert.Equal(t, Unauthenticated, c.State())
	select {
	case event := <-events:
		assert.Equal(t, ReasonUnauthorized, event.Reason)
	case <-time.After(time.Second):
		t.Fatal("expected a session-end event")
	}
}

func TestController_SlowSubscriberDoesNotBlock(t *testing.T) {
	c, _ := newTestController()
	_ = c.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.HandleUnauthorized()
		c.HandleUnauthorized() // buffer already full, event dropped
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestController_TokenExpiresAt(t *testing.T) {
	c, _ := newTestController()

	// Opaque token: no expiry to report.
	require.NoError(t, c.StoreTokens(entity.TokenPair{AccessToken: "opaque", RefreshToken: "R"}))
	_, ok := c.TokenExpiresAt()
	assert.False(t, ok)

	// Signed JWT with an exp claim.
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	require.NoError(t, c.StoreTokens(entity.TokenPair{AccessToken: signed, RefreshToken: "R"}))
	got, ok := c.TokenExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}
