package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reelmatch/internal/domain/entity"
	domainerrors "reelmatch/internal/domain/errors"
	"reelmatch/internal/domain/service"
	"reelmatch/internal/infra/keystore"
	mocks "reelmatch/internal/mocks/service"
	"reelmatch/internal/session"
)

func newTestClient(t *testing.T) (*Client, *mocks.MockTransport, *keystore.MemoryStore) {
	t.Helper()

	transport := mocks.NewMockTransport(t)
	store := keystore.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.NewController(store, logger)

	return New(transport, sess, logger), transport, store
}

func onRequest(method, path string) interface{} {
	return mock.MatchedBy(func(req *service.Request) bool {
		return req.Method == method && req.Path == path
	})
}

func jsonResponse(status int, body string) *service.Response {
	return &service.Response{StatusCode: status, Body: []byte(body)}
}

func TestSignIn_StoresTokensThenLoadsUser(t *testing.T) {
	c, transport, store := newTestClient(t)

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodPost, "/auth/login")).
		Return(jsonResponse(http.StatusOK,
			`{"access_token":"A","refresh_token":"R","token_type":"bearer"}`), nil).
		Once()

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodGet, "/auth/me")).
		Run(func(_ context.Context, req *service.Request) {
			// both tokens must already be persisted when the profile
			// request goes out
			access, ok := store.Get("access_token")
			assert.True(t, ok)
			assert.Equal(t, "A", access)
			refresh, ok := store.Get("refresh_token")
			assert.True(t, ok)
			assert.Equal(t, "R", refresh)
			assert.Equal(t, "Bearer A", req.Header.Get("Authorization"))
		}).
		Return(jsonResponse(http.StatusOK,
			`{"id":"6f1c07e3-9d2a-4a52-b6ff-000000000001","email":"neo@example.com","username":"neo","created_at":"2026-01-02T03:04:05Z"}`), nil).
		Once()

	user, err := c.SignIn(context.Background(), entity.Credentials{
		Email:    "neo@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "neo", user.Username)
	assert.Equal(t, session.Authenticated, c.Session().State())
}

func TestSignIn_RejectsInvalidCredentialsLocally(t *testing.T) {
	c, _, _ := newTestClient(t)

	_, err := c.SignIn(context.Background(), entity.Credentials{Email: "not-an-email"})
	require.Error(t, err)
}

func TestSignIn_BadPasswordSurfacesServerMessage(t *testing.T) {
	c, transport, store := newTestClient(t)

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodPost, "/auth/login")).
		Return(jsonResponse(http.StatusUnauthorized, `{"detail":"Invalid credentials"}`), nil).
		Once()

	_, err := c.SignIn(context.Background(), entity.Credentials{
		Email:    "neo@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	var apiErr *domainerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domainerrors.KindServerMessage, apiErr.Kind())
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
	assert.Equal(t, "Invalid credentials", apiErr.Detail())

	_, ok := store.Get("access_token")
	assert.False(t, ok)
}

func TestRefreshAccessToken_NoStoredToken(t *testing.T) {
	c, _, _ := newTestClient(t)

	// the mock has no expectations; any transport call would fail the test
	_, err := c.RefreshAccessToken(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestRefreshAccessToken_ReplacesPair(t *testing.T) {
	c, transport, store := newTestClient(t)
	require.NoError(t, c.Session().StoreTokens(entity.TokenPair{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
	}))

	transport.EXPECT().
		Do(mock.Anything, mock.MatchedBy(func(req *service.Request) bool {
			body, ok := req.Body.(entity.RefreshRequest)
			return req.Path == "/auth/refresh" && ok && body.RefreshToken == "old-refresh"
		})).
		Return(jsonResponse(http.StatusOK,
			`{"access_token":"new-access","refresh_token":"new-refresh","token_type":"bearer"}`), nil).
		Once()

	pair, err := c.RefreshAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)

	access, _ := store.Get("access_token")
	refresh, _ := store.Get("refresh_token")
	assert.Equal(t, "new-access", access)
	assert.Equal(t, "new-refresh", refresh)
}

func TestUnauthorizedResponse_EndsSession(t *testing.T) {
	c, transport, store := newTestClient(t)
	require.NoError(t, c.Session().StoreTokens(entity.TokenPair{
		AccessToken:  "stale",
		RefreshToken: "stale-refresh",
	}))
	events := c.Session().Subscribe()

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodGet, "/auth/me")).
		Return(jsonResponse(http.StatusUnauthorized, ``), nil).
		Once()

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	assert.Equal(t, session.Unauthenticated, c.Session().State())
	_, ok := store.Get("access_token")
	assert.False(t, ok)
	_, ok = store.Get("refresh_token")
	assert.False(t, ok)

	select {
	case ev := <-events:
		assert.Equal(t, session.ReasonUnauthorized, ev.Reason)
	default:
		t.Fatal("expected a session event after a 401")
	}
}

func TestUnauthorizedResponse_EndsSessionEvenWithDetail(t *testing.T) {
	c, transport, _ := newTestClient(t)
	require.NoError(t, c.Session().StoreTokens(entity.TokenPair{
		AccessToken:  "stale",
		RefreshToken: "stale-refresh",
	}))

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodGet, "/auth/me")).
		Return(jsonResponse(http.StatusUnauthorized, `{"detail":"Token expired"}`), nil).
		Once()

	_, err := c.CurrentUser(context.Background())

	var apiErr *domainerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domainerrors.KindServerMessage, apiErr.Kind())
	assert.Equal(t, session.Unauthenticated, c.Session().State())
}

func TestErrorKinds(t *testing.T) {
	ctx := context.Background()

	t.Run("detail body maps to server message", func(t *testing.T) {
		c, transport, _ := newTestClient(t)
		transport.EXPECT().
			Do(mock.Anything, mock.Anything).
			Return(jsonResponse(http.StatusBadRequest, `{"detail":"Friend request already exists"}`), nil).
			Once()

		_, err := c.Friends(ctx)
		var apiErr *domainerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, domainerrors.KindServerMessage, apiErr.Kind())
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode())
		assert.Equal(t, "Friend request already exists", apiErr.Detail())
	})

	t.Run("unparseable 500 maps to server error", func(t *testing.T) {
		c, transport, _ := newTestClient(t)
		transport.EXPECT().
			Do(mock.Anything, mock.Anything).
			Return(jsonResponse(http.StatusInternalServerError, `<html>oops</html>`), nil).
			Once()

		_, err := c.ListMovies(ctx)
		var apiErr *domainerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, domainerrors.KindServer, apiErr.Kind())
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode())
	})

	t.Run("empty 503 maps to server error", func(t *testing.T) {
		c, transport, _ := newTestClient(t)
		transport.EXPECT().
			Do(mock.Anything, mock.Anything).
			Return(jsonResponse(http.StatusServiceUnavailable, ``), nil).
			Once()

		_, err := c.ListMovies(ctx)
		var apiErr *domainerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, domainerrors.KindServer, apiErr.Kind())
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode())
	})

	t.Run("empty 200 body maps to no data", func(t *testing.T) {
		c, transport, _ := newTestClient(t)
		transport.EXPECT().
			Do(mock.Anything, mock.Anything).
			Return(jsonResponse(http.StatusOK, ``), nil).
			Once()

		_, err := c.ListMovies(ctx)
		require.ErrorIs(t, err, domainerrors.ErrNoData)
	})

	t.Run("malformed 200 body maps to decoding error", func(t *testing.T) {
		c, transport, _ := newTestClient(t)
		transport.EXPECT().
			Do(mock.Anything, mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"not":"a list"`), nil).
			Once()

		_, err := c.ListMovies(ctx)
		var apiErr *domainerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, domainerrors.KindDecoding, apiErr.Kind())
	})
}

func TestSetFavorite_NoDeduplication(t *testing.T) {
	c, transport, _ := newTestClient(t)
	movieID := uuid.New()
	path := "/movies/" + movieID.String() + "/favorites"

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodPost, path)).
		Return(jsonResponse(http.StatusCreated, `{"user_id":"x"}`), nil).
		Twice()

	require.NoError(t, c.SetFavorite(context.Background(), movieID, true))
	require.NoError(t, c.SetFavorite(context.Background(), movieID, true))

	transport.EXPECT().
		Do(mock.Anything, onRequest(http.MethodDelete, path)).
		Return(jsonResponse(http.StatusNoContent, ``), nil).
		Once()

	require.NoError(t, c.SetFavorite(context.Background(), movieID, false))
}

func TestSwipe_TracksMoviePerSession(t *testing.T) {
	c, transport, _ := newTestClient(t)
	movieID := uuid.New()
	userID := uuid.New()

	transport.EXPECT().
		Do(mock.Anything, mock.MatchedBy(func(req *service.Request) bool {
			body, ok := req.Body.(entity.SwipeCreate)
			return ok && body.UserID == userID && body.Direction == entity.SwipeLike
		})).
		Return(jsonResponse(http.StatusCreated, `{}`), nil).
		Once()

	assert.False(t, c.Swiped(movieID))
	require.NoError(t, c.Swipe(context.Background(), movieID, userID, entity.SwipeLike))
	assert.True(t, c.Swiped(movieID))
}

func TestSwipe_InvalidDirection(t *testing.T) {
	c, _, _ := newTestClient(t)

	err := c.Swipe(context.Background(), uuid.New(), uuid.New(), entity.SwipeDirection("meh"))
	require.Error(t, err)
}

func TestRecommendations_LimitQuery(t *testing.T) {
	c, transport, _ := newTestClient(t)

	transport.EXPECT().
		Do(mock.Anything, mock.MatchedBy(func(req *service.Request) bool {
			return req.Path == "/movies/recommendations" && req.Query.Get("limit") == "5"
		})).
		Return(jsonResponse(http.StatusOK, `[]`), nil).
		Once()

	movies, err := c.Recommendations(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestTransportFailurePassesThrough(t *testing.T) {
	c, transport, _ := newTestClient(t)

	transport.EXPECT().
		Do(mock.Anything, mock.Anything).
		Return(nil, domainerrors.NewTransportError(context.DeadlineExceeded)).
		Once()

	_, err := c.ListMovies(context.Background())
	var apiErr *domainerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domainerrors.KindTransport, apiErr.Kind())
}

func TestCreateFriendRequest_SelfRejectedLocally(t *testing.T) {
	c, _, _ := newTestClient(t)
	id := uuid.New()

	_, err := c.CreateFriendRequest(context.Background(), id, id)
	require.Error(t, err)
}
