package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/domain/service"
	"reelmatch/internal/errors"
)

// ListMovies returns the full catalog. Browsing is open, no token is
// attached.
func (c *Client) ListMovies(ctx context.Context) ([]entity.Movie, error) {
	return do[[]entity.Movie](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   "/movies/",
	}, false)
}

// GetMovie returns a single movie by id.
func (c *Client) GetMovie(ctx context.Context, movieID uuid.UUID) (*entity.Movie, error) {
	movie, err := do[entity.Movie](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/movies/%s", movieID),
	}, false)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// CreateMovie adds a movie to the catalog.
func (c *Client) CreateMovie(ctx context.Context, payload entity.MovieCreate) (*entity.Movie, error) {
	if err := c.validate.Struct(payload); err != nil {
		return nil, errors.Wrap(err, "validate movie")
	}

	movie, err := do[entity.Movie](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   "/movies/",
		Body:   payload,
	}, true)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// UpdateMovie applies a partial update to a movie.
func (c *Client) UpdateMovie(ctx context.Context, movieID uuid.UUID, payload entity.MovieUpdate) (*entity.Movie, error) {
	movie, err := do[entity.Movie](ctx, c, &service.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/movies/%s", movieID),
		Body:   payload,
	}, true)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// DeleteMovie removes a movie from the catalog.
func (c *Client) DeleteMovie(ctx context.Context, movieID uuid.UUID) error {
	return doVoid(ctx, c, &service.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/movies/%s", movieID),
	}, true)
}

// Recommendations returns up to limit movies ranked for the current
// user. limit values below one fall back to the server default.
func (c *Client) Recommendations(ctx context.Context, limit int) ([]entity.Movie, error) {
	req := &service.Request{
		Method: http.MethodGet,
		Path:   "/movies/recommendations",
	}
	if limit > 0 {
		req.Query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	return do[[]entity.Movie](ctx, c, req, true)
}

// Activity returns the current user's swipe history, newest first.
func (c *Client) Activity(ctx context.Context) ([]entity.ActivityItem, error) {
	return do[[]entity.ActivityItem](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   "/movies/activity",
	}, true)
}

// Cast returns the cast list for a movie.
func (c *Client) Cast(ctx context.Context, movieID uuid.UUID) ([]entity.CastMember, error) {
	return do[[]entity.CastMember](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/movies/%s/cast", movieID),
	}, false)
}

// SetFavorite marks or unmarks a movie as a favorite of the current
// user. The call is not deduplicated; toggling twice sends two
// requests and the server treats repeats as no-ops.
func (c *Client) SetFavorite(ctx context.Context, movieID uuid.UUID, favorite bool) error {
	method := http.MethodPost
	if !favorite {
		method = http.MethodDelete
	}

	return doVoid(ctx, c, &service.Request{
		Method: method,
		Path:   fmt.Sprintf("/movies/%s/favorites", movieID),
	}, true)
}

// SetDislike marks or unmarks a movie as disliked by the current user.
func (c *Client) SetDislike(ctx context.Context, movieID uuid.UUID, disliked bool) error {
	method := http.MethodPost
	if !disliked {
		method = http.MethodDelete
	}

	return doVoid(ctx, c, &service.Request{
		Method: method,
		Path:   fmt.Sprintf("/movies/%s/dislikes", movieID),
	}, true)
}

// UpdateStatus sets the watch status of a movie for the current user.
func (c *Client) UpdateStatus(ctx context.Context, movieID uuid.UUID, status string) error {
	return doVoid(ctx, c, &service.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/movies/%s/status", movieID),
		Body:   entity.StatusUpdate{Status: status},
	}, true)
}

// Swipe records a like or dislike swipe for the given user on a movie
// and remembers the movie locally so the caller can skip cards the
// user already acted on in this session.
func (c *Client) Swipe(ctx context.Context, movieID, userID uuid.UUID, direction entity.SwipeDirection) error {
	if !direction.Valid() {
		return errors.Errorf("invalid swipe direction %q", direction)
	}

	err := doVoid(ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/movies/%s/swipes", movieID),
		Body:   entity.SwipeCreate{UserID: userID, Direction: direction},
	}, true)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.swiped[movieID] = direction
	c.mu.Unlock()

	return nil
}

// Swiped reports whether a swipe for the movie was recorded during
// this session.
func (c *Client) Swiped(movieID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.swiped[movieID]
	return ok
}
