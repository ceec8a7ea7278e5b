package client

import (
	"context"
	"net/http"

	"reelmatch/internal/domain/entity"
	domainerrors "reelmatch/internal/domain/errors"
	"reelmatch/internal/domain/service"
	"reelmatch/internal/errors"
)

// SignIn exchanges credentials for a token pair, persists the pair and
// then loads the authenticated user. The profile fetch only happens
// after both tokens are stored, so a failure there never leaves the
// session half-initialized.
func (c *Client) SignIn(ctx context.Context, creds entity.Credentials) (*entity.User, error) {
	if err := c.validate.Struct(creds); err != nil {
		return nil, errors.Wrap(err, "validate credentials")
	}

	pair, err := do[entity.TokenPair](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   creds,
	}, false)
	if err != nil {
		return nil, err
	}

	if err := c.session.StoreTokens(pair); err != nil {
		return nil, err
	}

	return c.CurrentUser(ctx)
}

// SignUp registers a new account. The backend issues a token pair
// right away, so a successful signup leaves the session authenticated
// and returns the freshly created user.
func (c *Client) SignUp(ctx context.Context, req entity.SignUpRequest) (*entity.User, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "validate signup request")
	}

	pair, err := do[entity.TokenPair](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Body:   req,
	}, false)
	if err != nil {
		return nil, err
	}

	if err := c.session.StoreTokens(pair); err != nil {
		return nil, err
	}

	return c.CurrentUser(ctx)
}

// RefreshAccessToken trades the stored refresh token for a fresh pair.
// Without a stored refresh token it fails with ErrUnauthorized before
// touching the network. The caller decides whether to retry the
// operation that prompted the refresh; the client never retries on its
// own.
func (c *Client) RefreshAccessToken(ctx context.Context) (*entity.TokenPair, error) {
	refresh, ok := c.session.RefreshToken()
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	pair, err := do[entity.TokenPair](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   entity.RefreshRequest{RefreshToken: refresh},
	}, false)
	if err != nil {
		return nil, err
	}

	if err := c.session.StoreTokens(pair); err != nil {
		return nil, err
	}

	return &pair, nil
}

// CurrentUser returns the account behind the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (*entity.User, error) {
	user, err := do[entity.User](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   "/auth/me",
	}, true)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout drops both tokens locally. No request is sent; the refresh
// token simply stops being presented.
func (c *Client) Logout() {
	c.session.Logout()
}
