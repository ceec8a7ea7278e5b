package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/domain/service"
)

// Profile returns the profile attached to a user id.
func (c *Client) Profile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := do[entity.Profile](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/profiles/%s", userID),
	}, true)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateProfile replaces the mutable profile fields. Nil fields are
// omitted from the request body and left untouched server-side.
func (c *Client) UpdateProfile(ctx context.Context, userID uuid.UUID, payload entity.ProfileUpdate) (*entity.Profile, error) {
	profile, err := do[entity.Profile](ctx, c, &service.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/profiles/%s", userID),
		Body:   payload,
	}, true)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
