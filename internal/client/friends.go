package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/domain/service"
	"reelmatch/internal/errors"
)

// Friends returns every friendship the current user is part of,
// including pending and blocked ones.
func (c *Client) Friends(ctx context.Context) ([]entity.Friend, error) {
	return do[[]entity.Friend](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   "/friends/",
	}, true)
}

// FriendRequests returns pending requests addressed to the current
// user.
func (c *Client) FriendRequests(ctx context.Context) ([]entity.Friend, error) {
	return do[[]entity.Friend](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   "/friends/requests",
	}, true)
}

// CreateFriendRequest sends a friend request from the current user to
// another user. The server rejects a requester id that is not the
// caller's own.
func (c *Client) CreateFriendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*entity.Friend, error) {
	payload := entity.FriendCreate{RequesterID: requesterID, AddresseeID: addresseeID}
	if requesterID == addresseeID {
		return nil, errors.New("cannot befriend yourself")
	}

	friend, err := do[entity.Friend](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   "/friends/requests",
		Body:   payload,
	}, true)
	if err != nil {
		return nil, err
	}

	return &friend, nil
}

// AcceptFriend accepts a pending request by friendship id.
func (c *Client) AcceptFriend(ctx context.Context, friendshipID uuid.UUID) (*entity.Friend, error) {
	friend, err := do[entity.Friend](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/friends/%s/accept", friendshipID),
	}, true)
	if err != nil {
		return nil, err
	}

	return &friend, nil
}

// BlockFriend blocks the other party of a friendship.
func (c *Client) BlockFriend(ctx context.Context, friendshipID uuid.UUID) (*entity.Friend, error) {
	friend, err := do[entity.Friend](ctx, c, &service.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/friends/%s/block", friendshipID),
	}, true)
	if err != nil {
		return nil, err
	}

	return &friend, nil
}

// FriendSuggestions returns users with similar taste, ranked by
// similarity score.
func (c *Client) FriendSuggestions(ctx context.Context) ([]entity.FriendSuggestion, error) {
	return do[[]entity.FriendSuggestion](ctx, c, &service.Request{
		Method: http.MethodGet,
		Path:   "/friends/suggestions",
	}, true)
}
