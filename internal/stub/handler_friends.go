package stub

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/errors"
)

// ListFriends returns every relation the caller participates in.
func (h *Handler) ListFriends(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListFriends(h.currentUserID(c)))
}

// ListFriendRequests returns pending relations addressed to the caller.
func (h *Handler) ListFriendRequests(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.PendingRequests(h.currentUserID(c)))
}

// CreateFriendRequest makes a pending relation from the caller to
// another user.
func (h *Handler) CreateFriendRequest(c echo.Context) error {
	var payload entity.FriendCreate
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid friend payload")
	}
	if payload.RequesterID != h.currentUserID(c) {
		return detail(c, http.StatusForbidden, "requester_id must be current user")
	}

	friend, err := h.store.CreateFriendRequest(payload.RequesterID, payload.AddresseeID)
	if err != nil {
		if errors.Is(err, ErrRelationExists) {
			return detail(c, http.StatusBadRequest, "Friend request already exists")
		}
		return detail(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusCreated, friend)
}

// AcceptFriendRequest transitions a pending relation to accepted. Only
// the addressee may accept.
func (h *Handler) AcceptFriendRequest(c echo.Context) error {
	friendID, err := uuid.Parse(c.Param("friend_id"))
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid friend id")
	}

	friend, ok := h.store.Friend(friendID)
	if !ok {
		return detail(c, http.StatusNotFound, "Friend request not found")
	}
	if friend.AddresseeID != h.currentUserID(c) {
		return detail(c, http.StatusForbidden, "Only addressee can accept this request")
	}

	updated, err := h.store.UpdateFriendStatus(friendID, entity.FriendAccepted)
	if err != nil {
		return detail(c, http.StatusNotFound, "Friend request not found")
	}
	return c.JSON(http.StatusOK, updated)
}

// BlockFriend transitions a relation to blocked. Either participant
// may block.
func (h *Handler) BlockFriend(c echo.Context) error {
	friendID, err := uuid.Parse(c.Param("friend_id"))
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid friend id")
	}

	friend, ok := h.store.Friend(friendID)
	if !ok {
		return detail(c, http.StatusNotFound, "Friend relation not found")
	}
	caller := h.currentUserID(c)
	if caller != friend.RequesterID && caller != friend.AddresseeID {
		return detail(c, http.StatusForbidden, "Not allowed to modify this relation")
	}

	updated, err := h.store.UpdateFriendStatus(friendID, entity.FriendBlocked)
	if err != nil {
		return detail(c, http.StatusNotFound, "Friend relation not found")
	}
	return c.JSON(http.StatusOK, updated)
}

// FriendSuggestions ranks unrelated users by taste overlap.
func (h *Handler) FriendSuggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Suggestions(h.currentUserID(c)))
}
