package entity

import (
	"time"

	"github.com/google/uuid"
)

// FriendStatus is the state of a friend relation. Transitions happen only
// through the explicit accept/block endpoints; the client never infers them.
type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendBlocked  FriendStatus = "blocked"
)

// Friend is a relation between two users as stored server-side.
type Friend struct {
	ID          uuid.UUID    `json:"id"`
	RequesterID uuid.UUID    `json:"requester_id"`
	AddresseeID uuid.UUID    `json:"addressee_id"`
	Status      FriendStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// FriendCreate is the body of POST /friends/requests. The requester must be
// the current user; the server rejects anything else.
type FriendCreate struct {
	RequesterID uuid.UUID `json:"requester_id"`
	AddresseeID uuid.UUID `json:"addressee_id"`
}

// FriendSuggestion is a taste-similarity match proposed by the backend.
type FriendSuggestion struct {
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	SimilarityScore float64   `json:"similarity_score"`
	TopGenres       []string  `json:"top_genres"`
}
