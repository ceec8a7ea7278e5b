package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated account as reported by GET /auth/me.
// Fetched, never mutated locally.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the public profile attached to a user account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `json:"bio"`
	Location  *string   `json:"location"`
	Birthdate *string   `json:"birthdate"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged
// by the server.
type ProfileUpdate struct {
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location  *string `json:"location,omitempty"`
	Birthdate *string `json:"birthdate,omitempty"`
}
