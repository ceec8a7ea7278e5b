package entity

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Movie is a movie record as returned by the backend. The ID is zero for
// placeholder entries that have not been persisted server-side. Values are
// immutable once decoded; updates go through UpdateMovie and produce a new
// instance.
type Movie struct {
	ID          uuid.UUID `json:"id"`
	TMDBID      *string   `json:"tmdb_id"`
	Title       string    `json:"title"`
	Overview    *string   `json:"overview"`
	ReleaseDate *string   `json:"release_date"`
	Rating      *float64  `json:"rating"`
	Popularity  *float64  `json:"popularity"`
	PosterURL   *string   `json:"poster_url"`
	BackdropURL *string   `json:"backdrop_url"`
	Genres      []string  `json:"genres"`
	Keywords    []string  `json:"keywords"`
}

// MovieCreate is the payload for POST /movies/.
type MovieCreate struct {
	Title       string   `json:"title" validate:"required"`
	Overview    *string  `json:"overview,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Popularity  *float64 `json:"popularity,omitempty"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	BackdropURL *string  `json:"backdrop_url,omitempty"`
	TMDBID      *string  `json:"tmdb_id,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// MovieUpdate is the payload for PUT /movies/{id}; nil fields are left
// unchanged by the server.
type MovieUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Overview    *string  `json:"overview,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Popularity  *float64 `json:"popularity,omitempty"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	BackdropURL *string  `json:"backdrop_url,omitempty"`
}

// CastMember is one entry of a movie's cast list.
type CastMember struct {
	Name       string  `json:"name"`
	Character  string  `json:"character"`
	ProfileURL *string `json:"profile_url"`
	Order      int     `json:"order"`
}

// SwipeDirection is the outcome of a swipe gesture on a movie card.
type SwipeDirection string

const (
	SwipeLike    SwipeDirection = "like"
	SwipeDislike SwipeDirection = "dislike"
)

// Valid reports whether the direction is one of the two known values.
func (d SwipeDirection) Valid() bool {
	return d == SwipeLike || d == SwipeDislike
}

// SwipeCreate is the body of POST /movies/{id}/swipes. A swipe is a
// write-only event; the server does not echo it back.
type SwipeCreate struct {
	UserID    uuid.UUID      `json:"user_id"`
	Direction SwipeDirection `json:"direction"`
}

// StatusUpdate is the body of PUT /movies/{id}/status.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// ActivityItem is one read-only entry of the personal activity feed:
// a movie reference plus the swipe direction recorded for it.
type ActivityItem struct {
	MovieID   uuid.UUID      `json:"movie_id"`
	Direction SwipeDirection `json:"direction"`
	CreatedAt time.Time      `json:"created_at"`
	Movie     *Movie         `json:"movie,omitempty"`
}

// ResolveImageURL resolves a possibly relative poster/backdrop reference
// against the API base URL. Absolute references are returned unchanged.
func ResolveImageURL(base *url.URL, ref string) string {
	if base == nil || ref == "" {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if parsed.IsAbs() {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
