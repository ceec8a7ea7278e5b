package stub

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reelmatch/internal/domain/entity"
)

func movieID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("movie_id"))
}

// ListMovies returns the catalog. Open endpoint.
func (h *Handler) ListMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListMovies())
}

// GetMovie returns one movie.
func (h *Handler) GetMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	movie, ok := h.store.Movie(id)
	if !ok {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusOK, movie)
}

// CreateMovie adds a catalog entry.
func (h *Handler) CreateMovie(c echo.Context) error {
	var payload entity.MovieCreate
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid movie payload")
	}
	if err := c.Validate(&payload); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusCreated, h.store.CreateMovie(payload))
}

// UpdateMovie applies a partial update.
func (h *Handler) UpdateMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	var payload entity.MovieUpdate
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid movie payload")
	}

	movie, err := h.store.UpdateMovie(id, payload)
	if err != nil {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie removes a catalog entry.
func (h *Handler) DeleteMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	if err := h.store.DeleteMovie(id); err != nil {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Recommendations returns ranked movies for the current user.
func (h *Handler) Recommendations(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return detail(c, http.StatusUnprocessableEntity, "Invalid limit")
		}
		limit = parsed
	}
	return c.JSON(http.StatusOK, h.store.Recommendations(h.currentUserID(c), limit))
}

// Activity returns the current user's swipe history.
func (h *Handler) Activity(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Activity(h.currentUserID(c)))
}

// Cast returns a static cast list so clients have something to render.
// The stub has no TMDB integration behind it.
func (h *Handler) Cast(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	if _, ok := h.store.Movie(id); !ok {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusOK, []entity.CastMember{
		{Name: "Ada Marsh", Character: "Lead", Order: 0},
		{Name: "Tomas Rieker", Character: "Supporting", Order: 1},
	})
}

// AddFavorite marks a movie as a favorite of the current user.
func (h *Handler) AddFavorite(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	if err := h.store.SetFavorite(h.currentUserID(c), id, true); err != nil {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"user_id":  h.currentUserID(c).String(),
		"movie_id": id.String(),
	})
}

// RemoveFavorite clears a favorite mark.
func (h *Handler) RemoveFavorite(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	_ = h.store.SetFavorite(h.currentUserID(c), id, false)
	return c.NoContent(http.StatusNoContent)
}

// AddDislike marks a movie as disliked by the current user.
func (h *Handler) AddDislike(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	if err := h.store.SetDislike(h.currentUserID(c), id, true); err != nil {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"user_id":  h.currentUserID(c).String(),
		"movie_id": id.String(),
	})
}

// RemoveDislike clears a dislike mark.
func (h *Handler) RemoveDislike(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	_ = h.store.SetDislike(h.currentUserID(c), id, false)
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus sets the watch status for the current user.
func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	var payload entity.StatusUpdate
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid status payload")
	}
	if err := c.Validate(&payload); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	if err := h.store.UpsertStatus(h.currentUserID(c), id, payload.Status); err != nil {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"movie_id": id.String(),
		"status":   payload.Status,
	})
}

// CreateSwipe records a swipe. The user id in the body must be the
// caller's own.
func (h *Handler) CreateSwipe(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid movie id")
	}
	var payload entity.SwipeCreate
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid swipe payload")
	}
	if !payload.Direction.Valid() {
		return detail(c, http.StatusUnprocessableEntity, "Invalid swipe direction")
	}
	if payload.UserID != h.currentUserID(c) {
		return detail(c, http.StatusForbidden, "user_id must be current user")
	}
	if err := h.store.AddSwipe(payload.UserID, id, payload.Direction); err != nil {
		return detail(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"movie_id":  id.String(),
		"direction": string(payload.Direction),
	})
}
