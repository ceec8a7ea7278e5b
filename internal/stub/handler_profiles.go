package stub

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reelmatch/internal/domain/entity"
)

// GetProfile returns the profile attached to a user id.
func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid user id")
	}
	profile, ok := h.store.Profile(userID)
	if !ok {
		return detail(c, http.StatusNotFound, "Profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update.
func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "Invalid user id")
	}
	var payload entity.ProfileUpdate
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid profile payload")
	}
	if err := c.Validate(&payload); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.store.UpdateProfile(userID, payload)
	if err != nil {
		return detail(c, http.StatusNotFound, "Profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}
