package stub

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// Authenticate validates the bearer access token and puts the user id
// on the echo context. Errors use the same {"detail": ...} body as
// every other endpoint.
func (h *Handler) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return detail(c, http.StatusUnauthorized, "Not authenticated")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return detail(c, http.StatusUnauthorized, "Invalid authorization header")
		}

		userID, err := h.tokens.ValidateAccessToken(tokenString)
		if err != nil {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}
		if _, ok := h.store.User(userID); !ok {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// detail writes the backend's uniform error body.
func detail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"detail": message})
}
