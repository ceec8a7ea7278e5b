package stub

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/errors"
)

// Handler carries the store and token service into the route
// functions.
type Handler struct {
	store  *Store
	tokens *TokenService
	logger *slog.Logger
}

// NewHandler is the constructor for Handler, injected by Fx.
func NewHandler(store *Store, tokens *TokenService, logger *slog.Logger) *Handler {
	return &Handler{store: store, tokens: tokens, logger: logger}
}

func (h *Handler) currentUserID(c echo.Context) uuid.UUID {
	id, _ := c.Get(userIDKey).(uuid.UUID)
	return id
}

func (h *Handler) tokenPair(c echo.Context, user entity.User, status int) error {
	access, err := h.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		h.logger.Error("token generation failed", slog.Any("error", err))
		return detail(c, http.StatusInternalServerError, "Could not issue tokens")
	}

	return c.JSON(status, entity.TokenPair{
		AccessToken:  access,
		RefreshToken: h.store.CreateSession(user.ID),
		TokenType:    "bearer",
	})
}

// Signup registers an account and hands back a token pair right away.
func (h *Handler) Signup(c echo.Context) error {
	var payload entity.SignUpRequest
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid signup payload")
	}
	if err := c.Validate(&payload); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.store.CreateUser(payload.Email, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return detail(c, http.StatusBadRequest, "Email already registered")
		}
		return detail(c, http.StatusInternalServerError, "Could not create user")
	}

	return h.tokenPair(c, user, http.StatusCreated)
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c echo.Context) error {
	var payload entity.Credentials
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid login payload")
	}
	if err := c.Validate(&payload); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.store.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return detail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	return h.tokenPair(c, user, http.StatusOK)
}

// Refresh trades a stored refresh token for a fresh access token. The
// refresh token itself is not rotated.
func (h *Handler) Refresh(c echo.Context) error {
	var payload entity.RefreshRequest
	if err := c.Bind(&payload); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid refresh payload")
	}

	userID, ok := h.store.ResolveSession(payload.RefreshToken)
	if !ok {
		return detail(c, http.StatusUnauthorized, "Invalid refresh token")
	}

	access, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "Could not issue tokens")
	}
	return c.JSON(http.StatusOK, entity.TokenPair{
		AccessToken:  access,
		RefreshToken: payload.RefreshToken,
		TokenType:    "bearer",
	})
}

// Me returns the account behind the access token.
func (h *Handler) Me(c echo.Context) error {
	user, ok := h.store.User(h.currentUserID(c))
	if !ok {
		return detail(c, http.StatusUnauthorized, "Could not validate credentials")
	}
	return c.JSON(http.StatusOK, user)
}
