package stub

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"

	"reelmatch/config"
	"reelmatch/internal/domain/lifecycle"
	"reelmatch/internal/errors"
)

// ServerParams collects the server dependencies for Fx.
type ServerParams struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Handler *Handler
}

// Server is the stub API server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewEcho builds the echo instance with all routes registered. Exposed
// separately so tests can drive it through httptest without a socket.
func NewEcho(h *Handler, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Validator = newRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/me", h.Me, h.Authenticate)
	}

	movieGroup := e.Group("/movies")
	{
		movieGroup.GET("/", h.ListMovies)
		movieGroup.POST("/", h.CreateMovie, h.Authenticate)
		movieGroup.GET("/recommendations", h.Recommendations, h.Authenticate)
		movieGroup.GET("/activity", h.Activity, h.Authenticate)
		movieGroup.GET("/:movie_id", h.GetMovie)
		movieGroup.PUT("/:movie_id", h.UpdateMovie, h.Authenticate)
		movieGroup.DELETE("/:movie_id", h.DeleteMovie, h.Authenticate)
		movieGroup.GET("/:movie_id/cast", h.Cast)
		movieGroup.POST("/:movie_id/favorites", h.AddFavorite, h.Authenticate)
		movieGroup.DELETE("/:movie_id/favorites", h.RemoveFavorite, h.Authenticate)
		movieGroup.POST("/:movie_id/dislikes", h.AddDislike, h.Authenticate)
		movieGroup.DELETE("/:movie_id/dislikes", h.RemoveDislike, h.Authenticate)
		movieGroup.PUT("/:movie_id/status", h.UpdateStatus, h.Authenticate)
		movieGroup.POST("/:movie_id/swipes", h.CreateSwipe, h.Authenticate)
	}

	friendGroup := e.Group("/friends", h.Authenticate)
	{
		friendGroup.GET("/", h.ListFriends)
		friendGroup.GET("/requests", h.ListFriendRequests)
		friendGroup.POST("/requests", h.CreateFriendRequest)
		friendGroup.POST("/:friend_id/accept", h.AcceptFriendRequest)
		friendGroup.POST("/:friend_id/block", h.BlockFriend)
		friendGroup.GET("/suggestions", h.FriendSuggestions)
	}

	profileGroup := e.Group("/profiles", h.Authenticate)
	{
		profileGroup.GET("/:user_id", h.GetProfile)
		profileGroup.PUT("/:user_id", h.UpdateProfile)
	}

	return e
}

// NewServer wires the echo instance into the Fx lifecycle.
func NewServer(params ServerParams) (*Server, error) {
	if params.Config.Stub == nil {
		return nil, errors.New("stub config section is required")
	}

	srv := &Server{
		cfg:    params.Config,
		logger: params.Logger,
		server: NewEcho(params.Handler, params.Logger),
	}

	params.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve blocks until the server shuts down.
func (s *Server) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.Stub.Port))
	s.logger.Info("Starting stub API server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve stub api")
	}

	return nil
}

func (s *Server) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down stub API server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
