package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"task-tracker.com/task-tracker/internal/pdf"
	"task-tracker.com/task-tracker/internal/services"
)

// Authenticator backs the login endpoint.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	TokenTTL() time.Duration
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	tasks   *services.TaskService
	users   *services.UserService
	auth    Authenticator
	reports pdf.Renderer
	db      Pinger
	log     *zap.Logger
}

func NewHandler(
	tasks *services.TaskService,
	users *services.UserService,
	auth Authenticator,
	reports pdf.Renderer,
	db Pinger,
	log *zap.Logger,
) *Handler {
	return &Handler{
		tasks:   tasks,
		users:   users,
		auth:    auth,
		reports: reports,
		db:      db,
		log:     log,
	}
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
