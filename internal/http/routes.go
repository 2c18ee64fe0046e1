package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
)

type RouteOptions struct {
	Authenticate         echo.MiddlewareFunc
	RateLimitPerMinute   int
	IPRateLimitPerMinute int
	UploadDir            string
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	limiter := middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute, middleware.ByCaller)
	// Authenticated groups are throttled per IP before credentials are
	// checked, then per subject.
	ipLimiter := middleware.RateLimiter(opts.IPRateLimitPerMinute, time.Minute, middleware.ByIP)

	e.GET("/healthz", h.Health)
	e.Static("/uploads", opts.UploadDir)

	auth := e.Group("/auth", limiter)
	auth.POST("/login", h.Login)

	tasks := e.Group("/tasks", ipLimiter, opts.Authenticate, limiter)
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/my-tasks", h.ListMyTasks)
	tasks.GET("/dashboard", h.Dashboard)
	tasks.GET("/report", h.UserReport)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.PATCH("/:id/status", h.UpdateTaskStatus)
	tasks.DELETE("/:id", h.DeleteTask)

	users := e.Group("/user", ipLimiter, opts.Authenticate, limiter)
	users.POST("", h.CreateUser)
	users.GET("/all", h.ListUsers)
	users.PATCH("/:id/status", h.UpdateUserStatus)
	users.GET("", h.GetProfile)
	users.GET("/:id", h.GetProfileByID)
	users.PATCH("", h.UpdateProfile)
	users.DELETE("/:id", h.DeleteUser)
	users.DELETE("", h.DeleteProfile)
}
