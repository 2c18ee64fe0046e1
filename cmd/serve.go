package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "task-tracker.com/task-tracker/internal/http"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/pdf"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task tracker HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.HTTPErrorHandler = httpapi.ErrorHandler(a.log)
		e.Use(middleware.RequestLogger(a.log.Named("http")))

		handler := httpapi.NewHandler(a.tasks, a.users, a.provider, pdf.NewReportGenerator(), sqlDB, a.log)
		httpapi.Register(e, handler, httpapi.RouteOptions{
			Authenticate:         middleware.Authenticate(a.provider, a.users),
			RateLimitPerMinute:   a.cfg.RateLimit,
			IPRateLimitPerMinute: a.cfg.IPRateLimit,
			UploadDir:            a.uploader.Root(),
		})

		serverErr := make(chan error, 1)
		go func() {
			a.log.Info("HTTP server listening", zap.String("addr", a.cfg.AppURL))
			if err := e.Start(a.cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		select {
		case <-ctx.Done():
		case err := <-serverErr:
			return err
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("HTTP server shutdown incomplete", zap.Error(err))
		}

		a.log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
