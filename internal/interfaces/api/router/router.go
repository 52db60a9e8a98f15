package router

import (
	"fmt"
	"net/http"
	"taskreminder/internal/interfaces/api/handler"
	"taskreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	TaskHandler     *handler.TaskHandler
	SettingsHandler *handler.SettingsHandler
	ReminderHandler *handler.ReminderHandler
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	tasks := e.Group("/tasks")
	tasks.GET("", cfg.TaskHandler.ListTasks)
	tasks.POST("", cfg.TaskHandler.CreateTask)
	tasks.GET("/stats", cfg.TaskHandler.TaskStats)
	tasks.GET("/:id", cfg.TaskHandler.GetTask)
	tasks.PUT("/:id", cfg.TaskHandler.UpdateTask)
	tasks.DELETE("/:id", cfg.TaskHandler.DeleteTask)
	tasks.POST("/:id/complete", cfg.TaskHandler.CompleteTask)
	tasks.POST("/:id/reopen", cfg.TaskHandler.ReopenTask)

	e.GET("/settings/reminder", cfg.SettingsHandler.GetReminderSettings)
	e.PUT("/settings/reminder", cfg.SettingsHandler.UpdateReminderSettings)

	e.GET("/reminders", cfg.ReminderHandler.ListReminders)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
