package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "taskreminder/internal/application/service"

	// Infrastructure Layer
	"taskreminder/internal/infrastructure/database/sqlite"
	lineClient "taskreminder/internal/infrastructure/line"
	"taskreminder/internal/infrastructure/notifier"
	"taskreminder/internal/infrastructure/scheduler"

	// Interfaces Layer
	"taskreminder/internal/interfaces/api/handler"
	"taskreminder/internal/interfaces/api/router"

	// Packages
	"taskreminder/internal/pkg/config"
	appLogger "taskreminder/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, queue *notifier.Queue, db *gorm.DB, stopConsumers context.CancelFunc, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first so no pass publishes into a closed queue
	log.Println("Stopping scheduler...")
	schedulerService.Stop()
	log.Println("Scheduler stopped.")

	stopConsumers()
	queue.Close()

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(db); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	cfg, err := config.Load()
	if err != nil {
		appLog.Error("Invalid configuration", err)
		os.Exit(1)
	}

	// --- Infrastructure ---
	db, err := sqlite.NewDB(cfg.DBURL, cfg.DBLogLevel)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	taskRepo := sqlite.NewTaskRepository(db)
	settingRepo := sqlite.NewSettingRepository(db)
	appLog.Info("Database and repositories initialized.")

	queue := notifier.NewQueue(appLog)
	cronScheduler := scheduler.NewScheduler(appLog)

	// --- Application Services ---
	schedulerSvc, err := appService.NewSchedulerService(cronScheduler, taskRepo, queue, appService.SchedulerConfig{
		PollInterval:     cfg.PollInterval,
		ThresholdMinutes: cfg.ThresholdMinutes,
		OverduePolicy:    cfg.OverduePolicy,
	}, appLog)
	if err != nil {
		appLog.Error("Failed to create scheduler", err)
		os.Exit(1)
	}
	taskSvc := appService.NewTaskService(taskRepo, appLog)
	settingsSvc := appService.NewSettingsService(schedulerSvc, settingRepo, appLog)
	appLog.Info("Application services initialized.")

	if err := settingsSvc.RestoreThreshold(context.Background()); err != nil {
		// Log the error but continue with the configured threshold
		appLog.Error("Failed to restore reminder threshold", err)
	}

	// --- Notification consumers ---
	consumerCtx, stopConsumers := context.WithCancel(context.Background())
	feed := handler.NewReminderFeed(cfg.FeedSize)
	go feed.Run(consumerCtx, queue.Subscribe("http-feed"))

	if cfg.LineEnabled() {
		line, err := lineClient.NewClient(cfg.ChannelSecret, cfg.ChannelAccessToken, appLog)
		if err != nil {
			appLog.Error("LINE notifications disabled", err)
		} else {
			dispatcher := lineClient.NewDispatcher(line, cfg.LineNotifyTo, appLog)
			go dispatcher.Run(consumerCtx, queue.Subscribe("line"))
		}
	} else {
		appLog.Info("LINE credentials not set; reminders are only kept in the HTTP feed.")
	}

	// --- Start Scheduler ---
	if err := schedulerSvc.Start(); err != nil {
		appLog.Error("Failed to start reminder scheduler", err)
		os.Exit(1)
	}

	// --- API Handlers ---
	routerCfg := &router.Config{
		TaskHandler:     handler.NewTaskHandler(taskSvc, appLog),
		SettingsHandler: handler.NewSettingsHandler(settingsSvc, appLog),
		ReminderHandler: handler.NewReminderHandler(feed, appLog),
		Logger:          appLog,
	}
	appLog.Info("API handlers initialized.")

	// --- Router ---
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, queue, db, stopConsumers, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
