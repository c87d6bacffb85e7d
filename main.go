// File: receptionist/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"receptionist/config"
	availabilityRepo "receptionist/database/repository/availability"
	"receptionist/handlers"
	"receptionist/middleware"
	"receptionist/routes"
	"receptionist/services/booking"
	"receptionist/services/calendar"
	"receptionist/services/notification"
	"receptionist/services/scheduling"
	"receptionist/services/voice"
	"receptionist/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()

	calendarService, err := calendar.NewGoogleService(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	loc := config.CalendarLocation()

	// repositories.
	snapshotRepo := availabilityRepo.NewRedisRepo(utils.GetSnapshotClient())

	// services.
	availabilityEngine := &scheduling.DefaultAvailabilityEngine{Source: calendarService}
	candidateBuilder := scheduling.NewCandidateBuilder(loc)
	emailService := notification.NewEmailService()
	confirmationService := &booking.DefaultConfirmationService{
		Availability: availabilityEngine,
		Calendar:     calendarService,
		Snapshots:    snapshotRepo,
		Notifier:     emailService,
		Loc:          loc,
	}
	voiceClient := voice.NewClient()

	webhookHandler := handlers.NewWebhookHandler(
		availabilityEngine, candidateBuilder, confirmationService, snapshotRepo, loc, logger)
	callHandler := handlers.NewCallHandler(voiceClient)

	// Register routes with the assembled handlers.
	routes.RegisterRoutes(router, webhookHandler, callHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "4000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
