package main

import (
	"fmt"
	"net/http"
	"time"

	"habesha-bites/internal/handler"
	"habesha-bites/internal/repositories"
	"habesha-bites/internal/router"
	"habesha-bites/internal/service"
	"habesha-bites/pkg/database"
	"habesha-bites/pkg/envconfig"
	"habesha-bites/pkg/flags"
	"habesha-bites/pkg/logger"
	"habesha-bites/pkg/shutdownsetup"
)

func main() {
	// Parse command-line flags
	flagConfig := flags.Parse()

	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting Habesha Bites webhook server",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	dbConfig := envconfig.LoadDatabaseConfig()

	db, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database handle", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := db.HealthCheck(); err != nil {
		appLogger.Warn("Database health check failed, webhook will report unhealthy until it recovers", "error", err)
	} else {
		appLogger.Info("Database health check passed")
	}

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(envconfig.GetSessionTTL(), appLogger)
	orderRepo := repositories.NewOrderRepository(appLogger, db)
	menuRepo := repositories.NewMenuRepository(appLogger, db)

	// Initialize services
	policy := service.ParseUnknownItemPolicy(envconfig.GetEnv("UNKNOWN_ITEM_POLICY", "drop"))
	fulfillmentService := service.NewFulfillmentService(sessionRepo, orderRepo, menuRepo, policy, appLogger)
	statusService := service.NewStatusService(db, sessionRepo, orderRepo, menuRepo, appLogger)

	// Initialize handlers
	webhookHandler := handler.NewWebhookHandler(fulfillmentService, appLogger)
	statusHandler := handler.NewStatusHandler(statusService, appLogger)

	mux := router.NewRouter(webhookHandler, statusHandler)

	httpHandler := appLogger.HTTPMiddleware(mux)

	port := flagConfig.Port
	if port == "" {
		port = envconfig.GetEnv("PORT", "8000")
	}
	host := envconfig.GetEnv("HOST", "")

	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		appLogger.Info("Starting HTTP server",
			"address", server.Addr,
			"unknown_item_policy", string(policy))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server error", "error", err)
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	case <-time.After(200 * time.Millisecond):
		appLogger.Info("Server started successfully", "port", port)
	}

	shutdownsetup.SetupGracefulShutdown(server, appLogger)
}
