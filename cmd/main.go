/*
Package main is the entry point for the KChat broadcast hub.

It loads configuration, initializes the global logging system, constructs
the hub with its injected stores, sets up the HTTP server, and gracefully
handles operating system interrupt signals (SIGINT, SIGTERM).
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kchat/internal/app/hub"
	"kchat/internal/configs"
	"kchat/internal/handler"
	"kchat/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Int("messages_per_interval", cfg.MessagesPerInterval).
		Dur("messages_interval_length", cfg.MessagesIntervalLength).
		Int("max_message_length", cfg.MaxMessageLength).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the hub with its injected stores
	h := hub.New(hub.Options{
		MessagesPerInterval:    cfg.MessagesPerInterval,
		MessagesIntervalLength: cfg.MessagesIntervalLength,
		MaxMessageLength:       cfg.MaxMessageLength,
		Secret:                 cfg.JWTSecret,
	})

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Hub:    h,
		Config: cfg,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("KChat Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	h.Shutdown()

	logx.Info("Server gracefully stopped.")
}
