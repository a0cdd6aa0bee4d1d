package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cyphera/storefront/internal/config"
	"github.com/cyphera/storefront/internal/constants"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/cyphera/storefront/internal/testbackend"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Loads .env as well
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.Stage)
	defer func() { _ = logger.Sync() }()

	if cfg.Stage != constants.LocalEnvironment {
		gin.SetMode(gin.ReleaseMode)
	}

	fake := testbackend.New()
	if raw := os.Getenv("FAKE_BACKEND_QUOTE_DELAY"); raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			logger.Fatal("Invalid FAKE_BACKEND_QUOTE_DELAY", zap.String("value", raw), zap.Error(err))
		}
		fake.QuoteDelay = delay
	}

	var origins []string
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	router := fake.Router(origins...)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.FakeBackendPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
	}
	// Start server in a goroutine
	go func() {
		logger.Info("Fake backend starting", zap.String("port", cfg.FakeBackendPort), zap.Strings("cors_origins", origins))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down fake backend...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Fake backend exiting")
}
