package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/api"
	"github.com/jamizoram/storefront/internal/assets"
	"github.com/jamizoram/storefront/internal/cart"
	"github.com/jamizoram/storefront/internal/config"
	"github.com/jamizoram/storefront/internal/copywriter"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/identity"
	"github.com/jamizoram/storefront/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis (cart snapshots + sessions)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Cart manager with write-through Redis persistence
	carts := cart.NewManager(cart.NewRedisStore(rdb, cfg.Session.TTL), logger)

	// Identity manager; dropping a session's cart on sign-out keeps one
	// shopper's cart from leaking into the next on a shared device
	ids := identity.NewManager(repos.User, identity.NewRedisSessionStore(rdb), cfg.Session.TTL, logger)
	ids.OnSignOut(func(token string, _ *domain.User) {
		carts.Drop(context.Background(), token)
	})

	uploader := assets.NewUploader(cfg.Assets, logger)
	copy := copywriter.NewClient(cfg.Copywriter, logger)

	// Initialize router
	router := api.NewRouter(cfg, repos, carts, ids, uploader, copy, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
