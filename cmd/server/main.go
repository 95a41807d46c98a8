package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/rpsduel-go/internal/api"
	"github.com/mcoot/rpsduel-go/internal/factory"
	"github.com/mcoot/rpsduel-go/internal/model"
	redisstorage "github.com/mcoot/rpsduel-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Record the owner, and optionally seed the admin, on first boot
	owner, err := parseIdentityEnv("RPSDUEL_OWNER")
	if err != nil {
		logger.Error("invalid RPSDUEL_OWNER", slog.String("error", err.Error()))
		os.Exit(1)
	}
	admin, err := parseIdentityEnv("RPSDUEL_ADMIN")
	if err != nil {
		logger.Error("invalid RPSDUEL_ADMIN", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if owner != "" || admin != "" {
		if err := app.AdminService.Bootstrap(context.Background(), owner, admin); err != nil {
			logger.Error("failed to bootstrap contract state", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		AdminService:    app.AdminService,
		MatchController: app.MatchController,
		EventsHub:       app.EventsHub,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		app.EventsHub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// parseIdentityEnv reads an identity-valued env var, empty if unset
func parseIdentityEnv(name string) (model.Identity, error) {
	val := os.Getenv(name)
	if val == "" {
		return "", nil
	}
	return model.ParseIdentity(val)
}
