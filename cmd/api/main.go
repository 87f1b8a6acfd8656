package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/router"
	"github.com/pageza/mealplanner/backend/internal/seed"
	"github.com/pageza/mealplanner/backend/internal/server"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/store"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid PLAN_TIMEZONE %q: %v", cfg.PlanTimezone, err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.Gorm, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	recipeStore := store.NewRecipeStore(db.Gorm)
	if cfg.SeedOnStart {
		if _, err := seed.Run(context.Background(), recipeStore); err != nil {
			log.Fatalf("Failed to seed recipes: %v", err)
		}
	}

	health := map[string]api.Pinger{"database": api.PingFunc(db.HealthCheck)}

	// Redis backs token revocation and write rate limiting when configured
	var (
		revoker      service.TokenRevoker
		writeLimiter *middleware.RateLimiter
		redisClient  *redis.Client
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		revoker = service.NewRedisRevoker(redisClient)
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient, cfg.RecipeWritesPerHr)
		health["redis"] = api.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		log.Println("Redis not configured, logout and rate limiting are disabled")
	}

	var exportStorage service.ObjectStorage
	if cfg.S3BucketName != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		exportStorage = s3Cfg
	} else {
		log.Println("S3_BUCKET_NAME not set, plan export uploads are disabled")
	}

	builder := service.NewPlanBuilder(recipeStore, loc)
	handler := router.SetupRouter(router.Dependencies{
		Auth:           service.NewAuthService(store.NewAccountStore(db.Gorm), revoker, cfg.JWTSecret, cfg.TokenTTL),
		Recipes:        service.NewRecipeService(recipeStore, store.NewFavoriteStore(db.Gorm)),
		Plans:          service.NewMealPlanService(builder, store.NewPlanStore(db.Gorm)),
		Stats:          service.NewStatsService(recipeStore),
		Export:         service.NewExportService(exportStorage),
		WriteLimiter:   writeLimiter,
		Health:         health,
		AllowedOrigins: cfg.CORSOrigins,
	})

	// Create and start server
	srv := server.New(cfg, handler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
