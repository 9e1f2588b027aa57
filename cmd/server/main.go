package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/metrics"
	"foodgram/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Seed the ingredient catalog if a fixtures file is configured
	fixtures, err := config.LoadIngredientFixtures(cfg.IngredientsFile)
	if err != nil {
		log.Fatalf("Failed to load ingredient fixtures: %v", err)
	}
	if len(fixtures) > 0 {
		if err := database.SeedIngredients(ctx, fixtures); err != nil {
			log.Fatalf("Failed to seed ingredients: %v", err)
		}
		log.Printf("Seeded %d ingredients from %s", len(fixtures), cfg.IngredientsFile)
	}

	// Cache backend: shared Redis when configured, in-process otherwise
	var cacheStore cache.Store
	if cfg.RedisURL != "" {
		redisStore := cache.NewRedis(cfg.RedisURL)
		defer redisStore.Close()
		cacheStore = redisStore
		log.Println("Using Redis cache")
	} else {
		cacheStore = cache.NewMemory()
		log.Println("REDIS_URL not set, using in-process cache")
	}

	// Metrics collector and recorder
	metrics.Init(database)

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, cacheStore); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
