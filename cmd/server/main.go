package main

import (
	"log"

	"github.com/Khushi2755/academix/internal/bootstrap"
	"github.com/Khushi2755/academix/internal/config"
	"github.com/Khushi2755/academix/internal/server"
	"github.com/Khushi2755/academix/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}

	// Redis powers notification push and rate limiting; both degrade
	// gracefully without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	srv := server.NewServer(db, redisClient)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
