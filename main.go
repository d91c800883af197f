// main.go
package main

import (
	"context"
	"fmt"
	"log"

	"cinema-ops/cmd"
	"cinema-ops/internal/data/repository"
	"cinema-ops/internal/wire"
	"cinema-ops/pkg/database"
	"cinema-ops/pkg/lock"
	"cinema-ops/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the generator's single-flight lock
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}

	logger.Info("Redis connected successfully")

	runLock := lock.NewRedisLock(redisClient)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, runLock, logger)

	// Start the daily schedule generator
	if config.Generator.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go app.Service.Generator.RunDaily(ctx, config.Generator.Interval)
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
