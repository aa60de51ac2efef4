package main

import (
	"context"
	"log"

	"product-catalog/cmd"
	"product-catalog/internal/data/repository"
	"product-catalog/internal/wire"
	"product-catalog/pkg/database"
	"product-catalog/pkg/messaging"
	"product-catalog/pkg/ratelimit"
	"product-catalog/pkg/token"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
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

	// Apply schema migrations
	if config.Database.AutoMigrate {
		if err := database.RunMigrations(config.Database.MigrationsPath, database.ConnString(config.Database), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	codec, err := token.NewCodec(config.JWT.Secret)
	if err != nil {
		logger.Fatal("Invalid JWT configuration", zap.Error(err))
	}

	limiter := newLimiter(config, logger)
	publisher := newPublisher(config, logger)
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(wire.Deps{
		DB:        db,
		Repo:      repos,
		Codec:     codec,
		Publisher: publisher,
		Limiter:   limiter,
		Config:    config,
		Logger:    logger,
	})

	if config.App.SeedUsers {
		if err := app.Service.User.SeedDefaults(context.Background()); err != nil {
			logger.Fatal("Failed to seed default accounts", zap.Error(err))
		}
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// newLimiter prefers Redis so instances share buckets, falling back to an in-process limiter.
func newLimiter(config *utils.Config, logger *zap.Logger) ratelimit.Limiter {
	rl := config.RateLimit
	if !rl.Enabled {
		logger.Info("Rate limiting disabled")
		return nil
	}

	if config.Redis.Enabled {
		client, err := database.NewRedisClient(config.Redis)
		if err == nil {
			logger.Info("Rate limiting backed by Redis", zap.String("addr", config.Redis.Addr))
			return ratelimit.NewRedisLimiter(client, rl.Prefix, rl.Capacity, rl.RefillInterval)
		}
		logger.Warn("Redis unavailable, using in-memory rate limiter", zap.Error(err))
	}

	return ratelimit.NewMemoryLimiter(rl.Capacity, rl.RefillInterval)
}

func newPublisher(config *utils.Config, logger *zap.Logger) messaging.Publisher {
	if !config.RabbitMQ.Enabled {
		return messaging.NopPublisher{}
	}

	publisher, err := messaging.NewRabbitPublisher(config.RabbitMQ.URL, config.RabbitMQ.Queue, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, catalog events disabled", zap.Error(err))
		return messaging.NopPublisher{}
	}

	logger.Info("Publishing catalog events", zap.String("queue", config.RabbitMQ.Queue))
	return publisher
}
