package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"salon-booking/cmd"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/wire"
	"salon-booking/pkg/database"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store_driver", config.Store.Driver),
		zap.String("catalog_source", config.Catalog.Source),
	)

	var backends repository.Backends

	if config.UsesPostgres() {
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		backends.DB = db
		logger.Info("Database connected successfully")
	}

	if config.Store.Driver == "redis" {
		rdb, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		backends.Redis = rdb
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	}

	// Initialize all repositories
	repos, err := repository.NewRepository(config, backends, logger)
	if err != nil {
		logger.Fatal("Failed to initialize repositories", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)
	go app.Service.Sessions.Run(ctx)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
