package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sareeshine/internal/config"
	"sareeshine/internal/db"
	"sareeshine/internal/migrate"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.ConnectPostgres(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
	logger.Info("migrations applied")
}
