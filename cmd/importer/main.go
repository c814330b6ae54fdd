package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sareeshine/internal/config"
	"sareeshine/internal/db"
	"sareeshine/internal/importer"
	productrepo "sareeshine/internal/repository/product"
)

func main() {
	feedPath := flag.String("feed", "products.json", "path to the products.json feed")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	file, err := os.Open(*feedPath)
	if err != nil {
		logger.Fatal("open feed", zap.String("path", *feedPath), zap.Error(err))
	}
	defer file.Close()

	ctx := context.Background()
	pool, err := db.ConnectPostgres(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.NewJSONImporter(file, repo)

	n, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import feed", zap.Int("imported", n), zap.Error(err))
	}
	logger.Info("feed imported", zap.Int("products", n))
}
