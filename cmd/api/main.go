package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sareeshine/internal/config"
	"sareeshine/internal/db"
	"sareeshine/internal/filestore"
	"sareeshine/internal/httpserver"
	"sareeshine/internal/payment"
	cartrepo "sareeshine/internal/repository/cart"
	orderrepo "sareeshine/internal/repository/order"
	productrepo "sareeshine/internal/repository/product"
	cartsvc "sareeshine/internal/service/cart"
	checkoutsvc "sareeshine/internal/service/checkout"
	ordersvc "sareeshine/internal/service/order"
	productsvc "sareeshine/internal/service/product"
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
	dbpool, err := db.ConnectPostgres(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	cache, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("connect to redis", zap.Error(err))
	}
	defer cache.Close()

	// The Stripe key and site URL may be absent in a partial deployment;
	// checkout then fails with a configuration error instead of the
	// process refusing to start.
	var provider payment.Provider
	if cfg.StripeSecretKey != "" {
		provider = payment.NewStripe(cfg.StripeSecretKey)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, hosted checkout disabled")
	}

	var proofStore filestore.Store
	if cfg.S3Bucket != "" {
		proofStore, err = filestore.NewS3(ctx, cfg.S3Bucket, cfg.S3Prefix, logger)
		if err != nil {
			logger.Fatal("init file store", zap.Error(err))
		}
	} else {
		logger.Warn("S3_BUCKET not set, manual checkout disabled")
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	cartRepo := cartrepo.NewRedis(cache, cfg.CartTTL, logger)
	cartService := cartsvc.New(cartRepo, productRepo, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	checkoutService := checkoutsvc.New(provider, cfg.SiteURL, orderRepo, proofStore, logger)
	reconciler := ordersvc.New(provider, orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		ProductSvc:  productService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		Reconciler:  reconciler,
	}, httpserver.Options{
		DB:             dbpool,
		Cache:          cache,
		AllowedOrigins: cfg.AllowedOrigins,
		CookieSecure:   strings.HasPrefix(cfg.SiteURL, "https://"),
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
