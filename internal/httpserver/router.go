package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sareeshine/internal/domain"
	checkoutsvc "sareeshine/internal/service/checkout"
	ordersvc "sareeshine/internal/service/order"
)

// Deps are the services the router binds handlers to.
type Deps struct {
	ProductSvc  ProductService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	Reconciler  Reconciler
}

// Options carry infrastructure handles and settings the router needs
// beyond the services themselves.
type Options struct {
	DB             *pgxpool.Pool
	Cache          *redis.Client
	AllowedOrigins []string
	CookieSecure   bool
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type CartService interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	SetRegion(ctx context.Context, cartID, region string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type CheckoutService interface {
	BeginHostedCheckout(ctx context.Context, cart *domain.Cart) (string, error)
	SubmitManualOrder(ctx context.Context, cart *domain.Cart, in checkoutsvc.ManualOrderInput) (*domain.Order, error)
}

type Reconciler interface {
	Finalize(ctx context.Context, sessionID string) (*ordersvc.Result, error)
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.Logger, deps Deps, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(opts.DB, opts.Cache))

	api := router.Group("/api")
	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/:slug", getProductHandler(deps.ProductSvc))

	carted := api.Group("", cartIDMiddleware(opts.CookieSecure))
	carted.GET("/cart", getCartHandler(deps.CartSvc))
	carted.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	carted.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
	carted.PUT("/cart/region", setCartRegionHandler(deps.CartSvc))
	carted.DELETE("/cart", clearCartHandler(deps.CartSvc))

	carted.POST("/checkout/session", hostedCheckoutHandler(deps.CheckoutSvc, deps.CartSvc))
	carted.POST("/checkout/manual", manualCheckoutHandler(deps.CheckoutSvc, deps.CartSvc))
	carted.GET("/checkout/success", successHandler(deps.Reconciler, deps.CartSvc))
	carted.GET("/checkout/canceled", canceledHandler)

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
