package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sareeshine/internal/domain"
	checkoutsvc "sareeshine/internal/service/checkout"
)

func hostedCheckoutHandler(svc CheckoutService, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cart, err := carts.Get(ctx, cartID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		url, err := svc.BeginHostedCheckout(ctx, cart)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		// The frontend redirects the visitor to the provider's hosted page.
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

func manualCheckoutHandler(svc CheckoutService, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cart, err := carts.Get(ctx, cartID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		in := checkoutsvc.ManualOrderInput{
			Customer: domain.CustomerDetails{
				Name:  c.PostForm("name"),
				Email: c.PostForm("email"),
				Phone: c.PostForm("phone"),
			},
			Address: domain.Address{
				Line1:      c.PostForm("line1"),
				City:       c.PostForm("city"),
				PostalCode: c.PostForm("postal_code"),
				Region:     c.PostForm("region"),
			},
		}

		file, err := c.FormFile("screenshot")
		if err == nil && file != nil {
			src, openErr := file.Open()
			if openErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read screenshot"})
				return
			}
			defer src.Close()
			in.Proof = &checkoutsvc.ProofFile{
				Filename:    file.Filename,
				ContentType: file.Header.Get("Content-Type"),
				Data:        src,
			}
		}

		order, err := svc.SubmitManualOrder(ctx, cart, in)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		// The order is durable now; only then is it safe to drop the cart.
		// A failed clear is harmless, the cart TTL reaps it eventually.
		_ = carts.Clear(ctx, cartID(c))
		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID,
			"status":  order.Status,
			"message": "Order received. We will verify your payment and confirm shortly.",
		})
	}
}

func successHandler(reconciler Reconciler, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionID := c.Query("session_id")
		if sessionID == "" {
			// Manual-path landing: the order was already persisted, just
			// make sure no stale cart lingers.
			_ = carts.Clear(ctx, cartID(c))
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		result, err := reconciler.Finalize(ctx, sessionID)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		if !result.Settled {
			c.JSON(http.StatusAccepted, gin.H{"status": "pending", "message": "Payment not completed yet."})
			return
		}

		_ = carts.Clear(ctx, cartID(c))
		c.JSON(http.StatusOK, gin.H{
			"status":  result.Order.Status,
			"orderId": result.Order.ID,
		})
	}
}

func canceledHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "canceled", "message": "Payment canceled. Your cart is untouched."})
}

// respondCheckoutError maps the checkout error taxonomy onto HTTP codes.
func respondCheckoutError(c *gin.Context, err error) {
	var (
		confErr  *domain.ConfigurationError
		validErr *domain.ValidationError
		createrr *domain.CheckoutCreationError
		persErr  *domain.PersistenceError
	)
	switch {
	case errors.As(err, &validErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "fields": validErr.Fields})
	case errors.As(err, &createrr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout_failed", "message": "Could not start payment. Please try again."})
	case errors.As(err, &persErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence", "message": "Could not save your order. Please try again."})
	case errors.As(err, &confErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "configuration", "message": "Checkout is not configured."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
