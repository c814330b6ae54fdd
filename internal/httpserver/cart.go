package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sareeshine/internal/domain"
	cartsvc "sareeshine/internal/service/cart"
)

// cartResponse is the cart plus its derived amounts.
type cartResponse struct {
	ID          string            `json:"id"`
	Items       []domain.CartItem `json:"items"`
	Region      string            `json:"region,omitempty"`
	Subtotal    int64             `json:"subtotal"`
	ShippingFee int64             `json:"shippingFee"`
	GrandTotal  int64             `json:"grandTotal"`
	ItemCount   int               `json:"itemCount"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	totals := cartsvc.Totals(cart)
	return cartResponse{
		ID:          cart.ID,
		Items:       cart.Items,
		Region:      cart.Region,
		Subtotal:    totals.Subtotal,
		ShippingFee: totals.ShippingFee,
		GrandTotal:  totals.GrandTotal,
		ItemCount:   totals.ItemCount,
	}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), cartID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"productId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), cartID(c), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.RemoveItem(c.Request.Context(), cartID(c), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func setCartRegionHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Region string `json:"region" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "region required"})
			return
		}
		cart, err := svc.SetRegion(c.Request.Context(), cartID(c), req.Region)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), cartID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
