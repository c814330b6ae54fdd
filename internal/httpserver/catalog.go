package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sareeshine/internal/domain"
)

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		product, err := svc.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
