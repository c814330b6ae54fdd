package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartCookieName = "cart_id"
	cartCookieAge  = 60 * 60 * 24 * 30
	cartIDKey      = "cartID"
)

// cartIDMiddleware reads the visitor's cart cookie, issuing a fresh random
// ID on first visit. The ID is how the same cart survives page reloads.
func cartIDMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cartCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartCookieName, id, cartCookieAge, "/", "", secure, true)
		}
		c.Set(cartIDKey, id)
		c.Next()
	}
}

func cartID(c *gin.Context) string {
	return c.GetString(cartIDKey)
}
