package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/helpers"
)

// Authentication validates the token header and puts the caller's identity
// into the gin context for the controllers.
func Authentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token is required"})
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("email", claims.Email)
		c.Set("uid", claims.Uid)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}
