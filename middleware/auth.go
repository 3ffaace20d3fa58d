package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/utils"
)

// AdminAuthMiddleware validates the admin JWT from cookie or Authorization
// header. Issuing tokens is an external concern; this middleware only
// guards the mutating catalog routes.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		// Try to get token from cookie first
		cookieToken, err := c.Cookie("auth_token")
		if err == nil && cookieToken != "" {
			token = cookieToken
		} else {
			// Fallback to Authorization header
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
				c.Abort()
				return
			}

			token, err = utils.ExtractTokenFromHeader(authHeader)
			if err != nil {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminName", claims.Name)

		c.Next()
	}
}

func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	adminID, exists := c.Get("adminID")
	if !exists {
		return "", false
	}
	return adminID.(string), true
}

func GetAdminEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get("adminEmail")
	if !exists {
		return "", false
	}
	return email.(string), true
}
