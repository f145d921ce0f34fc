package middleware

import (
	"net/http"
	"strings"

	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates JWT access token from Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		// Inject claims into context
		c.Set("userID", claims.UserID)
		c.Set("userType", claims.UserType)
		c.Set("hospitalID", claims.HospitalID)

		c.Next()
	}
}

// RequireAdmin checks that the authenticated user is hospital staff
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get("userType")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		if userType != models.UserTypeHospitalAdmin && userType != models.UserTypeSystemAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "User is not a hospital admin or system admin")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Actor returns the authenticated actor's identity from the gin context
func Actor(c *gin.Context) (userID uint, userType string, hospitalID uint) {
	id, _ := c.Get("userID")
	role, _ := c.Get("userType")
	hospital, _ := c.Get("hospitalID")
	return id.(uint), role.(string), hospital.(uint)
}
