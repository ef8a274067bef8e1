package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"estatehub/internal/domain"
	"estatehub/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID   = "userID"
	CtxAuthUser = "authUser"
)

// AuthUser is the minimal projection of the authenticated user attached to
// the request context. It never carries the password hash.
type AuthUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthMiddleware validates bearer tokens and resolves them to a persisted
// user. A missing credential and a bad/expired one both abort with 401 but
// carry distinct codes so clients can tell "not logged in" from "bad token".
func AuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
				"code":  "token_required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  "token_invalid",
			})
			return
		}

		// The identity claim must still resolve to a stored user.
		var user domain.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  "token_invalid",
			})
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxAuthUser, AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		c.Next()
	}
}

// CurrentUser returns the authenticated user projection from the context.
func CurrentUser(c *gin.Context) (AuthUser, bool) {
	v, exists := c.Get(CtxAuthUser)
	if !exists {
		return AuthUser{}, false
	}
	user, ok := v.(AuthUser)
	return user, ok
}
