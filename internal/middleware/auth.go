package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"pod-portal/internal/model"
)

// JWTSecret is overwritten from config at startup.
var JWTSecret = []byte("dev-only-change-me")

const userKey = "current_user"

// RequireEmployee is the portal access guard: a valid bearer token, an
// existing user row, a known role, and employee_approved AND is_active.
// Handlers behind it can trust the identity without re-checking.
func RequireEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			deny(c, "login required")
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return JWTSecret, nil
		})
		if err != nil || !token.Valid {
			deny(c, "invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			deny(c, "invalid token")
			return
		}
		uid, ok := claims["uid"].(float64)
		if !ok {
			deny(c, "invalid token")
			return
		}

		var user model.User
		if err := db.First(&user, int(uid)).Error; err != nil {
			deny(c, "unknown user")
			return
		}
		if !user.Role.PortalEligible() || !user.CanAccessPortal() {
			deny(c, "account pending approval")
			return
		}

		SetCurrentUser(c, &user)
		c.Next()
	}
}

// SetCurrentUser attaches the authenticated identity to the request.
func SetCurrentUser(c *gin.Context, u *model.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the identity the guard stored on the context.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

func deny(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reason})
}
