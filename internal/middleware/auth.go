package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
	"stays-backend/internal/session"
)

const (
	userIDKey = "userId"
	roleKey   = "role"
)

// SessionAuth validates the session token and injects userId and role into the context.
func SessionAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := session.TokenFrom(c)
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			unauthorized(c)
			return
		}

		claims, err := sessions.Parse(raw)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			unauthorized(c)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles must run after SessionAuth.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ActorFrom(c).Role
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		log.Printf("[AUTH] [WARN] role %q denied on %s", role, c.FullPath())
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// ActorFrom returns the caller stored by SessionAuth. It is empty on public routes.
func ActorFrom(c *gin.Context) services.Actor {
	userID, _ := c.Get(userIDKey)
	role, _ := c.Get(roleKey)
	id, _ := userID.(string)
	r, _ := role.(models.Role)
	return services.Actor{UserID: id, Role: r}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
}
