package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/pkg/jwt"
	"github.com/studyhive/collab-service/pkg/response"
)

const (
	UserIDKey     = "user_id"
	NameKey       = "user_name"
	ImageKey      = "user_image"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware validates access tokens and registers the caller's session
// record with the connection gate. Every authenticated request refreshes the
// record, which is what later authorizes that user's websocket connections.
type AuthMiddleware struct {
	tokens   *jwt.Manager
	sessions *gate.SessionStore
}

func NewAuthMiddleware(tokens *jwt.Manager, sessions *gate.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		sessions: sessions,
	}
}

// RequireAuth returns a Gin middleware that validates Bearer tokens.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := m.tokens.Validate(token)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(NameKey, claims.Name)
		c.Set(ImageKey, claims.Image)

		m.sessions.Put(claims.UserID, claims.Name, claims.Image)

		c.Next()
	}
}

// GetUserID extracts user ID from Gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetName extracts display name from Gin context.
func GetName(c *gin.Context) string {
	if name, exists := c.Get(NameKey); exists {
		return name.(string)
	}
	return ""
}

// GetImage extracts avatar reference from Gin context.
func GetImage(c *gin.Context) string {
	if image, exists := c.Get(ImageKey); exists {
		return image.(string)
	}
	return ""
}
